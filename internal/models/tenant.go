// Package models defines the entities, requests and results of the tenant
// administration service.
package models

import (
	"slices"
	"time"
)

// Tenant statuses.
const (
	TenantActive    = "active"
	TenantInactive  = "inactive"
	TenantSuspended = "suspended"
)

// TenantStatuses lists the accepted Tenant.Status values.
var TenantStatuses = []string{TenantActive, TenantInactive, TenantSuspended}

// Tenant is the root of the scoping hierarchy.
type Tenant struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Domain      string         `json:"domain"`
	Status      string         `json:"status"`
	Settings    TenantSettings `json:"settings"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TenantSettings holds per-tenant limits and feature flags.
type TenantSettings struct {
	MaxUsers       int      `json:"maxUsers"`
	Features       []string `json:"features"`
	CustomBranding bool     `json:"customBranding"`
}

// Clone returns a deep copy.
func (t Tenant) Clone() Tenant {
	t.Settings.Features = slices.Clone(t.Settings.Features)
	return t
}

// CreateTenantRequest is the payload for creating a tenant.
type CreateTenantRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Domain      string         `json:"domain"`
	Status      string         `json:"status"`
	Settings    TenantSettings `json:"settings"`
}

// Validate checks required fields and enumerations. An empty status defaults to active.
func (r *CreateTenantRequest) Validate() error {
	if r.Status == "" {
		r.Status = TenantActive
	}

	if err := requireString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if err := limitString("description", r.Description, maxDescriptionLen); err != nil {
		return err
	}

	if err := limitString("domain", r.Domain, maxShortFieldLen); err != nil {
		return err
	}

	if err := oneOf("status", r.Status, TenantStatuses); err != nil {
		return err
	}

	return validateSettings(&r.Settings)
}

// UpdateTenantRequest is the payload for updating a tenant. Nil fields are left unchanged.
type UpdateTenantRequest struct {
	Name        *string         `json:"name,omitempty"`
	Description *string         `json:"description,omitempty"`
	Domain      *string         `json:"domain,omitempty"`
	Status      *string         `json:"status,omitempty"`
	Settings    *TenantSettings `json:"settings,omitempty"`
}

// Validate checks UpdateTenantRequest fields.
func (r *UpdateTenantRequest) Validate() error {
	if err := optionalString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if r.Description != nil {
		if err := limitString("description", *r.Description, maxDescriptionLen); err != nil {
			return err
		}
	}

	if r.Domain != nil {
		if err := limitString("domain", *r.Domain, maxShortFieldLen); err != nil {
			return err
		}
	}

	if err := optionalOneOf("status", r.Status, TenantStatuses); err != nil {
		return err
	}

	if r.Settings != nil {
		return validateSettings(r.Settings)
	}

	return nil
}

func validateSettings(s *TenantSettings) error {
	if s.MaxUsers < 0 {
		return NewValidationError("settings.maxUsers", "must not be negative")
	}

	if len(s.Features) > maxListLen {
		return NewValidationError("settings.features", "exceeds maximum of %d entries", maxListLen)
	}

	s.Features = Dedupe(s.Features)

	return nil
}
