package models

import "time"

// Legal entity types.
const (
	LegalCorporation        = "corporation"
	LegalLLC                = "llc"
	LegalPartnership        = "partnership"
	LegalSoleProprietorship = "sole_proprietorship"
)

// LegalEntityTypes lists the accepted LegalEntity.Type values.
var LegalEntityTypes = []string{LegalCorporation, LegalLLC, LegalPartnership, LegalSoleProprietorship}

// LegalEntityStatuses lists the accepted LegalEntity.Status values.
var LegalEntityStatuses = []string{"active", "inactive", "dissolved"}

// Address is a postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a *Address) validate() error {
	fields := []struct{ field, value string }{
		{"address.street", a.Street},
		{"address.city", a.City},
		{"address.state", a.State},
		{"address.zipCode", a.ZipCode},
		{"address.country", a.Country},
	}
	for _, f := range fields {
		if err := limitString(f.field, f.value, maxShortFieldLen); err != nil {
			return err
		}
	}

	return nil
}

// LegalEntity is a registered business entity belonging to a tenant.
type LegalEntity struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	RegistrationNumber string    `json:"registrationNumber"`
	TenantID           string    `json:"tenantId"`
	Address            Address   `json:"address"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Clone returns a copy.
func (l LegalEntity) Clone() LegalEntity { return l }

// CreateLegalEntityRequest is the payload for creating a legal entity.
type CreateLegalEntityRequest struct {
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	RegistrationNumber string  `json:"registrationNumber"`
	Address            Address `json:"address"`
	Status             string  `json:"status"`
}

// Validate checks CreateLegalEntityRequest fields. An empty status defaults to active.
func (r *CreateLegalEntityRequest) Validate() error {
	if r.Status == "" {
		r.Status = "active"
	}

	if err := requireString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if err := oneOf("type", r.Type, LegalEntityTypes); err != nil {
		return err
	}

	if err := limitString("registrationNumber", r.RegistrationNumber, maxShortFieldLen); err != nil {
		return err
	}

	if err := r.Address.validate(); err != nil {
		return err
	}

	return oneOf("status", r.Status, LegalEntityStatuses)
}

// UpdateLegalEntityRequest is the payload for updating a legal entity.
type UpdateLegalEntityRequest struct {
	Name               *string  `json:"name,omitempty"`
	Type               *string  `json:"type,omitempty"`
	RegistrationNumber *string  `json:"registrationNumber,omitempty"`
	Address            *Address `json:"address,omitempty"`
	Status             *string  `json:"status,omitempty"`
}

// Validate checks UpdateLegalEntityRequest fields.
func (r *UpdateLegalEntityRequest) Validate() error {
	if err := optionalString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if err := optionalOneOf("type", r.Type, LegalEntityTypes); err != nil {
		return err
	}

	if r.RegistrationNumber != nil {
		if err := limitString("registrationNumber", *r.RegistrationNumber, maxShortFieldLen); err != nil {
			return err
		}
	}

	if r.Address != nil {
		if err := r.Address.validate(); err != nil {
			return err
		}
	}

	return optionalOneOf("status", r.Status, LegalEntityStatuses)
}
