package models

import "time"

// Organization types.
const (
	OrgDepartment = "department"
	OrgDivision   = "division"
	OrgTeam       = "team"
	OrgSubsidiary = "subsidiary"
)

// OrganizationTypes lists the accepted Organization.Type values.
var OrganizationTypes = []string{OrgDepartment, OrgDivision, OrgTeam, OrgSubsidiary}

// OrganizationStatuses lists the accepted Organization.Status values.
var OrganizationStatuses = []string{"active", "inactive"}

// Organization is a node in a tenant's hierarchy. ParentID, when set, names
// another organization of the same tenant.
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TenantID    string    `json:"tenantId"`
	ParentID    string    `json:"parentId,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a copy; Organization has no reference fields.
func (o Organization) Clone() Organization { return o }

// CreateOrganizationRequest is the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ParentID    string `json:"parentId,omitempty"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

// Validate checks required fields and enumerations. An empty status defaults to active.
func (r *CreateOrganizationRequest) Validate() error {
	if r.Status == "" {
		r.Status = "active"
	}

	if err := requireString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if err := limitString("description", r.Description, maxDescriptionLen); err != nil {
		return err
	}

	if err := limitString("parentId", r.ParentID, maxShortFieldLen); err != nil {
		return err
	}

	if err := oneOf("type", r.Type, OrganizationTypes); err != nil {
		return err
	}

	return oneOf("status", r.Status, OrganizationStatuses)
}

// UpdateOrganizationRequest is the payload for updating an organization.
// A non-nil empty ParentID detaches the organization from its parent.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// Validate checks UpdateOrganizationRequest fields.
func (r *UpdateOrganizationRequest) Validate() error {
	if err := optionalString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if r.Description != nil {
		if err := limitString("description", *r.Description, maxDescriptionLen); err != nil {
			return err
		}
	}

	if r.ParentID != nil {
		if err := limitString("parentId", *r.ParentID, maxShortFieldLen); err != nil {
			return err
		}
	}

	if err := optionalOneOf("type", r.Type, OrganizationTypes); err != nil {
		return err
	}

	return optionalOneOf("status", r.Status, OrganizationStatuses)
}
