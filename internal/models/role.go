package models

import (
	"slices"
	"time"
)

// Role is a named bundle of privileges. Privileges holds Privilege ids with set semantics.
type Role struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	TenantID     string    `json:"tenantId"`
	Privileges   []string  `json:"privileges"`
	IsSystemRole bool      `json:"isSystemRole"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasPrivilege reports whether privilegeID is linked.
func (r *Role) HasPrivilege(privilegeID string) bool {
	return slices.Contains(r.Privileges, privilegeID)
}

// Clone returns a deep copy.
func (r Role) Clone() Role {
	r.Privileges = slices.Clone(r.Privileges)
	return r
}

// CreateRoleRequest is the payload for creating a role.
type CreateRoleRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Privileges   []string `json:"privileges"`
	IsSystemRole bool     `json:"isSystemRole"`
}

// Validate checks CreateRoleRequest fields.
func (r *CreateRoleRequest) Validate() error {
	if err := requireString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if err := limitString("description", r.Description, maxDescriptionLen); err != nil {
		return err
	}

	if err := limitIDs("privileges", r.Privileges); err != nil {
		return err
	}

	r.Privileges = Dedupe(r.Privileges)

	return nil
}

// UpdateRoleRequest is the payload for updating a role. A non-nil Privileges replaces the set.
type UpdateRoleRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Privileges   *[]string `json:"privileges,omitempty"`
	IsSystemRole *bool     `json:"isSystemRole,omitempty"`
}

// Validate checks UpdateRoleRequest fields.
func (r *UpdateRoleRequest) Validate() error {
	if err := optionalString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if r.Description != nil {
		if err := limitString("description", *r.Description, maxDescriptionLen); err != nil {
			return err
		}
	}

	if r.Privileges != nil {
		if err := limitIDs("privileges", *r.Privileges); err != nil {
			return err
		}

		deduped := Dedupe(*r.Privileges)
		r.Privileges = &deduped
	}

	return nil
}
