package models

import "time"

// Privilege is an atomic permission grant grouped by a free-form category.
type Privilege struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	TenantID          string    `json:"tenantId"`
	IsSystemPrivilege bool      `json:"isSystemPrivilege"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Clone returns a copy.
func (p Privilege) Clone() Privilege { return p }

// CreatePrivilegeRequest is the payload for creating a privilege.
type CreatePrivilegeRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	IsSystemPrivilege bool   `json:"isSystemPrivilege"`
}

// Validate checks CreatePrivilegeRequest fields.
func (r *CreatePrivilegeRequest) Validate() error {
	if err := requireString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if err := limitString("description", r.Description, maxDescriptionLen); err != nil {
		return err
	}

	return limitString("category", r.Category, maxShortFieldLen)
}

// UpdatePrivilegeRequest is the payload for updating a privilege.
type UpdatePrivilegeRequest struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	Category          *string `json:"category,omitempty"`
	IsSystemPrivilege *bool   `json:"isSystemPrivilege,omitempty"`
}

// Validate checks UpdatePrivilegeRequest fields.
func (r *UpdatePrivilegeRequest) Validate() error {
	if err := optionalString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	if r.Description != nil {
		if err := limitString("description", *r.Description, maxDescriptionLen); err != nil {
			return err
		}
	}

	if r.Category != nil {
		return limitString("category", *r.Category, maxShortFieldLen)
	}

	return nil
}
