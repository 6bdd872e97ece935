package models

import (
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
)

// User statuses.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserPending   = "pending"
	UserSuspended = "suspended"
)

// UserStatuses lists the accepted User.Status values.
var UserStatuses = []string{UserActive, UserInactive, UserPending, UserSuspended}

var fieldValidator = validator.New()

// ValidEmail reports whether s passes the validator package's email rule.
func ValidEmail(s string) bool {
	return fieldValidator.Var(s, "required,email") == nil
}

// User is a tenant-scoped account. Roles holds Role ids with set semantics.
type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	TenantID       string     `json:"tenantId"`
	OrganizationID string     `json:"organizationId,omitempty"`
	Status         string     `json:"status"`
	Roles          []string   `json:"roles"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// HasRole reports whether roleID is assigned.
func (u *User) HasRole(roleID string) bool {
	return slices.Contains(u.Roles, roleID)
}

// Clone returns a deep copy.
func (u User) Clone() User {
	u.Roles = slices.Clone(u.Roles)
	if u.LastLogin != nil {
		t := *u.LastLogin
		u.LastLogin = &t
	}

	return u
}

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	OrganizationID string   `json:"organizationId,omitempty"`
	Status         string   `json:"status"`
	Roles          []string `json:"roles"`
}

// Validate checks required fields, the email shape and the status enumeration.
// An empty status defaults to pending.
func (r *CreateUserRequest) Validate() error {
	if r.Status == "" {
		r.Status = UserPending
	}

	required := []struct{ field, value string }{
		{"username", r.Username},
		{"email", r.Email},
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
	}
	for _, f := range required {
		if err := requireString(f.field, f.value, maxShortFieldLen); err != nil {
			return err
		}
	}

	if !ValidEmail(r.Email) {
		return NewValidationError("email", "invalid email format")
	}

	if err := limitString("organizationId", r.OrganizationID, maxShortFieldLen); err != nil {
		return err
	}

	if err := oneOf("status", r.Status, UserStatuses); err != nil {
		return err
	}

	if err := limitIDs("roles", r.Roles); err != nil {
		return err
	}

	r.Roles = Dedupe(r.Roles)

	return nil
}

// UpdateUserRequest is the payload for updating a user. A non-nil Roles
// replaces the whole set; a non-nil empty OrganizationID clears it.
type UpdateUserRequest struct {
	Username       *string   `json:"username,omitempty"`
	Email          *string   `json:"email,omitempty"`
	FirstName      *string   `json:"firstName,omitempty"`
	LastName       *string   `json:"lastName,omitempty"`
	OrganizationID *string   `json:"organizationId,omitempty"`
	Status         *string   `json:"status,omitempty"`
	Roles          *[]string `json:"roles,omitempty"`
}

// Validate checks UpdateUserRequest fields.
func (r *UpdateUserRequest) Validate() error {
	optional := []struct {
		field string
		value *string
	}{
		{"username", r.Username},
		{"email", r.Email},
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
	}
	for _, f := range optional {
		if err := optionalString(f.field, f.value, maxShortFieldLen); err != nil {
			return err
		}
	}

	if r.Email != nil && !ValidEmail(*r.Email) {
		return NewValidationError("email", "invalid email format")
	}

	if r.OrganizationID != nil {
		if err := limitString("organizationId", *r.OrganizationID, maxShortFieldLen); err != nil {
			return err
		}
	}

	if err := optionalOneOf("status", r.Status, UserStatuses); err != nil {
		return err
	}

	if r.Roles != nil {
		if err := limitIDs("roles", *r.Roles); err != nil {
			return err
		}

		deduped := Dedupe(*r.Roles)
		r.Roles = &deduped
	}

	return nil
}
