package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is the root of every lookup failure. Entity-specific errors wrap
// it so callers can match either the precise or the generic condition.
var ErrNotFound = errors.New("not found")

// Sentinel errors for entity lookups.
var (
	ErrTenantNotFound       = fmt.Errorf("tenant %w", ErrNotFound)
	ErrOrganizationNotFound = fmt.Errorf("organization %w", ErrNotFound)
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrRoleNotFound         = fmt.Errorf("role %w", ErrNotFound)
	ErrPrivilegeNotFound    = fmt.Errorf("privilege %w", ErrNotFound)
	ErrLegalEntityNotFound  = fmt.Errorf("legal entity %w", ErrNotFound)
)

// ErrInvalidFormat aborts a bulk import whose content has no header line.
var ErrInvalidFormat = errors.New("Invalid CSV format: No headers found") //nolint:stylecheck,revive // message is shown verbatim to operators.

// ErrInvalidCredentials is returned by login when the username/password pair is rejected.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrLoginLocked is returned by login while a username is locked out.
var ErrLoginLocked = errors.New("too many failed login attempts")

// ValidationError reports a rejected field value or a dangling reference.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return NewValidationError(field, "exceeds maximum length of %d", maxLen)
}

// ErrMissingField returns an error for an empty required field.
func ErrMissingField(field string) error {
	return NewValidationError(field, "is required")
}

// ErrDanglingReference reports an id that does not resolve inside the tenant.
func ErrDanglingReference(field, id string) error {
	return NewValidationError(field, "references unknown id %q", id)
}
