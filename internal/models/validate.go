package models

import "slices"

// Field length limits shared by create and update requests.
const (
	maxNameLen        = 255
	maxDescriptionLen = 2000
	maxShortFieldLen  = 255
	maxListLen        = 500
)

func requireString(field, v string, maxLen int) error {
	if v == "" {
		return ErrMissingField(field)
	}

	return limitString(field, v, maxLen)
}

func limitString(field, v string, maxLen int) error {
	if len(v) > maxLen {
		return ErrFieldTooLong(field, maxLen)
	}

	return nil
}

func optionalString(field string, v *string, maxLen int) error {
	if v == nil {
		return nil
	}

	if *v == "" {
		return NewValidationError(field, "cannot be empty")
	}

	return limitString(field, *v, maxLen)
}

func oneOf(field, v string, allowed []string) error {
	if slices.Contains(allowed, v) {
		return nil
	}

	return NewValidationError(field, "must be one of %v, got %q", allowed, v)
}

func optionalOneOf(field string, v *string, allowed []string) error {
	if v == nil {
		return nil
	}

	return oneOf(field, *v, allowed)
}

func limitIDs(field string, ids []string) error {
	if len(ids) > maxListLen {
		return NewValidationError(field, "exceeds maximum of %d entries", maxListLen)
	}

	for _, id := range ids {
		if id == "" {
			return NewValidationError(field, "contains an empty id")
		}
	}

	return nil
}

// Dedupe returns ids with duplicates removed, preserving first occurrence order.
func Dedupe(ids []string) []string {
	if ids == nil {
		return []string{}
	}

	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
