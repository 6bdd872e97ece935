package models

import "strings"

// StatusAll disables the status filter.
const StatusAll = "all"

// ListFilter narrows list endpoints. Search is a case-insensitive substring
// test; Status is an exact match. Empty fields and the status "all" match
// everything.
type ListFilter struct {
	Search string
	Status string
}

// Empty reports whether the filter matches everything.
func (f ListFilter) Empty() bool {
	return f.Search == "" && f.anyStatus()
}

func (f ListFilter) anyStatus() bool {
	return f.Status == "" || f.Status == StatusAll
}

// Match reports whether status equals the filter's status and any of fields
// contains the search term.
func (f ListFilter) Match(status string, fields ...string) bool {
	if !f.anyStatus() && status != f.Status {
		return false
	}

	if f.Search == "" {
		return true
	}

	term := strings.ToLower(f.Search)
	for _, v := range fields {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}

	return false
}
