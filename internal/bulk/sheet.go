// Package bulk reads and writes user sheets for bulk import and export.
package bulk

import (
	"fmt"
	"strings"

	"github.com/persistorai/tenantadmin/internal/models"
)

// Row is one data line of a sheet. Number counts the header as row 1 and
// ignores blank lines.
type Row struct {
	Number int
	Cells  []string
}

// Sheet is a parsed upload: a header and its data rows.
type Sheet struct {
	Header []string
	Rows   []Row
}

// Record maps the row's cells onto the header. Missing cells are empty.
func (s *Sheet) Record(r Row) map[string]string {
	rec := make(map[string]string, len(s.Header))
	for i, h := range s.Header {
		if i < len(r.Cells) {
			rec[h] = r.Cells[i]
		} else {
			rec[h] = ""
		}
	}

	return rec
}

// newSheet trims every cell, drops blank lines and numbers the rest. The
// first non-blank line is the header.
func newSheet(records [][]string) (*Sheet, error) {
	s := &Sheet{}
	n := 0

	for _, rec := range records {
		cells := make([]string, len(rec))
		blank := true
		for i, c := range rec {
			cells[i] = strings.TrimSpace(c)
			if cells[i] != "" {
				blank = false
			}
		}

		if blank {
			continue
		}

		n++
		if s.Header == nil {
			s.Header = cells
			continue
		}

		s.Rows = append(s.Rows, Row{Number: n, Cells: cells})
	}

	if len(s.Header) == 0 {
		return nil, models.ErrInvalidFormat
	}

	return s, nil
}

// Import row errors, shown verbatim to operators.
const (
	msgMissingFields = "Missing required fields: username, email, firstName, lastName"
	msgInvalidEmail  = "Invalid email format"
)

// ValidateRecord checks one import record. It returns "" for a valid row or
// the message describing the first problem.
func ValidateRecord(rec map[string]string) string {
	if rec["username"] == "" || rec["email"] == "" || rec["firstName"] == "" || rec["lastName"] == "" {
		return msgMissingFields
	}

	if !models.ValidEmail(rec["email"]) {
		return msgInvalidEmail
	}

	if status := rec["status"]; status != "" && !isUserStatus(status) {
		return fmt.Sprintf("Invalid status: %s", status)
	}

	return ""
}

func isUserStatus(s string) bool {
	for _, v := range models.UserStatuses {
		if v == s {
			return true
		}
	}

	return false
}

// CreateRequest builds the create payload for a valid record. Roles are
// split on ';' as written by export.
func CreateRequest(rec map[string]string) models.CreateUserRequest {
	req := models.CreateUserRequest{
		Username:       rec["username"],
		Email:          rec["email"],
		FirstName:      rec["firstName"],
		LastName:       rec["lastName"],
		OrganizationID: rec["organizationId"],
		Status:         rec["status"],
	}

	if roles := rec["roles"]; roles != "" {
		for _, r := range strings.Split(roles, ";") {
			if r = strings.TrimSpace(r); r != "" {
				req.Roles = append(req.Roles, r)
			}
		}
	}

	return req
}
