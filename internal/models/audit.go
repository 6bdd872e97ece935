package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Audit actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
	ActionView   = "view"
)

// AuditActions lists the accepted AuditLog.Action values.
var AuditActions = []string{ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionLogout, ActionView}

// Audited resource types.
const (
	ResourceUser         = "user"
	ResourceRole         = "role"
	ResourceOrganization = "organization"
	ResourceTenant       = "tenant"
	ResourcePrivilege    = "privilege"
	ResourceLegalEntity  = "legal_entity"
)

// ResourceTypes lists the accepted AuditLog.ResourceType values.
var ResourceTypes = []string{
	ResourceUser, ResourceRole, ResourceOrganization,
	ResourceTenant, ResourcePrivilege, ResourceLegalEntity,
}

// TimestampLayout renders audit timestamps as fixed-width UTC ISO-8601 with
// millisecond precision, so string order equals chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Change records one field transition inside an audit entry.
type Change struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// AuditLog is an immutable record of an action taken against a resource.
// UserName and ResourceName are snapshots taken when the entry was written.
type AuditLog struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"-"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resourceType"`
	ResourceID   string    `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	Changes      []Change  `json:"changes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	UserAgent    string    `json:"userAgent,omitempty"`
}

// TimestampString returns Timestamp formatted with TimestampLayout.
func (a *AuditLog) TimestampString() string {
	return a.Timestamp.UTC().Format(TimestampLayout)
}

// MarshalJSON writes Timestamp with TimestampLayout, so a timestamp read
// from a response can be sent back as an inclusive date bound.
func (a AuditLog) MarshalJSON() ([]byte, error) {
	type plain AuditLog

	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{plain(a), a.TimestampString()})
}

// UnmarshalJSON accepts any RFC 3339 timestamp.
func (a *AuditLog) UnmarshalJSON(data []byte) error {
	type plain AuditLog

	aux := struct {
		*plain
		Timestamp string `json:"timestamp"`
	}{plain: (*plain)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if aux.Timestamp == "" {
		a.Timestamp = time.Time{}
		return nil
	}

	ts, err := time.Parse(time.RFC3339Nano, aux.Timestamp)
	if err != nil {
		return fmt.Errorf("audit timestamp: %w", err)
	}

	a.Timestamp = ts.UTC()

	return nil
}

// Clone returns a deep copy.
func (a AuditLog) Clone() AuditLog {
	if a.Changes != nil {
		a.Changes = append([]Change(nil), a.Changes...)
	}

	return a
}

// AuditFilters holds the ANDed filters for querying the audit log.
// DateFrom and DateTo are inclusive ISO-8601 bounds compared as strings.
type AuditFilters struct {
	UserID       string
	Action       string
	ResourceType string
	SearchTerm   string
	DateFrom     string
	DateTo       string
	Limit        int
	Offset       int
}

// Validate checks the enumerated filters.
func (f *AuditFilters) Validate() error {
	if f.Action != "" {
		if err := oneOf("action", f.Action, AuditActions); err != nil {
			return err
		}
	}

	if f.ResourceType != "" {
		if err := oneOf("resourceType", f.ResourceType, ResourceTypes); err != nil {
			return err
		}
	}

	if f.Limit < 0 || f.Offset < 0 {
		return NewValidationError("limit", "limit and offset must not be negative")
	}

	return nil
}
