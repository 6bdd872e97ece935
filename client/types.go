package client

import "time"

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status           string  `json:"status"`
	Version          string  `json:"version"`
	Database         string  `json:"database"`
	WebSocketClients int     `json:"websocket_clients"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// Principal is the operator a token was issued to.
type Principal struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	TenantID  string `json:"tenantId"`
}

// LoginRequest is the payload for logging in. TenantID is optional.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TenantID string `json:"tenantId,omitempty"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Principal `json:"user"`
}

// ListOptions filters entity lists. Status "all" or empty disables the
// status filter. For privileges Status filters by category.
type ListOptions struct {
	Search string
	Status string
}

// TenantSettings holds per-tenant limits and feature flags.
type TenantSettings struct {
	MaxUsers       int      `json:"maxUsers"`
	Features       []string `json:"features"`
	CustomBranding bool     `json:"customBranding"`
}

// Tenant is an isolated customer of the console.
type Tenant struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Domain      string         `json:"domain"`
	Status      string         `json:"status"`
	Settings    TenantSettings `json:"settings"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Organization is a unit inside a tenant.
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

// User is a tenant user account.
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

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Username       string   `json:"username"`
	Email          string   `json:"email"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	OrganizationID string   `json:"organizationId,omitempty"`
	Status         string   `json:"status,omitempty"`
	Roles          []string `json:"roles,omitempty"`
}

// UpdateUserRequest is a partial user update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Username       *string   `json:"username,omitempty"`
	Email          *string   `json:"email,omitempty"`
	FirstName      *string   `json:"firstName,omitempty"`
	LastName       *string   `json:"lastName,omitempty"`
	OrganizationID *string   `json:"organizationId,omitempty"`
	Status         *string   `json:"status,omitempty"`
	Roles          *[]string `json:"roles,omitempty"`
}

// Role is a named set of privileges.
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

// Privilege is a single grantable permission.
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

// Address is a postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// LegalEntity is a registered company owned by a tenant.
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

// Change is a single field difference recorded on an audit entry.
type Change struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// AuditEntry is one audit log record.
type AuditEntry struct {
	ID           string    `json:"id"`
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

// AuditQueryOptions filters an audit query. DateFrom and DateTo accept
// YYYY-MM-DD or RFC 3339 timestamps.
type AuditQueryOptions struct {
	UserID       string
	Action       string
	ResourceType string
	Search       string
	DateFrom     string
	DateTo       string
	Limit        int
	Offset       int
}

// RowError describes one rejected import row. Row counts the header as 1.
type RowError struct {
	Row   int               `json:"row"`
	Error string            `json:"error"`
	Data  map[string]string `json:"data"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Success         bool       `json:"success"`
	TotalProcessed  int        `json:"totalProcessed"`
	SuccessCount    int        `json:"successCount"`
	ErrorCount      int        `json:"errorCount"`
	Errors          []RowError `json:"errors"`
	ErrorsTruncated bool       `json:"errorsTruncated,omitempty"`
	Created         []string   `json:"created,omitempty"`
}

// ImportOptions controls a bulk import. Without Commit the file is only
// validated.
type ImportOptions struct {
	Filename string
	Format   string
	Commit   bool
}

// ExportOptions controls a bulk export.
type ExportOptions struct {
	Format         string
	OmitHeaders    bool
	SelectedFields []string
}

// File is a downloaded export or template.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CountByKey is one bucket of a report breakdown.
type CountByKey struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ReportSummary aggregates a tenant's directory.
type ReportSummary struct {
	TenantID             string         `json:"tenantId"`
	TotalUsers           int            `json:"totalUsers"`
	ActiveUsers          int            `json:"activeUsers"`
	ActivePercentage     float64        `json:"activePercentage"`
	TotalOrganizations   int            `json:"totalOrganizations"`
	TotalRoles           int            `json:"totalRoles"`
	TotalPrivileges      int            `json:"totalPrivileges"`
	TotalLegalEntities   int            `json:"totalLegalEntities"`
	UsersByStatus        map[string]int `json:"usersByStatus"`
	UsersByOrganization  []CountByKey   `json:"usersByOrganization"`
	UsersByRole          []CountByKey   `json:"usersByRole"`
	PrivilegesByCategory []CountByKey   `json:"privilegesByCategory"`
	RecentActivity       []AuditEntry   `json:"recentActivity"`
}
