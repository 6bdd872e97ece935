// Package domain defines the canonical service interfaces shared across API
// layers (REST handlers, CLI client, seed). Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/models"
)

// TenantService defines tenant operations. Tenants are the scoping root and
// are not themselves tenant-filtered.
type TenantService interface {
	ListTenants(ctx context.Context, filter models.ListFilter) ([]models.Tenant, error)
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
	CreateTenant(ctx context.Context, req models.CreateTenantRequest) (*models.Tenant, error)
	UpdateTenant(ctx context.Context, id string, req models.UpdateTenantRequest) (*models.Tenant, error)
}

// OrganizationService defines organization operations.
type OrganizationService interface {
	ListOrganizations(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.Organization, error)
	GetOrganization(ctx context.Context, tenantID, id string) (*models.Organization, error)
	CreateOrganization(ctx context.Context, tenantID string, req models.CreateOrganizationRequest) (*models.Organization, error)
	UpdateOrganization(ctx context.Context, tenantID, id string, req models.UpdateOrganizationRequest) (*models.Organization, error)
	DeleteOrganization(ctx context.Context, tenantID, id string) error
}

// UserService defines user operations including role assignment.
type UserService interface {
	ListUsers(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.User, error)
	GetUser(ctx context.Context, tenantID, id string) (*models.User, error)
	CreateUser(ctx context.Context, tenantID string, req models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, tenantID, id string, req models.UpdateUserRequest) (*models.User, error)
	AssignRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, error)
	RemoveRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, error)
}

// RoleService defines role operations including privilege linking.
type RoleService interface {
	ListRoles(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.Role, error)
	GetRole(ctx context.Context, tenantID, id string) (*models.Role, error)
	CreateRole(ctx context.Context, tenantID string, req models.CreateRoleRequest) (*models.Role, error)
	UpdateRole(ctx context.Context, tenantID, id string, req models.UpdateRoleRequest) (*models.Role, error)
	LinkPrivilege(ctx context.Context, tenantID, roleID, privilegeID string) (*models.Role, error)
	UnlinkPrivilege(ctx context.Context, tenantID, roleID, privilegeID string) (*models.Role, error)
}

// PrivilegeService defines privilege operations.
type PrivilegeService interface {
	ListPrivileges(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.Privilege, error)
	GetPrivilege(ctx context.Context, tenantID, id string) (*models.Privilege, error)
	CreatePrivilege(ctx context.Context, tenantID string, req models.CreatePrivilegeRequest) (*models.Privilege, error)
	UpdatePrivilege(ctx context.Context, tenantID, id string, req models.UpdatePrivilegeRequest) (*models.Privilege, error)
}

// LegalEntityService defines legal entity operations.
type LegalEntityService interface {
	ListLegalEntities(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.LegalEntity, error)
	GetLegalEntity(ctx context.Context, tenantID, id string) (*models.LegalEntity, error)
	CreateLegalEntity(ctx context.Context, tenantID string, req models.CreateLegalEntityRequest) (*models.LegalEntity, error)
	UpdateLegalEntity(ctx context.Context, tenantID, id string, req models.UpdateLegalEntityRequest) (*models.LegalEntity, error)
}

// AuditService defines audit log query and maintenance operations.
type AuditService interface {
	Auditor
	QueryAudit(ctx context.Context, tenantID string, filters models.AuditFilters) ([]models.AuditLog, bool, error)
	PurgeOldEntries(ctx context.Context, tenantID string, retentionDays int) (int, error)
}

// Auditor is the minimal interface for recording audit entries.
type Auditor interface {
	RecordAudit(ctx context.Context, tenantID string, entry models.AuditLog) (*models.AuditLog, error)
}

// BulkService defines user import and export.
type BulkService interface {
	ImportUsers(ctx context.Context, tenantID string, src models.ImportSource, opts models.ImportOptions) (*models.ImportResult, error)
	ExportTenantUsers(ctx context.Context, tenantID string, opts models.ExportOptions) (*models.ExportFile, error)
	ImportTemplate() *models.ExportFile
}

// ReportService defines the dashboard summary.
type ReportService interface {
	Summary(ctx context.Context, tenantID string) (*models.ReportSummary, error)
}

// AuthService defines operator login and logout.
type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, tenantID string) error
}
