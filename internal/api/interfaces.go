package api

import "github.com/persistorai/tenantadmin/internal/domain"

// Handler dependencies. Each alias names the slice of the domain a handler
// needs so tests can substitute a narrow mock.
type (
	TenantService       = domain.TenantService
	OrganizationService = domain.OrganizationService
	UserService         = domain.UserService
	RoleService         = domain.RoleService
	PrivilegeService    = domain.PrivilegeService
	LegalEntityService  = domain.LegalEntityService
	AuditService        = domain.AuditService
	BulkService         = domain.BulkService
	ReportService       = domain.ReportService
	AuthService         = domain.AuthService
)
