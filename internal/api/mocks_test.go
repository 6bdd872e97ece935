package api_test

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/models"
)

// mockUserService implements api.UserService for testing.
type mockUserService struct {
	listFn       func(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.User, error)
	getFn        func(ctx context.Context, tenantID, id string) (*models.User, error)
	createFn     func(ctx context.Context, tenantID string, req models.CreateUserRequest) (*models.User, error)
	updateFn     func(ctx context.Context, tenantID, id string, req models.UpdateUserRequest) (*models.User, error)
	assignRoleFn func(ctx context.Context, tenantID, userID, roleID string) (*models.User, error)
	removeRoleFn func(ctx context.Context, tenantID, userID, roleID string) (*models.User, error)
}

func (m *mockUserService) ListUsers(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.User, error) {
	return m.listFn(ctx, tenantID, filter)
}

func (m *mockUserService) GetUser(ctx context.Context, tenantID, id string) (*models.User, error) {
	return m.getFn(ctx, tenantID, id)
}

func (m *mockUserService) CreateUser(ctx context.Context, tenantID string, req models.CreateUserRequest) (*models.User, error) {
	return m.createFn(ctx, tenantID, req)
}

func (m *mockUserService) UpdateUser(ctx context.Context, tenantID, id string, req models.UpdateUserRequest) (*models.User, error) {
	return m.updateFn(ctx, tenantID, id, req)
}

func (m *mockUserService) AssignRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, error) {
	return m.assignRoleFn(ctx, tenantID, userID, roleID)
}

func (m *mockUserService) RemoveRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, error) {
	return m.removeRoleFn(ctx, tenantID, userID, roleID)
}

// mockAuditService implements api.AuditService for testing.
type mockAuditService struct {
	recordFn func(ctx context.Context, tenantID string, entry models.AuditLog) (*models.AuditLog, error)
	queryFn  func(ctx context.Context, tenantID string, filters models.AuditFilters) ([]models.AuditLog, bool, error)
	purgeFn  func(ctx context.Context, tenantID string, retentionDays int) (int, error)
}

func (m *mockAuditService) RecordAudit(ctx context.Context, tenantID string, entry models.AuditLog) (*models.AuditLog, error) {
	return m.recordFn(ctx, tenantID, entry)
}

func (m *mockAuditService) QueryAudit(ctx context.Context, tenantID string, filters models.AuditFilters) ([]models.AuditLog, bool, error) {
	return m.queryFn(ctx, tenantID, filters)
}

func (m *mockAuditService) PurgeOldEntries(ctx context.Context, tenantID string, retentionDays int) (int, error) {
	return m.purgeFn(ctx, tenantID, retentionDays)
}

// mockBulkService implements api.BulkService for testing.
type mockBulkService struct {
	importFn   func(ctx context.Context, tenantID string, src models.ImportSource, opts models.ImportOptions) (*models.ImportResult, error)
	exportFn   func(ctx context.Context, tenantID string, opts models.ExportOptions) (*models.ExportFile, error)
	templateFn func() *models.ExportFile
}

func (m *mockBulkService) ImportUsers(
	ctx context.Context, tenantID string, src models.ImportSource, opts models.ImportOptions,
) (*models.ImportResult, error) {
	return m.importFn(ctx, tenantID, src, opts)
}

func (m *mockBulkService) ExportTenantUsers(ctx context.Context, tenantID string, opts models.ExportOptions) (*models.ExportFile, error) {
	return m.exportFn(ctx, tenantID, opts)
}

func (m *mockBulkService) ImportTemplate() *models.ExportFile {
	return m.templateFn()
}

// mockAuthService implements api.AuthService for testing.
type mockAuthService struct {
	loginFn  func(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	logoutFn func(ctx context.Context, tenantID string) error
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) Logout(ctx context.Context, tenantID string) error {
	return m.logoutFn(ctx, tenantID)
}
