package service

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/models"
)

// ListTenants returns every tenant matching filter.
func (s *AccessService) ListTenants(ctx context.Context, filter models.ListFilter) ([]models.Tenant, error) {
	tenants, err := s.store.Tenants.ListTenants(ctx)
	if err != nil {
		return nil, err
	}

	return filterList(tenants, filter, func(t *models.Tenant) bool {
		return filter.Match(t.Status, t.Name, t.Description, t.Domain)
	}), nil
}

// GetTenant returns a tenant by id (pass-through).
func (s *AccessService) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return s.store.Tenants.GetTenant(ctx, id)
}

// CreateTenant validates and creates a tenant. The audit entry is filed
// under the new tenant.
func (s *AccessService) CreateTenant(ctx context.Context, req models.CreateTenantRequest) (*models.Tenant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.store.Tenants.CreateTenant(ctx, req)
	if err != nil {
		return nil, err
	}

	s.auditAsync(ctx, t.ID, models.ActionCreate, models.ResourceTenant, t.ID, t.Name, nil)
	s.publish(t.ID, "tenant.create", t)

	return t, nil
}

// UpdateTenant validates and applies a partial tenant update.
func (s *AccessService) UpdateTenant(ctx context.Context, id string, req models.UpdateTenantRequest) (*models.Tenant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.Tenants.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}

	t, err := s.store.Tenants.UpdateTenant(ctx, id, req)
	if err != nil {
		return nil, err
	}

	var changes []models.Change
	changes = track(changes, "name", before.Name, t.Name)
	changes = track(changes, "description", before.Description, t.Description)
	changes = track(changes, "domain", before.Domain, t.Domain)
	changes = track(changes, "status", before.Status, t.Status)
	changes = track(changes, "settings.maxUsers", before.Settings.MaxUsers, t.Settings.MaxUsers)
	changes = track(changes, "settings.customBranding", before.Settings.CustomBranding, t.Settings.CustomBranding)
	changes = trackIDs(changes, "settings.features", before.Settings.Features, t.Settings.Features)

	s.auditAsync(ctx, t.ID, models.ActionUpdate, models.ResourceTenant, t.ID, t.Name, changes)
	s.publish(t.ID, "tenant.update", t)

	return t, nil
}
