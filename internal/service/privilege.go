package service

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/models"
)

// ListPrivileges returns the tenant's privileges matching filter. The status
// filter matches the privilege category.
func (s *AccessService) ListPrivileges(
	ctx context.Context, tenantID string, filter models.ListFilter,
) ([]models.Privilege, error) {
	privs, err := s.store.Privileges.ListPrivileges(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return filterList(privs, filter, func(p *models.Privilege) bool {
		return filter.Match(p.Category, p.Name, p.Description)
	}), nil
}

// GetPrivilege returns a privilege by id (pass-through).
func (s *AccessService) GetPrivilege(ctx context.Context, tenantID, id string) (*models.Privilege, error) {
	return s.store.Privileges.GetPrivilege(ctx, tenantID, id)
}

// CreatePrivilege validates and creates a privilege.
func (s *AccessService) CreatePrivilege(
	ctx context.Context, tenantID string, req models.CreatePrivilegeRequest,
) (*models.Privilege, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.store.Privileges.CreatePrivilege(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	s.auditAsync(ctx, tenantID, models.ActionCreate, models.ResourcePrivilege, p.ID, p.Name, nil)
	s.publish(tenantID, "privilege.create", p)

	return p, nil
}

// UpdatePrivilege validates and applies a partial privilege update.
func (s *AccessService) UpdatePrivilege(
	ctx context.Context, tenantID, id string, req models.UpdatePrivilegeRequest,
) (*models.Privilege, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.Privileges.GetPrivilege(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Privileges.UpdatePrivilege(ctx, tenantID, id, req)
	if err != nil {
		return nil, err
	}

	var changes []models.Change
	changes = track(changes, "name", before.Name, p.Name)
	changes = track(changes, "description", before.Description, p.Description)
	changes = track(changes, "category", before.Category, p.Category)
	changes = track(changes, "isSystemPrivilege", before.IsSystemPrivilege, p.IsSystemPrivilege)

	s.auditAsync(ctx, tenantID, models.ActionUpdate, models.ResourcePrivilege, p.ID, p.Name, changes)
	s.publish(tenantID, "privilege.update", p)

	return p, nil
}
