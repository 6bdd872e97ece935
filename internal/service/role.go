package service

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/models"
)

// ListRoles returns the tenant's roles matching filter. Roles have no status;
// a status filter matches "system" or "custom".
func (s *AccessService) ListRoles(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.Role, error) {
	roles, err := s.store.Roles.ListRoles(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return filterList(roles, filter, func(r *models.Role) bool {
		kind := "custom"
		if r.IsSystemRole {
			kind = "system"
		}

		return filter.Match(kind, r.Name, r.Description)
	}), nil
}

// GetRole returns a role by id (pass-through).
func (s *AccessService) GetRole(ctx context.Context, tenantID, id string) (*models.Role, error) {
	return s.store.Roles.GetRole(ctx, tenantID, id)
}

// CreateRole validates and creates a role. Every privilege must exist in the tenant.
func (s *AccessService) CreateRole(ctx context.Context, tenantID string, req models.CreateRoleRequest) (*models.Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if missing := s.store.Privileges.MissingPrivilege(tenantID, req.Privileges); missing != "" {
		return nil, models.ErrDanglingReference("privileges", missing)
	}

	r, err := s.store.Roles.CreateRole(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	s.auditAsync(ctx, tenantID, models.ActionCreate, models.ResourceRole, r.ID, r.Name, nil)
	s.publish(tenantID, "role.create", r)

	return r, nil
}

// UpdateRole validates and applies a partial role update.
func (s *AccessService) UpdateRole(ctx context.Context, tenantID, id string, req models.UpdateRoleRequest) (*models.Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.Roles.GetRole(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Privileges != nil {
		if missing := s.store.Privileges.MissingPrivilege(tenantID, *req.Privileges); missing != "" {
			return nil, models.ErrDanglingReference("privileges", missing)
		}
	}

	r, err := s.store.Roles.UpdateRole(ctx, tenantID, id, req)
	if err != nil {
		return nil, err
	}

	var changes []models.Change
	changes = track(changes, "name", before.Name, r.Name)
	changes = track(changes, "description", before.Description, r.Description)
	changes = track(changes, "isSystemRole", before.IsSystemRole, r.IsSystemRole)
	changes = trackIDs(changes, "privileges", before.Privileges, r.Privileges)

	s.auditAsync(ctx, tenantID, models.ActionUpdate, models.ResourceRole, r.ID, r.Name, changes)
	s.publish(tenantID, "role.update", r)

	return r, nil
}

// LinkPrivilege adds privilegeID to the role. Linking an already linked
// privilege succeeds without writing anything.
func (s *AccessService) LinkPrivilege(ctx context.Context, tenantID, roleID, privilegeID string) (*models.Role, error) {
	if _, err := s.store.Roles.GetRole(ctx, tenantID, roleID); err != nil {
		return nil, err
	}

	if missing := s.store.Privileges.MissingPrivilege(tenantID, []string{privilegeID}); missing != "" {
		return nil, models.ErrDanglingReference("privilegeId", missing)
	}

	r, changed, err := s.store.Roles.AddPrivilege(ctx, tenantID, roleID, privilegeID)
	if err != nil {
		return nil, err
	}

	s.afterToggle(ctx, tenantID, "link_privilege", changed, models.ResourceRole, r.ID, r.Name,
		models.Change{Field: "privileges", OldValue: nil, NewValue: privilegeID}, "role.privilege_link", r)

	return r, nil
}

// UnlinkPrivilege removes privilegeID from the role without checking that
// the privilege still exists.
func (s *AccessService) UnlinkPrivilege(ctx context.Context, tenantID, roleID, privilegeID string) (*models.Role, error) {
	r, changed, err := s.store.Roles.RemovePrivilege(ctx, tenantID, roleID, privilegeID)
	if err != nil {
		return nil, err
	}

	s.afterToggle(ctx, tenantID, "unlink_privilege", changed, models.ResourceRole, r.ID, r.Name,
		models.Change{Field: "privileges", OldValue: privilegeID, NewValue: nil}, "role.privilege_unlink", r)

	return r, nil
}
