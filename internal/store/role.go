package store

import (
	"context"
	"slices"

	"github.com/persistorai/tenantadmin/internal/ids"
	"github.com/persistorai/tenantadmin/internal/models"
)

// RoleStore holds each tenant's roles.
type RoleStore struct {
	c *collection[models.Role]
}

// NewRoleStore creates a RoleStore.
func NewRoleStore(persister Persister) *RoleStore {
	return &RoleStore{c: newCollection(KindRole, models.ErrRoleNotFound, models.Role.Clone, persister)}
}

// ListRoles returns the tenant's roles in creation order.
func (s *RoleStore) ListRoles(_ context.Context, tenantID string) ([]models.Role, error) {
	return s.c.list(tenantID), nil
}

// GetRole returns a role by id.
func (s *RoleStore) GetRole(_ context.Context, tenantID, id string) (*models.Role, error) {
	r, err := s.c.get(tenantID, id)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// MissingRole returns the first of roleIDs that is not a role of the tenant, or "".
func (s *RoleStore) MissingRole(tenantID string, roleIDs []string) string {
	return s.c.missing(tenantID, roleIDs)
}

// CreateRole inserts a role with a server-assigned id.
func (s *RoleStore) CreateRole(ctx context.Context, tenantID string, req models.CreateRoleRequest) (*models.Role, error) {
	ts := now()
	r := models.Role{
		ID:           ids.New(ids.PrefixRole),
		Name:         req.Name,
		Description:  req.Description,
		TenantID:     tenantID,
		Privileges:   models.Dedupe(req.Privileges),
		IsSystemRole: req.IsSystemRole,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	created, err := s.c.insert(ctx, tenantID, r.ID, r, nil)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateRole applies the non-nil fields of req and bumps UpdatedAt.
func (s *RoleStore) UpdateRole(ctx context.Context, tenantID, id string, req models.UpdateRoleRequest) (*models.Role, error) {
	updated, _, err := s.c.update(ctx, tenantID, id, func(_ *partition[models.Role], r *models.Role) error {
		setIf(&r.Name, req.Name)
		setIf(&r.Description, req.Description)
		setIf(&r.IsSystemRole, req.IsSystemRole)

		if req.Privileges != nil {
			r.Privileges = models.Dedupe(*req.Privileges)
		}

		r.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// AddPrivilege links privilegeID to the role. The boolean result is false
// when the privilege was already linked.
func (s *RoleStore) AddPrivilege(ctx context.Context, tenantID, roleID, privilegeID string) (*models.Role, bool, error) {
	r, changed, err := s.c.update(ctx, tenantID, roleID, func(_ *partition[models.Role], r *models.Role) error {
		if r.HasPrivilege(privilegeID) {
			return errNoChange
		}

		r.Privileges = append(r.Privileges, privilegeID)
		r.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &r, changed, nil
}

// RemovePrivilege unlinks privilegeID from the role. The boolean result is
// false when the privilege was not linked.
func (s *RoleStore) RemovePrivilege(ctx context.Context, tenantID, roleID, privilegeID string) (*models.Role, bool, error) {
	r, changed, err := s.c.update(ctx, tenantID, roleID, func(_ *partition[models.Role], r *models.Role) error {
		if !r.HasPrivilege(privilegeID) {
			return errNoChange
		}

		r.Privileges = slices.DeleteFunc(r.Privileges, func(id string) bool { return id == privilegeID })
		r.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &r, changed, nil
}

// PutRole stores a complete record as given.
func (s *RoleStore) PutRole(ctx context.Context, r models.Role) error {
	_, err := s.c.insert(ctx, r.TenantID, r.ID, r.Clone(), nil)
	return err
}
