package store

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/ids"
	"github.com/persistorai/tenantadmin/internal/models"
)

// PrivilegeStore holds each tenant's privileges.
type PrivilegeStore struct {
	c *collection[models.Privilege]
}

// NewPrivilegeStore creates a PrivilegeStore.
func NewPrivilegeStore(persister Persister) *PrivilegeStore {
	return &PrivilegeStore{c: newCollection(KindPrivilege, models.ErrPrivilegeNotFound, models.Privilege.Clone, persister)}
}

// ListPrivileges returns the tenant's privileges in creation order.
func (s *PrivilegeStore) ListPrivileges(_ context.Context, tenantID string) ([]models.Privilege, error) {
	return s.c.list(tenantID), nil
}

// GetPrivilege returns a privilege by id.
func (s *PrivilegeStore) GetPrivilege(_ context.Context, tenantID, id string) (*models.Privilege, error) {
	p, err := s.c.get(tenantID, id)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// MissingPrivilege returns the first of privilegeIDs that is not a privilege of the tenant, or "".
func (s *PrivilegeStore) MissingPrivilege(tenantID string, privilegeIDs []string) string {
	return s.c.missing(tenantID, privilegeIDs)
}

// CreatePrivilege inserts a privilege with a server-assigned id.
func (s *PrivilegeStore) CreatePrivilege(
	ctx context.Context, tenantID string, req models.CreatePrivilegeRequest,
) (*models.Privilege, error) {
	ts := now()
	p := models.Privilege{
		ID:                ids.New(ids.PrefixPrivilege),
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		TenantID:          tenantID,
		IsSystemPrivilege: req.IsSystemPrivilege,
		CreatedAt:         ts,
		UpdatedAt:         ts,
	}

	created, err := s.c.insert(ctx, tenantID, p.ID, p, nil)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdatePrivilege applies the non-nil fields of req and bumps UpdatedAt.
func (s *PrivilegeStore) UpdatePrivilege(
	ctx context.Context, tenantID, id string, req models.UpdatePrivilegeRequest,
) (*models.Privilege, error) {
	updated, _, err := s.c.update(ctx, tenantID, id, func(_ *partition[models.Privilege], p *models.Privilege) error {
		setIf(&p.Name, req.Name)
		setIf(&p.Description, req.Description)
		setIf(&p.Category, req.Category)
		setIf(&p.IsSystemPrivilege, req.IsSystemPrivilege)
		p.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// PutPrivilege stores a complete record as given.
func (s *PrivilegeStore) PutPrivilege(ctx context.Context, p models.Privilege) error {
	_, err := s.c.insert(ctx, p.TenantID, p.ID, p, nil)
	return err
}
