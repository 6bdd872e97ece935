package store

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/ids"
	"github.com/persistorai/tenantadmin/internal/models"
)

// OrganizationStore holds each tenant's organization tree.
type OrganizationStore struct {
	c *collection[models.Organization]
}

// NewOrganizationStore creates an OrganizationStore.
func NewOrganizationStore(persister Persister) *OrganizationStore {
	return &OrganizationStore{
		c: newCollection(KindOrganization, models.ErrOrganizationNotFound, models.Organization.Clone, persister),
	}
}

// ListOrganizations returns the tenant's organizations in creation order.
func (s *OrganizationStore) ListOrganizations(_ context.Context, tenantID string) ([]models.Organization, error) {
	return s.c.list(tenantID), nil
}

// GetOrganization returns an organization by id.
func (s *OrganizationStore) GetOrganization(_ context.Context, tenantID, id string) (*models.Organization, error) {
	o, err := s.c.get(tenantID, id)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// CountOrganizations returns the number of organizations in the tenant.
func (s *OrganizationStore) CountOrganizations(tenantID string) int {
	return s.c.count(tenantID)
}

// CreateOrganization inserts an organization. A parent, if named, must exist in the tenant.
func (s *OrganizationStore) CreateOrganization(
	ctx context.Context, tenantID string, req models.CreateOrganizationRequest,
) (*models.Organization, error) {
	ts := now()
	o := models.Organization{
		ID:          ids.New(ids.PrefixOrganization),
		Name:        req.Name,
		Description: req.Description,
		TenantID:    tenantID,
		ParentID:    req.ParentID,
		Type:        req.Type,
		Status:      req.Status,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	created, err := s.c.insert(ctx, tenantID, o.ID, o, func(p *partition[models.Organization]) error {
		return checkParent(p, o.ID, o.ParentID)
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateOrganization applies the non-nil fields of req. A new parent must
// exist in the tenant and must not make the organization its own ancestor.
func (s *OrganizationStore) UpdateOrganization(
	ctx context.Context, tenantID, id string, req models.UpdateOrganizationRequest,
) (*models.Organization, error) {
	updated, _, err := s.c.update(ctx, tenantID, id, func(p *partition[models.Organization], o *models.Organization) error {
		if req.ParentID != nil && *req.ParentID != o.ParentID {
			if err := checkParent(p, o.ID, *req.ParentID); err != nil {
				return err
			}

			o.ParentID = *req.ParentID
		}

		setIf(&o.Name, req.Name)
		setIf(&o.Description, req.Description)
		setIf(&o.Type, req.Type)
		setIf(&o.Status, req.Status)
		o.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteOrganization hard-removes an organization. Children keep their
// parentId and users keep their organizationId.
func (s *OrganizationStore) DeleteOrganization(ctx context.Context, tenantID, id string) (*models.Organization, error) {
	removed, err := s.c.remove(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	return &removed, nil
}

// PutOrganization stores a complete record as given.
func (s *OrganizationStore) PutOrganization(ctx context.Context, o models.Organization) error {
	_, err := s.c.insert(ctx, o.TenantID, o.ID, o, nil)
	return err
}

// checkParent validates parentID for organization id: it must exist and the
// walk up from it must never reach id. Caller holds the collection lock.
func checkParent(p *partition[models.Organization], id, parentID string) error {
	if parentID == "" {
		return nil
	}

	if parentID == id {
		return models.NewValidationError("parentId", "organization cannot be its own parent")
	}

	seen := map[string]bool{}

	for cur := parentID; cur != ""; {
		if cur == id {
			return models.NewValidationError("parentId", "parent %q would create a cycle", parentID)
		}

		if seen[cur] {
			break
		}
		seen[cur] = true

		o, ok := p.get(cur)
		if !ok {
			if cur == parentID {
				return models.ErrDanglingReference("parentId", parentID)
			}

			break
		}

		cur = o.ParentID
	}

	return nil
}
