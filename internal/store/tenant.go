package store

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/ids"
	"github.com/persistorai/tenantadmin/internal/models"
)

// platformScope is the partition key for records that belong to no tenant.
const platformScope = ""

// TenantStore holds the platform-level tenant collection.
type TenantStore struct {
	c *collection[models.Tenant]
}

// NewTenantStore creates a TenantStore.
func NewTenantStore(persister Persister) *TenantStore {
	return &TenantStore{c: newCollection(KindTenant, models.ErrTenantNotFound, models.Tenant.Clone, persister)}
}

// ListTenants returns all tenants in creation order.
func (s *TenantStore) ListTenants(_ context.Context) ([]models.Tenant, error) {
	return s.c.list(platformScope), nil
}

// GetTenant returns a tenant by id.
func (s *TenantStore) GetTenant(_ context.Context, id string) (*models.Tenant, error) {
	t, err := s.c.get(platformScope, id)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTenant inserts a tenant with a server-assigned id.
func (s *TenantStore) CreateTenant(ctx context.Context, req models.CreateTenantRequest) (*models.Tenant, error) {
	ts := now()
	t := models.Tenant{
		ID:          ids.New(ids.PrefixTenant),
		Name:        req.Name,
		Description: req.Description,
		Domain:      req.Domain,
		Status:      req.Status,
		Settings:    req.Settings,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	created, err := s.c.insert(ctx, platformScope, t.ID, t, nil)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateTenant applies the non-nil fields of req and bumps UpdatedAt.
func (s *TenantStore) UpdateTenant(ctx context.Context, id string, req models.UpdateTenantRequest) (*models.Tenant, error) {
	updated, _, err := s.c.update(ctx, platformScope, id, func(_ *partition[models.Tenant], t *models.Tenant) error {
		setIf(&t.Name, req.Name)
		setIf(&t.Description, req.Description)
		setIf(&t.Domain, req.Domain)
		setIf(&t.Status, req.Status)

		if req.Settings != nil {
			t.Settings = *req.Settings
		}

		t.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// PutTenant stores a complete record as given, keeping its id and timestamps.
func (s *TenantStore) PutTenant(ctx context.Context, t models.Tenant) error {
	_, err := s.c.insert(ctx, platformScope, t.ID, t.Clone(), nil)
	return err
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
