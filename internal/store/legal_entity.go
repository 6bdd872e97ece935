package store

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/ids"
	"github.com/persistorai/tenantadmin/internal/models"
)

// LegalEntityStore holds each tenant's legal entities.
type LegalEntityStore struct {
	c *collection[models.LegalEntity]
}

// NewLegalEntityStore creates a LegalEntityStore.
func NewLegalEntityStore(persister Persister) *LegalEntityStore {
	return &LegalEntityStore{
		c: newCollection(KindLegalEntity, models.ErrLegalEntityNotFound, models.LegalEntity.Clone, persister),
	}
}

// ListLegalEntities returns the tenant's legal entities in creation order.
func (s *LegalEntityStore) ListLegalEntities(_ context.Context, tenantID string) ([]models.LegalEntity, error) {
	return s.c.list(tenantID), nil
}

// GetLegalEntity returns a legal entity by id.
func (s *LegalEntityStore) GetLegalEntity(_ context.Context, tenantID, id string) (*models.LegalEntity, error) {
	l, err := s.c.get(tenantID, id)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// CreateLegalEntity inserts a legal entity with a server-assigned id.
func (s *LegalEntityStore) CreateLegalEntity(
	ctx context.Context, tenantID string, req models.CreateLegalEntityRequest,
) (*models.LegalEntity, error) {
	ts := now()
	l := models.LegalEntity{
		ID:                 ids.New(ids.PrefixLegalEntity),
		Name:               req.Name,
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		TenantID:           tenantID,
		Address:            req.Address,
		Status:             req.Status,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}

	created, err := s.c.insert(ctx, tenantID, l.ID, l, nil)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateLegalEntity applies the non-nil fields of req and bumps UpdatedAt.
func (s *LegalEntityStore) UpdateLegalEntity(
	ctx context.Context, tenantID, id string, req models.UpdateLegalEntityRequest,
) (*models.LegalEntity, error) {
	updated, _, err := s.c.update(ctx, tenantID, id, func(_ *partition[models.LegalEntity], l *models.LegalEntity) error {
		setIf(&l.Name, req.Name)
		setIf(&l.Type, req.Type)
		setIf(&l.RegistrationNumber, req.RegistrationNumber)
		setIf(&l.Address, req.Address)
		setIf(&l.Status, req.Status)
		l.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// PutLegalEntity stores a complete record as given.
func (s *LegalEntityStore) PutLegalEntity(ctx context.Context, l models.LegalEntity) error {
	_, err := s.c.insert(ctx, l.TenantID, l.ID, l, nil)
	return err
}
