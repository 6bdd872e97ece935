package service

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/models"
)

// ListLegalEntities returns the tenant's legal entities matching filter.
func (s *AccessService) ListLegalEntities(
	ctx context.Context, tenantID string, filter models.ListFilter,
) ([]models.LegalEntity, error) {
	entities, err := s.store.LegalEntities.ListLegalEntities(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return filterList(entities, filter, func(l *models.LegalEntity) bool {
		return filter.Match(l.Status, l.Name, l.RegistrationNumber)
	}), nil
}

// GetLegalEntity returns a legal entity by id (pass-through).
func (s *AccessService) GetLegalEntity(ctx context.Context, tenantID, id string) (*models.LegalEntity, error) {
	return s.store.LegalEntities.GetLegalEntity(ctx, tenantID, id)
}

// CreateLegalEntity validates and creates a legal entity.
func (s *AccessService) CreateLegalEntity(
	ctx context.Context, tenantID string, req models.CreateLegalEntityRequest,
) (*models.LegalEntity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.store.LegalEntities.CreateLegalEntity(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	s.auditAsync(ctx, tenantID, models.ActionCreate, models.ResourceLegalEntity, l.ID, l.Name, nil)
	s.publish(tenantID, "legal_entity.create", l)

	return l, nil
}

// UpdateLegalEntity validates and applies a partial legal entity update.
func (s *AccessService) UpdateLegalEntity(
	ctx context.Context, tenantID, id string, req models.UpdateLegalEntityRequest,
) (*models.LegalEntity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.LegalEntities.GetLegalEntity(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	l, err := s.store.LegalEntities.UpdateLegalEntity(ctx, tenantID, id, req)
	if err != nil {
		return nil, err
	}

	var changes []models.Change
	changes = track(changes, "name", before.Name, l.Name)
	changes = track(changes, "type", before.Type, l.Type)
	changes = track(changes, "registrationNumber", before.RegistrationNumber, l.RegistrationNumber)
	changes = track(changes, "address", before.Address, l.Address)
	changes = track(changes, "status", before.Status, l.Status)

	s.auditAsync(ctx, tenantID, models.ActionUpdate, models.ResourceLegalEntity, l.ID, l.Name, changes)
	s.publish(tenantID, "legal_entity.update", l)

	return l, nil
}
