package service

import (
	"context"

	"github.com/persistorai/tenantadmin/internal/models"
)

// ListOrganizations returns the tenant's organizations matching filter.
func (s *AccessService) ListOrganizations(
	ctx context.Context, tenantID string, filter models.ListFilter,
) ([]models.Organization, error) {
	orgs, err := s.store.Organizations.ListOrganizations(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return filterList(orgs, filter, func(o *models.Organization) bool {
		return filter.Match(o.Status, o.Name, o.Description)
	}), nil
}

// GetOrganization returns an organization by id (pass-through).
func (s *AccessService) GetOrganization(ctx context.Context, tenantID, id string) (*models.Organization, error) {
	return s.store.Organizations.GetOrganization(ctx, tenantID, id)
}

// CreateOrganization validates and creates an organization. The parent, if
// any, is checked inside the store's write lock.
func (s *AccessService) CreateOrganization(
	ctx context.Context, tenantID string, req models.CreateOrganizationRequest,
) (*models.Organization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o, err := s.store.Organizations.CreateOrganization(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	s.auditAsync(ctx, tenantID, models.ActionCreate, models.ResourceOrganization, o.ID, o.Name, nil)
	s.publish(tenantID, "organization.create", o)

	return o, nil
}

// UpdateOrganization validates and applies a partial organization update.
func (s *AccessService) UpdateOrganization(
	ctx context.Context, tenantID, id string, req models.UpdateOrganizationRequest,
) (*models.Organization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.Organizations.GetOrganization(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	o, err := s.store.Organizations.UpdateOrganization(ctx, tenantID, id, req)
	if err != nil {
		return nil, err
	}

	var changes []models.Change
	changes = track(changes, "name", before.Name, o.Name)
	changes = track(changes, "description", before.Description, o.Description)
	changes = track(changes, "parentId", before.ParentID, o.ParentID)
	changes = track(changes, "type", before.Type, o.Type)
	changes = track(changes, "status", before.Status, o.Status)

	s.auditAsync(ctx, tenantID, models.ActionUpdate, models.ResourceOrganization, o.ID, o.Name, changes)
	s.publish(tenantID, "organization.update", o)

	return o, nil
}

// DeleteOrganization hard-deletes an organization. Children and members keep
// their now-stale references; nothing cascades.
func (s *AccessService) DeleteOrganization(ctx context.Context, tenantID, id string) error {
	o, err := s.store.Organizations.DeleteOrganization(ctx, tenantID, id)
	if err != nil {
		return err
	}

	s.auditAsync(ctx, tenantID, models.ActionDelete, models.ResourceOrganization, o.ID, o.Name, nil)
	s.publish(tenantID, "organization.delete", map[string]string{"id": o.ID})

	return nil
}
