package service

import (
	"context"
	"slices"

	"github.com/persistorai/tenantadmin/internal/metrics"
	"github.com/persistorai/tenantadmin/internal/models"
)

// ListUsers returns the tenant's users matching filter. Search covers first
// name, last name, email and username.
func (s *AccessService) ListUsers(ctx context.Context, tenantID string, filter models.ListFilter) ([]models.User, error) {
	users, err := s.store.Users.ListUsers(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return filterList(users, filter, func(u *models.User) bool {
		return filter.Match(u.Status, u.FirstName, u.LastName, u.Email, u.Username)
	}), nil
}

// GetUser returns a user by id (pass-through).
func (s *AccessService) GetUser(ctx context.Context, tenantID, id string) (*models.User, error) {
	return s.store.Users.GetUser(ctx, tenantID, id)
}

// CreateUser validates and creates a user. The organization and every role
// must exist in the tenant.
func (s *AccessService) CreateUser(ctx context.Context, tenantID string, req models.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkUserRefs(ctx, tenantID, req.OrganizationID, req.Roles); err != nil {
		return nil, err
	}

	u, err := s.store.Users.CreateUser(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	s.auditAsync(ctx, tenantID, models.ActionCreate, models.ResourceUser, u.ID, u.FullName(), nil)
	s.publish(tenantID, "user.create", u)

	return u, nil
}

// UpdateUser validates and applies a partial user update.
func (s *AccessService) UpdateUser(
	ctx context.Context, tenantID, id string, req models.UpdateUserRequest,
) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	before, err := s.store.Users.GetUser(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	// Only references the update introduces are checked, so a user whose
	// organization or role has since been deleted can still be edited.
	orgID := ""
	if req.OrganizationID != nil && *req.OrganizationID != before.OrganizationID {
		orgID = *req.OrganizationID
	}

	var roles []string
	if req.Roles != nil {
		for _, r := range *req.Roles {
			if !slices.Contains(before.Roles, r) {
				roles = append(roles, r)
			}
		}
	}

	if err := s.checkUserRefs(ctx, tenantID, orgID, roles); err != nil {
		return nil, err
	}

	u, err := s.store.Users.UpdateUser(ctx, tenantID, id, req)
	if err != nil {
		return nil, err
	}

	var changes []models.Change
	changes = track(changes, "username", before.Username, u.Username)
	changes = track(changes, "email", before.Email, u.Email)
	changes = track(changes, "firstName", before.FirstName, u.FirstName)
	changes = track(changes, "lastName", before.LastName, u.LastName)
	changes = track(changes, "organizationId", before.OrganizationID, u.OrganizationID)
	changes = track(changes, "status", before.Status, u.Status)
	changes = trackIDs(changes, "roles", before.Roles, u.Roles)

	s.auditAsync(ctx, tenantID, models.ActionUpdate, models.ResourceUser, u.ID, u.FullName(), changes)
	s.publish(tenantID, "user.update", u)

	return u, nil
}

// AssignRole adds roleID to the user's roles. Assigning a role the user
// already holds succeeds without writing anything.
func (s *AccessService) AssignRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, error) {
	if _, err := s.store.Users.GetUser(ctx, tenantID, userID); err != nil {
		return nil, err
	}

	if missing := s.store.Roles.MissingRole(tenantID, []string{roleID}); missing != "" {
		return nil, models.ErrDanglingReference("roleId", missing)
	}

	u, changed, err := s.store.Users.AddRole(ctx, tenantID, userID, roleID)
	if err != nil {
		return nil, err
	}

	s.afterToggle(ctx, tenantID, "assign_role", changed, models.ResourceUser, u.ID, u.FullName(),
		models.Change{Field: "roles", OldValue: nil, NewValue: roleID}, "user.role_assign", u)

	return u, nil
}

// RemoveRole removes roleID from the user's roles. The role id is not
// checked, so stale assignments can always be cleaned up.
func (s *AccessService) RemoveRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, error) {
	u, changed, err := s.store.Users.RemoveRole(ctx, tenantID, userID, roleID)
	if err != nil {
		return nil, err
	}

	s.afterToggle(ctx, tenantID, "remove_role", changed, models.ResourceUser, u.ID, u.FullName(),
		models.Change{Field: "roles", OldValue: roleID, NewValue: nil}, "user.role_remove", u)

	return u, nil
}

// afterToggle counts a relationship operation and, when it changed state,
// audits it as an update and publishes the event.
func (s *AccessService) afterToggle(
	ctx context.Context, tenantID, op string, changed bool,
	resourceType, resourceID, resourceName string, change models.Change, eventType string, payload any,
) {
	if !changed {
		metrics.RelationshipOpsTotal.WithLabelValues(op, "noop").Inc()
		return
	}

	metrics.RelationshipOpsTotal.WithLabelValues(op, "changed").Inc()
	s.auditAsync(ctx, tenantID, models.ActionUpdate, resourceType, resourceID, resourceName, []models.Change{change})
	s.publish(tenantID, eventType, payload)
}

// checkUserRefs rejects an organization or role id that does not resolve in
// the tenant. An empty orgID is not a reference.
func (s *AccessService) checkUserRefs(ctx context.Context, tenantID, orgID string, roles []string) error {
	if orgID != "" {
		if _, err := s.store.Organizations.GetOrganization(ctx, tenantID, orgID); err != nil {
			return models.ErrDanglingReference("organizationId", orgID)
		}
	}

	if missing := s.store.Roles.MissingRole(tenantID, roles); missing != "" {
		return models.ErrDanglingReference("roles", missing)
	}

	return nil
}
