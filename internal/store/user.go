package store

import (
	"context"
	"slices"

	"github.com/persistorai/tenantadmin/internal/ids"
	"github.com/persistorai/tenantadmin/internal/models"
)

// UserStore holds each tenant's users.
type UserStore struct {
	c *collection[models.User]
}

// NewUserStore creates a UserStore.
func NewUserStore(persister Persister) *UserStore {
	return &UserStore{c: newCollection(KindUser, models.ErrUserNotFound, models.User.Clone, persister)}
}

// ListUsers returns the tenant's users in creation order.
func (s *UserStore) ListUsers(_ context.Context, tenantID string) ([]models.User, error) {
	return s.c.list(tenantID), nil
}

// GetUser returns a user by id.
func (s *UserStore) GetUser(_ context.Context, tenantID, id string) (*models.User, error) {
	u, err := s.c.get(tenantID, id)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// CreateUser inserts a user with a server-assigned id.
func (s *UserStore) CreateUser(ctx context.Context, tenantID string, req models.CreateUserRequest) (*models.User, error) {
	ts := now()
	u := models.User{
		ID:             ids.New(ids.PrefixUser),
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		TenantID:       tenantID,
		OrganizationID: req.OrganizationID,
		Status:         req.Status,
		Roles:          models.Dedupe(req.Roles),
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}

	created, err := s.c.insert(ctx, tenantID, u.ID, u, nil)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateUser applies the non-nil fields of req and bumps UpdatedAt.
func (s *UserStore) UpdateUser(ctx context.Context, tenantID, id string, req models.UpdateUserRequest) (*models.User, error) {
	updated, _, err := s.c.update(ctx, tenantID, id, func(_ *partition[models.User], u *models.User) error {
		setIf(&u.Username, req.Username)
		setIf(&u.Email, req.Email)
		setIf(&u.FirstName, req.FirstName)
		setIf(&u.LastName, req.LastName)
		setIf(&u.OrganizationID, req.OrganizationID)
		setIf(&u.Status, req.Status)

		if req.Roles != nil {
			u.Roles = models.Dedupe(*req.Roles)
		}

		u.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

// AddRole adds roleID to the user's role set. The boolean result is false
// when the role was already assigned, in which case nothing is written.
func (s *UserStore) AddRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, bool, error) {
	u, changed, err := s.c.update(ctx, tenantID, userID, func(_ *partition[models.User], u *models.User) error {
		if u.HasRole(roleID) {
			return errNoChange
		}

		u.Roles = append(u.Roles, roleID)
		u.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &u, changed, nil
}

// RemoveRole removes roleID from the user's role set. The boolean result is
// false when the role was not assigned.
func (s *UserStore) RemoveRole(ctx context.Context, tenantID, userID, roleID string) (*models.User, bool, error) {
	u, changed, err := s.c.update(ctx, tenantID, userID, func(_ *partition[models.User], u *models.User) error {
		if !u.HasRole(roleID) {
			return errNoChange
		}

		u.Roles = slices.DeleteFunc(u.Roles, func(id string) bool { return id == roleID })
		u.UpdatedAt = now()

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &u, changed, nil
}

// PutUser stores a complete record as given.
func (s *UserStore) PutUser(ctx context.Context, u models.User) error {
	_, err := s.c.insert(ctx, u.TenantID, u.ID, u.Clone(), nil)
	return err
}
