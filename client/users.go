package client

import (
	"context"
	"net/url"
)

// UserService handles user CRUD and role assignment.
type UserService struct {
	c *Client
}

func userPath(id string) string { return "/api/v1/users/" + url.PathEscape(id) }

// List returns the tenant's users matching opts.
func (s *UserService) List(ctx context.Context, opts *ListOptions) ([]User, error) {
	var resp listResponse[User]
	if err := s.c.get(ctx, "/api/v1/users", listParams(opts), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Get returns a single user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*User, error) {
	var u User
	if err := s.c.get(ctx, userPath(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create creates a new user.
func (s *UserService) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	var u User
	if err := s.c.post(ctx, "/api/v1/users", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies a partial update to a user.
func (s *UserService) Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	var u User
	if err := s.c.put(ctx, userPath(id), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AssignRole adds a role to a user. Assigning a held role is a no-op.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID string) (*User, error) {
	var u User
	if err := s.c.put(ctx, userPath(userID)+"/roles/"+url.PathEscape(roleID), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// RemoveRole removes a role from a user. Removing an absent role is a no-op.
func (s *UserService) RemoveRole(ctx context.Context, userID, roleID string) (*User, error) {
	var u User
	if err := s.c.del(ctx, userPath(userID)+"/roles/"+url.PathEscape(roleID), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
