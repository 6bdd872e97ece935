package client

import (
	"context"
	"net/url"
)

// RoleService handles roles and their privilege links.
type RoleService struct {
	c *Client
}

func rolePath(id string) string { return "/api/v1/roles/" + url.PathEscape(id) }

// List returns the tenant's roles matching opts.
func (s *RoleService) List(ctx context.Context, opts *ListOptions) ([]Role, error) {
	var resp listResponse[Role]
	if err := s.c.get(ctx, "/api/v1/roles", listParams(opts), &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Get returns a single role by ID.
func (s *RoleService) Get(ctx context.Context, id string) (*Role, error) {
	var r Role
	if err := s.c.get(ctx, rolePath(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// LinkPrivilege grants a privilege to a role.
func (s *RoleService) LinkPrivilege(ctx context.Context, roleID, privilegeID string) (*Role, error) {
	var r Role
	if err := s.c.put(ctx, rolePath(roleID)+"/privileges/"+url.PathEscape(privilegeID), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UnlinkPrivilege revokes a privilege from a role.
func (s *RoleService) UnlinkPrivilege(ctx context.Context, roleID, privilegeID string) (*Role, error) {
	var r Role
	if err := s.c.del(ctx, rolePath(roleID)+"/privileges/"+url.PathEscape(privilegeID), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
