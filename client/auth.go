package client

import "context"

// AuthService logs the operator in and out.
type AuthService struct {
	c *Client
}

// Login exchanges credentials for a bearer token. On success the client
// uses the token for every later call.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := s.c.post(ctx, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}
	s.c.setToken(resp.Token)
	return &resp, nil
}

// Logout records the logout and forgets the token.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.c.post(ctx, "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	s.c.setToken("")
	return nil
}
