package models

import "time"

// LoginRequest is the payload for POST /auth/login. TenantID is optional and
// falls back to the server's default tenant.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	TenantID string `json:"tenantId,omitempty"`
}

// Validate checks that credentials are present.
func (r *LoginRequest) Validate() error {
	if err := requireString("username", r.Username, maxShortFieldLen); err != nil {
		return err
	}

	return requireString("password", r.Password, maxShortFieldLen)
}

// Principal is the authenticated administrator returned at login.
type Principal struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	TenantID  string `json:"tenantId"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Principal `json:"user"`
}
