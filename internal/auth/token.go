// Package auth issues and verifies the bearer tokens of console operators.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/persistorai/tenantadmin/internal/models"
)

const (
	issuer       = "tenantadmin"
	minSecretLen = 32
	clockSkew    = 5 * time.Second
)

// ErrInvalidToken indicates the token failed validation.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by an operator token.
type Claims struct {
	TenantID string `json:"tid"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a fixed secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer. The secret must be at least 32 bytes.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretLen)
	}

	if ttl <= 0 {
		return nil, errors.New("token ttl must be greater than zero")
	}

	return &Issuer{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for p. It returns the token and its expiry.
func (i *Issuer) Issue(p models.Principal) (string, time.Time, error) {
	if strings.TrimSpace(p.ID) == "" || p.TenantID == "" {
		return "", time.Time{}, errors.New("principal id and tenant are required")
	}

	now := time.Now().UTC()
	exp := now.Add(i.ttl)
	claims := Claims{
		TenantID: p.TenantID,
		Name:     strings.TrimSpace(p.FirstName + " " + p.LastName),
		Email:    p.Email,
		Role:     p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, exp, nil
}

// Parse verifies the token signature and required claims.
func (i *Issuer) Parse(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}

		return i.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithLeeway(clockSkew))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if err := validateClaims(claims); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func validateClaims(c *Claims) error {
	if strings.TrimSpace(c.Subject) == "" {
		return errors.New("subject missing")
	}

	if c.TenantID == "" {
		return errors.New("tenant missing")
	}

	if c.ExpiresAt == nil || c.IssuedAt == nil {
		return errors.New("timestamps missing")
	}

	if c.ExpiresAt.Before(c.IssuedAt.Time) {
		return errors.New("token expiry precedes issued-at")
	}

	return nil
}

// Expired reports whether the claims are past their expiry at t.
func (c *Claims) Expired(t time.Time) bool {
	return c.ExpiresAt == nil || !t.Before(c.ExpiresAt.Time)
}
