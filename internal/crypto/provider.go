// Package crypto seals tenant documents at rest with AES-256-GCM.
package crypto

import "context"

// KeyProvider returns AES-256 encryption keys for tenants.
type KeyProvider interface {
	// GetKey returns the 32-byte AES-256 key for the given tenant.
	GetKey(ctx context.Context, tenantID string) ([]byte, error)
}
