package crypto

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// StaticProvider derives a distinct key per tenant from one master key with
// HKDF-SHA256.
type StaticProvider struct {
	master []byte
	keys   sync.Map // tenant ID -> []byte
}

// NewStaticProvider creates a StaticProvider from a hex-encoded 32-byte master key.
func NewStaticProvider(hexKey string) (*StaticProvider, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("crypto/static: invalid hex key: %w", err)
	}

	if len(key) != 32 {
		return nil, fmt.Errorf("crypto/static: key must be 32 bytes, got %d", len(key))
	}

	return &StaticProvider{master: key}, nil
}

// GetKey returns a copy of the derived key for tenantID.
func (p *StaticProvider) GetKey(_ context.Context, tenantID string) ([]byte, error) {
	if tenantID == "" {
		return nil, fmt.Errorf("crypto/static: empty tenant ID")
	}

	if k, ok := p.keys.Load(tenantID); ok {
		return append([]byte(nil), k.([]byte)...), nil
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, p.master, nil, []byte("tenantadmin/tenant-key/"+tenantID))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("crypto/static: derive key: %w", err)
	}

	p.keys.Store(tenantID, key)

	return append([]byte(nil), key...), nil
}
