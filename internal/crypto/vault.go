package crypto

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/persistorai/tenantadmin/internal/config"
)

// keyCacheTTL is how long a cached key is valid before re-fetching from Vault.
const keyCacheTTL = 15 * time.Minute

// maxVaultBody bounds every Vault response read.
const maxVaultBody = 1 << 20

// tenantIDPattern keeps tenant IDs from escaping the key path.
var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

type cachedKey struct {
	key       []byte
	fetchedAt time.Time
}

// VaultProvider reads tenant keys from a HashiCorp Vault KV v2 mount at
// secret/tenantadmin/tenant-keys/<tenant>. Each secret holds a base64
// "encryption_key" field.
type VaultProvider struct {
	addr   string
	token  config.Secret
	client *http.Client
	cache  sync.Map // tenant ID -> cachedKey
	group  singleflight.Group
}

// NewVaultProvider creates a VaultProvider with the given Vault address and token.
func NewVaultProvider(addr string, token config.Secret) *VaultProvider {
	return &VaultProvider{
		addr:  strings.TrimRight(addr, "/"),
		token: token,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
	}
}

// GetKey returns the tenant's key, fetching from Vault when the cached copy
// is missing or older than keyCacheTTL. Concurrent misses share one fetch.
func (p *VaultProvider) GetKey(ctx context.Context, tenantID string) ([]byte, error) {
	if key, ok := p.cached(tenantID); ok {
		return key, nil
	}

	val, err, _ := p.group.Do(tenantID, func() (any, error) {
		if key, ok := p.cached(tenantID); ok {
			return key, nil
		}

		k, err := p.fetchKey(ctx, tenantID)
		if err != nil {
			return nil, err
		}

		p.cache.Store(tenantID, cachedKey{key: k, fetchedAt: time.Now()})

		return k, nil
	})
	if err != nil {
		return nil, err
	}

	key, ok := val.([]byte)
	if !ok {
		return nil, fmt.Errorf("crypto/vault: unexpected singleflight result type %T", val)
	}

	return append([]byte(nil), key...), nil
}

func (p *VaultProvider) cached(tenantID string) ([]byte, bool) {
	v, ok := p.cache.Load(tenantID)
	if !ok {
		return nil, false
	}

	entry, valid := v.(cachedKey)
	if !valid || time.Since(entry.fetchedAt) >= keyCacheTTL {
		p.cache.Delete(tenantID)
		return nil, false
	}

	return append([]byte(nil), entry.key...), true
}

func (p *VaultProvider) fetchKey(ctx context.Context, tenantID string) ([]byte, error) {
	if !tenantIDPattern.MatchString(tenantID) {
		return nil, fmt.Errorf("crypto/vault: invalid tenant ID format: %q", tenantID)
	}

	reqURL := fmt.Sprintf("%s/v1/secret/data/tenantadmin/tenant-keys/%s", p.addr, url.PathEscape(tenantID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("crypto/vault: create request: %w", err)
	}

	req.Header.Set("X-Vault-Token", p.token.Value())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crypto/vault: request failed: %w", err)
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxVaultBody)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, body)
		return nil, fmt.Errorf("crypto/vault: no key for tenant %q at secret/tenantadmin/tenant-keys/%s", tenantID, tenantID)
	default:
		msg, _ := io.ReadAll(body)
		return nil, fmt.Errorf("crypto/vault: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var result struct {
		Data struct {
			Data map[string]string `json:"data"`
		} `json:"data"`
	}

	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("crypto/vault: decode response: %w", err)
	}

	b64Key := result.Data.Data["encryption_key"]
	if b64Key == "" {
		return nil, fmt.Errorf("crypto/vault: encryption_key field missing for tenant %q", tenantID)
	}

	key, err := base64.StdEncoding.DecodeString(b64Key)
	if err != nil {
		return nil, fmt.Errorf("crypto/vault: decode base64 key: %w", err)
	}

	if len(key) != 32 {
		return nil, fmt.Errorf("crypto/vault: key must be 32 bytes, got %d", len(key))
	}

	return key, nil
}
