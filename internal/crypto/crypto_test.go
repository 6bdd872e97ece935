package crypto_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/persistorai/tenantadmin/internal/crypto"
)

const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func newStaticService(t *testing.T, hexKey string) *crypto.Service {
	t.Helper()

	provider, err := crypto.NewStaticProvider(hexKey)
	if err != nil {
		t.Fatalf("new static provider: %v", err)
	}

	return crypto.NewService(provider)
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	svc := newStaticService(t, testKeyHex)
	ctx := context.Background()
	plaintext := []byte(`{"id":"user-1","email":"john.doe@acme.com"}`)

	encrypted, err := svc.Encrypt(ctx, "tenant-1", plaintext)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if strings.Contains(encrypted, "john.doe") {
		t.Fatal("ciphertext leaks plaintext")
	}

	decrypted, err := svc.Decrypt(ctx, "tenant-1", encrypted)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}

	if !bytes.Equal(decrypted, plaintext) {
		t.Fatalf("got %q, want %q", decrypted, plaintext)
	}
}

func TestEncryptProducesDifferentCiphertexts(t *testing.T) {
	svc := newStaticService(t, testKeyHex)
	ctx := context.Background()

	a, _ := svc.Encrypt(ctx, "tenant-1", []byte("same"))
	b, _ := svc.Encrypt(ctx, "tenant-1", []byte("same"))

	if a == b {
		t.Fatal("two encryptions of same plaintext should differ (random nonce)")
	}
}

func TestDecryptFailures(t *testing.T) {
	svc := newStaticService(t, testKeyHex)
	other := newStaticService(t, "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789")
	ctx := context.Background()

	sealed, err := svc.Encrypt(ctx, "tenant-1", []byte("secret"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(sealed)
	raw[len(raw)-1] ^= 0xff
	corrupted := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name       string
		svc        *crypto.Service
		tenantID   string
		ciphertext string
	}{
		{"wrong master key", other, "tenant-1", sealed},
		{"other tenant", svc, "tenant-2", sealed},
		{"corrupted", svc, "tenant-1", corrupted},
		{"invalid base64", svc, "tenant-1", "not base64!!"},
		{"too short", svc, "tenant-1", base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.svc.Decrypt(ctx, tt.tenantID, tt.ciphertext); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := svc.Decrypt(ctx, "tenant-1", base64.StdEncoding.EncodeToString([]byte("short"))); !errors.Is(err, crypto.ErrCiphertextTooShort) {
		t.Errorf("too short: got %v, want ErrCiphertextTooShort", err)
	}
}

func TestEncryptEmptyPlaintext(t *testing.T) {
	svc := newStaticService(t, testKeyHex)
	ctx := context.Background()

	sealed, err := svc.Encrypt(ctx, "tenant-1", nil)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	got, err := svc.Decrypt(ctx, "tenant-1", sealed)
	if err != nil || len(got) != 0 {
		t.Fatalf("decrypt: %q, %v", got, err)
	}
}

func TestStaticProviderDerivesPerTenantKeys(t *testing.T) {
	provider, err := crypto.NewStaticProvider(testKeyHex)
	if err != nil {
		t.Fatalf("new static provider: %v", err)
	}

	ctx := context.Background()

	k1, err := provider.GetKey(ctx, "tenant-1")
	if err != nil || len(k1) != 32 {
		t.Fatalf("GetKey: len=%d err=%v", len(k1), err)
	}

	k1again, _ := provider.GetKey(ctx, "tenant-1")
	k2, _ := provider.GetKey(ctx, "tenant-2")

	if !bytes.Equal(k1, k1again) {
		t.Error("derived key must be stable")
	}

	if bytes.Equal(k1, k2) {
		t.Error("tenants must get distinct keys")
	}

	k1[0] ^= 0xff
	if k, _ := provider.GetKey(ctx, "tenant-1"); bytes.Equal(k, k1) {
		t.Error("caller mutation leaked into the cache")
	}

	if _, err := provider.GetKey(ctx, ""); err == nil {
		t.Error("expected error for empty tenant")
	}
}

func TestStaticProviderRejectsBadKeys(t *testing.T) {
	for _, key := range []string{"not-hex", "aabbccdd"} {
		if _, err := crypto.NewStaticProvider(key); err == nil {
			t.Errorf("NewStaticProvider(%q): expected error", key)
		}
	}
}

func TestVaultProvider(t *testing.T) {
	key := bytes.Repeat([]byte{7}, 32)
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if r.Header.Get("X-Vault-Token") != "vault-token" {
			http.Error(w, "permission denied", http.StatusForbidden)
			return
		}

		switch r.URL.Path {
		case "/v1/secret/data/tenantadmin/tenant-keys/tenant-1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":{"data":{"encryption_key":"` + base64.StdEncoding.EncodeToString(key) + `"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	p := crypto.NewVaultProvider(srv.URL+"/", "vault-token")
	ctx := context.Background()

	for range 3 {
		got, err := p.GetKey(ctx, "tenant-1")
		if err != nil {
			t.Fatalf("GetKey: %v", err)
		}

		if !bytes.Equal(got, key) {
			t.Fatalf("key = %x", got)
		}
	}

	if n := calls.Load(); n != 1 {
		t.Errorf("vault calls = %d, want 1 (cached)", n)
	}

	if _, err := p.GetKey(ctx, "tenant-2"); err == nil || !strings.Contains(err.Error(), "no key for tenant") {
		t.Errorf("missing key: got %v", err)
	}

	if _, err := p.GetKey(ctx, "../sys/raw"); err == nil || !strings.Contains(err.Error(), "invalid tenant ID") {
		t.Errorf("path traversal: got %v", err)
	}

	bad := crypto.NewVaultProvider(srv.URL, "wrong")
	if _, err := bad.GetKey(ctx, "tenant-1"); err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("bad token: got %v", err)
	}
}
