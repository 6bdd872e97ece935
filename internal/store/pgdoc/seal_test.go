package pgdoc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/persistorai/tenantadmin/internal/crypto"
)

type userDoc struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func newSealed(t *testing.T) *Persister {
	t.Helper()

	provider, err := crypto.NewStaticProvider(strings.Repeat("ab", 32))
	if err != nil {
		t.Fatalf("NewStaticProvider: %v", err)
	}

	return New(nil, nil, WithSealer(crypto.NewService(provider)))
}

func TestSealRoundTrip(t *testing.T) {
	p := newSealed(t)
	ctx := context.Background()

	raw, err := p.encode(ctx, "tenant-1", userDoc{ID: "user-1", Email: "john.doe@acme.com"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if bytes.Contains(raw, []byte("john.doe")) || !bytes.HasPrefix(raw, []byte(`{"sealed":"`)) {
		t.Fatalf("document not sealed: %s", raw)
	}

	got, err := p.decode(ctx, "tenant-1", raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if string(got) != `{"id":"user-1","email":"john.doe@acme.com"}` {
		t.Errorf("decoded = %s", got)
	}

	if _, err := p.decode(ctx, "tenant-2", raw); err == nil {
		t.Error("document opened under another tenant")
	}
}

func TestDecodePassesPlainDocuments(t *testing.T) {
	p := newSealed(t)
	plain := []byte(`{"id":"user-1"}`)

	got, err := p.decode(context.Background(), "tenant-1", plain)
	if err != nil || !bytes.Equal(got, plain) {
		t.Fatalf("decode = %s, %v", got, err)
	}
}

func TestDecodeSealedWithoutSealer(t *testing.T) {
	sealed, err := newSealed(t).encode(context.Background(), "tenant-1", userDoc{ID: "u"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if _, err := New(nil, nil).decode(context.Background(), "tenant-1", sealed); err == nil {
		t.Fatal("expected error opening sealed document without a sealer")
	}
}
