// Package pgdoc mirrors store records into a PostgreSQL JSONB document table.
package pgdoc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/dbpool"
	"github.com/persistorai/tenantadmin/internal/store"
)

var _ store.Persister = (*Persister)(nil)

// Sealer encrypts documents for a tenant before they reach the table.
type Sealer interface {
	Encrypt(ctx context.Context, tenantID string, plaintext []byte) (string, error)
	Decrypt(ctx context.Context, tenantID, ciphertext string) ([]byte, error)
}

// sealedDoc is the JSONB envelope stored for encrypted documents.
type sealedDoc struct {
	Sealed string `json:"sealed"`
}

// Option configures a Persister.
type Option func(*Persister)

// WithSealer encrypts every document at rest. Documents written before
// sealing was enabled are still readable.
func WithSealer(s Sealer) Option {
	return func(p *Persister) { p.sealer = s }
}

// Persister implements store.Persister over the admin_documents table.
type Persister struct {
	pool   *dbpool.Pool
	log    *logrus.Logger
	sealer Sealer
}

// New creates a Persister.
func New(pool *dbpool.Pool, log *logrus.Logger, opts ...Option) *Persister {
	p := &Persister{pool: pool, log: log}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Put upserts one document. The seq column keeps its first value, so
// LoadAll returns records in original insertion order.
func (p *Persister) Put(ctx context.Context, kind, tenantID, id string, doc any) error {
	data, err := p.encode(ctx, tenantID, doc)
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", kind, err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO admin_documents (kind, tenant_id, id, doc)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, tenant_id, id)
		DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
		kind, tenantID, id, data,
	)
	if err != nil {
		return fmt.Errorf("upserting %s document: %w", kind, err)
	}

	return nil
}

// Delete removes one document. Deleting a missing document is not an error.
func (p *Persister) Delete(ctx context.Context, kind, tenantID, id string) error {
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM admin_documents WHERE kind = $1 AND tenant_id = $2 AND id = $3`,
		kind, tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("deleting %s document: %w", kind, err)
	}

	if tag.RowsAffected() == 0 {
		p.log.WithFields(logrus.Fields{"kind": kind, "tenant_id": tenantID, "id": id}).
			Debug("delete matched no document")
	}

	return nil
}

// LoadAll returns every document of kind in insertion order.
func (p *Persister) LoadAll(ctx context.Context, kind string) ([]store.Document, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT tenant_id, id, doc FROM admin_documents WHERE kind = $1 ORDER BY seq`,
		kind,
	)
	if err != nil {
		return nil, fmt.Errorf("querying %s documents: %w", kind, err)
	}
	defer rows.Close()

	docs := make([]store.Document, 0)

	for rows.Next() {
		var d store.Document
		if err := rows.Scan(&d.TenantID, &d.ID, &d.Data); err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", kind, err)
		}

		data, err := p.decode(ctx, d.TenantID, d.Data)
		if err != nil {
			return nil, fmt.Errorf("opening %s document %s/%s: %w", kind, d.TenantID, d.ID, err)
		}

		d.Data = data

		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s documents: %w", kind, err)
	}

	return docs, nil
}

func (p *Persister) encode(ctx context.Context, tenantID string, doc any) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	if p.sealer == nil {
		return data, nil
	}

	ct, err := p.sealer.Encrypt(ctx, tenantID, data)
	if err != nil {
		return nil, err
	}

	return json.Marshal(sealedDoc{Sealed: ct})
}

// decode opens a sealed envelope. Plain documents pass through unchanged.
func (p *Persister) decode(ctx context.Context, tenantID string, raw []byte) ([]byte, error) {
	var env sealedDoc
	if err := json.Unmarshal(raw, &env); err != nil || env.Sealed == "" {
		return raw, nil
	}

	if p.sealer == nil {
		return nil, fmt.Errorf("document is sealed but no encryption provider is configured")
	}

	return p.sealer.Decrypt(ctx, tenantID, env.Sealed)
}
