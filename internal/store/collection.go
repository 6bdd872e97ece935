package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// errNoChange lets an update function report that the record is already in
// the requested state. The update then commits nothing.
var errNoChange = errors.New("no change")

// partition holds one tenant's records in insertion order.
type partition[E any] struct {
	order []string
	items map[string]E
}

func (p *partition[E]) get(id string) (E, bool) {
	e, ok := p.items[id]
	return e, ok
}

// collection is a tenant-partitioned set of records of one kind.
type collection[E any] struct {
	kind      string
	notFound  error
	clone     func(E) E
	persister Persister

	mu    sync.RWMutex
	parts map[string]*partition[E]
}

func newCollection[E any](kind string, notFound error, clone func(E) E, persister Persister) *collection[E] {
	return &collection[E]{
		kind:      kind,
		notFound:  notFound,
		clone:     clone,
		persister: persister,
		parts:     make(map[string]*partition[E]),
	}
}

// partitionLocked returns the tenant's partition, creating it on demand.
// Caller must hold c.mu for writing.
func (c *collection[E]) partitionLocked(tenantID string) *partition[E] {
	p, ok := c.parts[tenantID]
	if !ok {
		p = &partition[E]{items: make(map[string]E)}
		c.parts[tenantID] = p
	}

	return p
}

func (c *collection[E]) list(tenantID string) []E {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.parts[tenantID]
	if !ok {
		return []E{}
	}

	out := make([]E, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, c.clone(p.items[id]))
	}

	return out
}

func (c *collection[E]) get(tenantID, id string) (E, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, ok := c.parts[tenantID]; ok {
		if e, ok := p.items[id]; ok {
			return c.clone(e), nil
		}
	}

	var zero E

	return zero, c.notFound
}

// missing returns the first id that does not resolve in the tenant, or "".
func (c *collection[E]) missing(tenantID string, ids []string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.parts[tenantID]
	for _, id := range ids {
		if p == nil {
			return id
		}

		if _, ok := p.items[id]; !ok {
			return id
		}
	}

	return ""
}

func (c *collection[E]) count(tenantID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, ok := c.parts[tenantID]; ok {
		return len(p.order)
	}

	return 0
}

// insert adds a new record. check, when non-nil, runs under the write lock
// against the tenant's partition before anything is written.
func (c *collection[E]) insert(ctx context.Context, tenantID, id string, e E, check func(p *partition[E]) error) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.partitionLocked(tenantID)

	if check != nil {
		if err := check(p); err != nil {
			var zero E
			return zero, err
		}
	}

	if err := c.persist(ctx, tenantID, id, e); err != nil {
		var zero E
		return zero, err
	}

	if _, exists := p.items[id]; !exists {
		p.order = append(p.order, id)
	}
	p.items[id] = e

	return c.clone(e), nil
}

// update applies fn to a copy of the record under the write lock. The copy
// replaces the stored record only if fn succeeds and the persister accepts it.
// The boolean result is false when fn reported errNoChange.
func (c *collection[E]) update(
	ctx context.Context, tenantID, id string, fn func(p *partition[E], e *E) error,
) (E, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero E

	p, ok := c.parts[tenantID]
	if !ok {
		return zero, false, c.notFound
	}

	cur, ok := p.items[id]
	if !ok {
		return zero, false, c.notFound
	}

	next := c.clone(cur)
	if err := fn(p, &next); err != nil {
		if errors.Is(err, errNoChange) {
			return c.clone(cur), false, nil
		}

		return zero, false, err
	}

	if err := c.persist(ctx, tenantID, id, next); err != nil {
		return zero, false, err
	}

	p.items[id] = next

	return c.clone(next), true, nil
}

// remove hard-deletes a record.
func (c *collection[E]) remove(ctx context.Context, tenantID, id string) (E, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero E

	p, ok := c.parts[tenantID]
	if !ok {
		return zero, c.notFound
	}

	cur, ok := p.items[id]
	if !ok {
		return zero, c.notFound
	}

	if c.persister != nil {
		pctx, cancel := withTimeout(ctx)
		err := c.persister.Delete(pctx, c.kind, tenantID, id)
		cancel()

		if err != nil {
			return zero, fmt.Errorf("deleting %s %s: %w", c.kind, id, err)
		}
	}

	delete(p.items, id)
	for i, oid := range p.order {
		if oid == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}

	return cur, nil
}

// persist mirrors a record to the persister. Caller must hold c.mu.
func (c *collection[E]) persist(ctx context.Context, tenantID, id string, e E) error {
	if c.persister == nil {
		return nil
	}

	pctx, cancel := withTimeout(ctx)
	defer cancel()

	if err := c.persister.Put(pctx, c.kind, tenantID, id, e); err != nil {
		return fmt.Errorf("persisting %s %s: %w", c.kind, id, err)
	}

	return nil
}

// load replaces the in-memory contents with the persister's documents.
func (c *collection[E]) load(ctx context.Context) (int, error) {
	if c.persister == nil {
		return 0, nil
	}

	docs, err := c.persister.LoadAll(ctx, c.kind)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.parts = make(map[string]*partition[E])

	for _, d := range docs {
		var e E
		if err := json.Unmarshal(d.Data, &e); err != nil {
			return 0, fmt.Errorf("decoding %s %s: %w", c.kind, d.ID, err)
		}

		p := c.partitionLocked(d.TenantID)
		if _, exists := p.items[d.ID]; !exists {
			p.order = append(p.order, d.ID)
		}
		p.items[d.ID] = e
	}

	return len(docs), nil
}
