package service

import (
	"context"
	"sync"
	"time"

	"github.com/persistorai/tenantadmin/internal/models"
)

// mockAuditor records RecordAudit calls.
type mockAuditor struct {
	mu    sync.Mutex
	calls []AuditJob

	err error
}

func (m *mockAuditor) RecordAudit(_ context.Context, tenantID string, entry models.AuditLog) (*models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, AuditJob{TenantID: tenantID, Entry: entry})
	if m.err != nil {
		return nil, m.err
	}

	entry.ID = "audit-test"
	entry.TenantID = tenantID

	return &entry, nil
}

func (m *mockAuditor) getCalls() []AuditJob {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]AuditJob, len(m.calls))
	copy(cp, m.calls)

	return cp
}

// mockEnqueuer captures audit jobs synchronously.
type mockEnqueuer struct {
	mu   sync.Mutex
	jobs []AuditJob
}

func (m *mockEnqueuer) Enqueue(job *AuditJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, *job)
}

func (m *mockEnqueuer) getJobs() []AuditJob {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]AuditJob, len(m.jobs))
	copy(cp, m.jobs)

	return cp
}

type publishedEvent struct {
	tenantID  string
	eventType string
	payload   any
}

// mockPublisher records published events.
type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (m *mockPublisher) Publish(tenantID, eventType string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, publishedEvent{tenantID, eventType, payload})
}

func (m *mockPublisher) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.events))
	for i, e := range m.events {
		out[i] = e.eventType
	}

	return out
}

// mockIssuer returns a fixed token.
type mockIssuer struct {
	issued []models.Principal
	err    error
}

func (m *mockIssuer) Issue(p models.Principal) (string, time.Time, error) {
	if m.err != nil {
		return "", time.Time{}, m.err
	}

	m.issued = append(m.issued, p)

	return "token-" + p.TenantID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

// mockLimiter counts calls per username.
type mockLimiter struct {
	locked   map[string]bool
	failures map[string]int
	resets   map[string]int
}

func newMockLimiter() *mockLimiter {
	return &mockLimiter{locked: map[string]bool{}, failures: map[string]int{}, resets: map[string]int{}}
}

func (m *mockLimiter) IsLocked(username string) bool { return m.locked[username] }
func (m *mockLimiter) RecordFailure(username string) { m.failures[username]++ }
func (m *mockLimiter) Reset(username string) { m.resets[username]++ }

// mockTenants serves GetTenant from a map.
type mockTenants map[string]models.Tenant

func (m mockTenants) GetTenant(_ context.Context, id string) (*models.Tenant, error) {
	t, ok := m[id]
	if !ok {
		return nil, models.ErrTenantNotFound
	}

	return &t, nil
}
