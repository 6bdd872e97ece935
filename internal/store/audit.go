package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/ids"
	"github.com/persistorai/tenantadmin/internal/models"
)

// AuditStore keeps each tenant's audit trail, most recent entry first.
type AuditStore struct {
	persister Persister
	log       *logrus.Logger

	mu      sync.RWMutex
	entries map[string][]models.AuditLog
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(persister Persister, log *logrus.Logger) *AuditStore {
	return &AuditStore{
		persister: persister,
		log:       log,
		entries:   make(map[string][]models.AuditLog),
	}
}

// RecordAudit assigns an id and prepends entry to the tenant's trail. A zero
// Timestamp is set to the current time.
func (s *AuditStore) RecordAudit(ctx context.Context, tenantID string, entry models.AuditLog) (*models.AuditLog, error) {
	entry.ID = ids.NewAudit()
	entry.TenantID = tenantID

	if entry.Timestamp.IsZero() {
		entry.Timestamp = now().Truncate(time.Millisecond)
	}

	if err := s.AppendAudit(ctx, entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

// AppendAudit stores entry as given, keeping its id and timestamp.
func (s *AuditStore) AppendAudit(ctx context.Context, entry models.AuditLog) error {
	entry = entry.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persister != nil {
		pctx, cancel := withTimeout(ctx)
		err := s.persister.Put(pctx, KindAudit, entry.TenantID, entry.ID, entry)
		cancel()

		if err != nil {
			return fmt.Errorf("persisting audit entry: %w", err)
		}
	}

	s.entries[entry.TenantID] = append([]models.AuditLog{entry}, s.entries[entry.TenantID]...)

	return nil
}

// QueryAudit returns the tenant's entries matching filters, newest first.
// Returns entries, hasMore flag, and any error.
func (s *AuditStore) QueryAudit(
	_ context.Context, tenantID string, filters models.AuditFilters,
) ([]models.AuditLog, bool, error) {
	s.mu.RLock()
	matched := make([]models.AuditLog, 0)
	for i := range s.entries[tenantID] {
		if matchAudit(&s.entries[tenantID][i], &filters) {
			matched = append(matched, s.entries[tenantID][i].Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			return []models.AuditLog{}, false, nil
		}

		matched = matched[filters.Offset:]
	}

	hasMore := false
	if filters.Limit > 0 && len(matched) > filters.Limit {
		matched = matched[:filters.Limit]
		hasMore = true
	}

	return matched, hasMore, nil
}

// matchAudit applies the ANDed filters to one entry.
func matchAudit(e *models.AuditLog, f *models.AuditFilters) bool {
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}

	if f.Action != "" && e.Action != f.Action {
		return false
	}

	if f.ResourceType != "" && e.ResourceType != f.ResourceType {
		return false
	}

	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(e.UserName), term) &&
			!strings.Contains(strings.ToLower(e.ResourceName), term) &&
			!strings.Contains(strings.ToLower(e.Action), term) {
			return false
		}
	}

	ts := e.TimestampString()

	if f.DateFrom != "" && ts < f.DateFrom {
		return false
	}

	if f.DateTo != "" && ts > f.DateTo {
		return false
	}

	return true
}

// CountAudit returns the number of entries in the tenant's trail.
func (s *AuditStore) CountAudit(tenantID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries[tenantID])
}

// PurgeOldEntries deletes the tenant's entries older than retentionDays.
// Returns the number of deleted entries.
func (s *AuditStore) PurgeOldEntries(ctx context.Context, tenantID string, retentionDays int) (int, error) {
	cutoff := now().AddDate(0, 0, -retentionDays)

	s.mu.Lock()
	defer s.mu.Unlock()

	trail := s.entries[tenantID]
	kept := make([]models.AuditLog, 0, len(trail))
	deleted := 0

	for i, e := range trail {
		if !e.Timestamp.Before(cutoff) {
			kept = append(kept, e)
			continue
		}

		if s.persister != nil {
			pctx, cancel := withTimeout(ctx)
			err := s.persister.Delete(pctx, KindAudit, tenantID, e.ID)
			cancel()

			if err != nil {
				s.entries[tenantID] = append(kept, trail[i:]...)
				return deleted, fmt.Errorf("purging audit entry %s: %w", e.ID, err)
			}
		}

		deleted++
	}

	s.entries[tenantID] = kept

	return deleted, nil
}

// load rebuilds the trails from the persister.
func (s *AuditStore) load(ctx context.Context) (int, error) {
	if s.persister == nil {
		return 0, nil
	}

	docs, err := s.persister.LoadAll(ctx, KindAudit)
	if err != nil {
		return 0, err
	}

	entries := make(map[string][]models.AuditLog)

	for _, d := range docs {
		var e models.AuditLog
		if err := json.Unmarshal(d.Data, &e); err != nil {
			s.log.WithError(err).WithField("id", d.ID).Warn("skipping undecodable audit entry")
			continue
		}

		e.TenantID = d.TenantID
		entries[d.TenantID] = append(entries[d.TenantID], e)
	}

	for tenantID := range entries {
		sort.SliceStable(entries[tenantID], func(i, j int) bool {
			return entries[tenantID][i].Timestamp.After(entries[tenantID][j].Timestamp)
		})
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	return len(docs), nil
}
