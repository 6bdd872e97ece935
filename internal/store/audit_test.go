package store_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/persistorai/tenantadmin/internal/models"
	"github.com/persistorai/tenantadmin/internal/store"
)

// seedAudit appends fixed entries to tenant t1 and one to t2.
func seedAudit(t *testing.T, s *store.Store) time.Time {
	t.Helper()

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	entries := []models.AuditLog{
		{ID: "audit-1", TenantID: "t1", UserID: "user-1", UserName: "John Doe", Action: models.ActionUpdate,
			ResourceType: models.ResourceUser, ResourceID: "user-2", ResourceName: "Jane Smith", Timestamp: base.Add(-24 * time.Hour)},
		{ID: "audit-2", TenantID: "t1", UserID: "user-2", UserName: "Jane Smith", Action: models.ActionCreate,
			ResourceType: models.ResourceOrganization, ResourceID: "org-4", ResourceName: "New Department", Timestamp: base.Add(-48 * time.Hour)},
		{ID: "audit-3", TenantID: "t1", UserID: "user-1", UserName: "John Doe", Action: models.ActionLogin,
			ResourceType: models.ResourceUser, ResourceID: "user-1", ResourceName: "John Doe", Timestamp: base.Add(-time.Hour)},
		{ID: "audit-x", TenantID: "t2", UserID: "user-9", UserName: "Other", Action: models.ActionLogin,
			ResourceType: models.ResourceUser, ResourceID: "user-9", ResourceName: "Other", Timestamp: base},
	}

	for _, e := range entries {
		if err := s.Audit.AppendAudit(context.Background(), e); err != nil {
			t.Fatalf("AppendAudit: %v", err)
		}
	}

	return base
}

func auditIDs(entries []models.AuditLog) string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}

	return strings.Join(ids, ",")
}

func TestQueryAuditFilters(t *testing.T) {
	s := newTestStore(t, nil)
	base := seedAudit(t, s)

	tests := []struct {
		name    string
		filters models.AuditFilters
		want    string
	}{
		{"no filters sorted desc", models.AuditFilters{}, "audit-3,audit-1,audit-2"},
		{"by user", models.AuditFilters{UserID: "user-1"}, "audit-3,audit-1"},
		{"by action", models.AuditFilters{Action: models.ActionCreate}, "audit-2"},
		{"by resource type", models.AuditFilters{ResourceType: models.ResourceOrganization}, "audit-2"},
		{"search is case-insensitive", models.AuditFilters{SearchTerm: "JANE"}, "audit-1,audit-2"},
		{"search matches action", models.AuditFilters{SearchTerm: "log"}, "audit-3"},
		{"date from inclusive", models.AuditFilters{DateFrom: base.Add(-24 * time.Hour).Format(models.TimestampLayout)}, "audit-3,audit-1"},
		{"date to inclusive", models.AuditFilters{DateTo: base.Add(-24 * time.Hour).Format(models.TimestampLayout)}, "audit-1,audit-2"},
		{"combined filters are ANDed", models.AuditFilters{UserID: "user-1", Action: models.ActionLogin}, "audit-3"},
		{"no match", models.AuditFilters{UserID: "user-404"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := s.Audit.QueryAudit(context.Background(), "t1", tt.filters)
			if err != nil {
				t.Fatalf("QueryAudit: %v", err)
			}

			if ids := auditIDs(got); ids != tt.want {
				t.Errorf("QueryAudit = %q, want %q", ids, tt.want)
			}
		})
	}
}

func TestQueryAuditBoundsFromResponseTimestamp(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	for _, ts := range []time.Time{
		time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 12, 0, 0, 120*int(time.Millisecond), time.UTC),
	} {
		rec, err := s.Audit.RecordAudit(ctx, "t1", models.AuditLog{
			UserID: "user-1", Action: models.ActionView, ResourceType: models.ResourceUser, Timestamp: ts,
		})
		if err != nil {
			t.Fatalf("RecordAudit: %v", err)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var wire struct {
			Timestamp string `json:"timestamp"`
		}
		if err := json.Unmarshal(data, &wire); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		got, _, err := s.Audit.QueryAudit(ctx, "t1", models.AuditFilters{DateFrom: wire.Timestamp, DateTo: wire.Timestamp})
		if err != nil {
			t.Fatalf("QueryAudit: %v", err)
		}

		if auditIDs(got) != rec.ID {
			t.Errorf("dateFrom=dateTo=%q returned %q, want %q", wire.Timestamp, auditIDs(got), rec.ID)
		}
	}
}

func TestQueryAuditPagination(t *testing.T) {
	s := newTestStore(t, nil)
	seedAudit(t, s)
	ctx := context.Background()

	page, hasMore, err := s.Audit.QueryAudit(ctx, "t1", models.AuditFilters{Limit: 2})
	if err != nil {
		t.Fatalf("QueryAudit: %v", err)
	}

	if auditIDs(page) != "audit-3,audit-1" || !hasMore {
		t.Errorf("first page = %q hasMore=%v, want audit-3,audit-1 hasMore=true", auditIDs(page), hasMore)
	}

	page, hasMore, err = s.Audit.QueryAudit(ctx, "t1", models.AuditFilters{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("QueryAudit: %v", err)
	}

	if auditIDs(page) != "audit-2" || hasMore {
		t.Errorf("second page = %q hasMore=%v, want audit-2 hasMore=false", auditIDs(page), hasMore)
	}

	page, _, err = s.Audit.QueryAudit(ctx, "t1", models.AuditFilters{Offset: 10})
	if err != nil {
		t.Fatalf("QueryAudit: %v", err)
	}

	if len(page) != 0 {
		t.Errorf("offset past end returned %d entries", len(page))
	}
}

func TestRecordAuditPrependsAndIsolates(t *testing.T) {
	s := newTestStore(t, nil)
	seedAudit(t, s)
	ctx := context.Background()

	rec, err := s.Audit.RecordAudit(ctx, "t1", models.AuditLog{
		UserID: "user-1", UserName: "John Doe", Action: models.ActionDelete,
		ResourceType: models.ResourceOrganization, ResourceID: "org-9", ResourceName: "Gone",
	})
	if err != nil {
		t.Fatalf("RecordAudit: %v", err)
	}

	if !strings.HasPrefix(rec.ID, "audit-") {
		t.Errorf("ID = %q, want audit- prefix", rec.ID)
	}

	if rec.Timestamp.IsZero() {
		t.Error("Timestamp not assigned")
	}

	got, _, err := s.Audit.QueryAudit(ctx, "t1", models.AuditFilters{Limit: 1})
	if err != nil {
		t.Fatalf("QueryAudit: %v", err)
	}

	if len(got) != 1 || got[0].ID != rec.ID {
		t.Errorf("newest entry = %+v, want %s", got, rec.ID)
	}

	other, _, err := s.Audit.QueryAudit(ctx, "t2", models.AuditFilters{})
	if err != nil {
		t.Fatalf("QueryAudit: %v", err)
	}

	if auditIDs(other) != "audit-x" {
		t.Errorf("t2 entries = %q, want audit-x", auditIDs(other))
	}

	if n := s.Audit.CountAudit("t1"); n != 4 {
		t.Errorf("CountAudit = %d, want 4", n)
	}
}

func TestPurgeOldEntries(t *testing.T) {
	p := newMemPersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	old := models.AuditLog{
		ID: "audit-old", TenantID: "t1", Action: models.ActionLogin, ResourceType: models.ResourceUser,
		Timestamp: time.Now().UTC().AddDate(0, 0, -100),
	}
	if err := s.Audit.AppendAudit(ctx, old); err != nil {
		t.Fatalf("AppendAudit: %v", err)
	}

	if _, err := s.Audit.RecordAudit(ctx, "t1", models.AuditLog{Action: models.ActionLogin, ResourceType: models.ResourceUser}); err != nil {
		t.Fatalf("RecordAudit: %v", err)
	}

	deleted, err := s.Audit.PurgeOldEntries(ctx, "t1", 30)
	if err != nil {
		t.Fatalf("PurgeOldEntries: %v", err)
	}

	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if n := s.Audit.CountAudit("t1"); n != 1 {
		t.Errorf("CountAudit = %d, want 1", n)
	}

	if p.deletes != 1 {
		t.Errorf("persister deletes = %d, want 1", p.deletes)
	}
}
