package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/persistorai/tenantadmin/internal/api"
	"github.com/persistorai/tenantadmin/internal/models"
)

func TestAuditQuery_MapsQueryParameters(t *testing.T) {
	t.Parallel()

	var got models.AuditFilters

	svc := &mockAuditService{
		queryFn: func(_ context.Context, _ string, f models.AuditFilters) ([]models.AuditLog, bool, error) {
			got = f
			return []models.AuditLog{{ID: "audit-3"}}, true, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit", h.Query)

	w := doRequest(r, http.MethodGet,
		"/audit?userId=user-1&action=login&resourceType=user&searchTerm=john&dateFrom=2024-01-01&dateTo=2024-12-31&limit=2&offset=4", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	want := models.AuditFilters{
		UserID: "user-1", Action: "login", ResourceType: "user", SearchTerm: "john",
		DateFrom: "2024-01-01", DateTo: "2024-12-31", Limit: 2, Offset: 4,
	}
	if got != want {
		t.Errorf("filters = %+v, want %+v", got, want)
	}

	var body struct {
		Data    []models.AuditLog `json:"data"`
		HasMore bool              `json:"has_more"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !body.HasMore || len(body.Data) != 1 {
		t.Errorf("body = %+v", body)
	}
}

func TestAuditQuery_SearchAlias(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"searchTerm", "/audit?searchTerm=john", "john"},
		{"search alias", "/audit?search=jane", "jane"},
		{"searchTerm wins", "/audit?searchTerm=john&search=jane", "john"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got models.AuditFilters

			svc := &mockAuditService{
				queryFn: func(_ context.Context, _ string, f models.AuditFilters) ([]models.AuditLog, bool, error) {
					got = f
					return nil, false, nil
				},
			}

			r := newTestRouter()
			h := api.NewAuditHandler(svc, testLogger())
			r.GET("/audit", h.Query)

			doRequest(r, http.MethodGet, tt.query, "")

			if got.SearchTerm != tt.want {
				t.Errorf("SearchTerm = %q, want %q", got.SearchTerm, tt.want)
			}
		})
	}
}

func TestAuditQuery_DefaultLimit(t *testing.T) {
	t.Parallel()

	var got models.AuditFilters

	svc := &mockAuditService{
		queryFn: func(_ context.Context, _ string, f models.AuditFilters) ([]models.AuditLog, bool, error) {
			got = f
			return nil, false, nil
		},
	}

	r := newTestRouter()
	h := api.NewAuditHandler(svc, testLogger())
	r.GET("/audit", h.Query)

	doRequest(r, http.MethodGet, "/audit?limit=abc&offset=-3", "")

	if got.Limit != 50 || got.Offset != 0 {
		t.Errorf("limit=%d offset=%d, want 50 and 0", got.Limit, got.Offset)
	}
}

func TestAuditPurge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantDays int
	}{
		{"default retention", "", http.StatusOK, 90},
		{"explicit retention", "?retention_days=30", http.StatusOK, 30},
		{"zero rejected", "?retention_days=0", http.StatusBadRequest, 0},
		{"garbage rejected", "?retention_days=soon", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotDays := 0
			svc := &mockAuditService{
				purgeFn: func(_ context.Context, _ string, days int) (int, error) {
					gotDays = days
					return 7, nil
				},
			}

			r := newTestRouter()
			h := api.NewAuditHandler(svc, testLogger())
			r.DELETE("/audit", h.Purge)

			w := doRequest(r, http.MethodDelete, "/audit"+tt.query, "")

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}

			if gotDays != tt.wantDays {
				t.Errorf("retention days = %d, want %d", gotDays, tt.wantDays)
			}
		})
	}
}
