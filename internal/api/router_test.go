package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/persistorai/tenantadmin/internal/api"
	"github.com/persistorai/tenantadmin/internal/auth"
	"github.com/persistorai/tenantadmin/internal/models"
	"github.com/persistorai/tenantadmin/internal/seed"
	"github.com/persistorai/tenantadmin/internal/service"
	"github.com/persistorai/tenantadmin/internal/store"
)

// newSeededRouter wires the real services over an in-memory store loaded
// with the demo fixtures.
func newSeededRouter(t *testing.T) http.Handler {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := testLogger()
	st := store.New(log, nil)

	if err := seed.Load(ctx, st, time.Now(), log); err != nil {
		t.Fatalf("seed: %v", err)
	}

	issuer, err := auth.NewIssuer(strings.Repeat("k", 32), time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	hash, err := auth.HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	access := service.NewAccessService(st, nil, nil, log)
	admin := service.AdminAccount{
		ID: "1", Username: "admin@system.com", PasswordHash: hash,
		FirstName: "System", LastName: "Administrator", Role: "System Admin",
	}

	return api.NewRouter(ctx, &api.RouterDeps{
		Log:           log,
		Tokens:        issuer,
		Tenants:       access,
		Organizations: access,
		Users:         access,
		Roles:         access,
		Privileges:    access,
		LegalEntities: access,
		Audit:         service.NewAuditService(st.Audit, log),
		Bulk:          service.NewBulkService(access, log),
		Reports:       service.NewReportService(st),
		Auth:          service.NewAuthService(admin, seed.DemoTenantID, access, issuer, nil, nil, log),
		Version:       "test",
	})
}

func login(t *testing.T, r http.Handler) map[string]string {
	t.Helper()

	w := doRequest(r, http.MethodPost, "/api/v1/auth/login", `{"username":"admin@system.com","password":"admin123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if resp.User.TenantID != seed.DemoTenantID {
		t.Fatalf("login tenant = %q, want %q", resp.User.TenantID, seed.DemoTenantID)
	}

	return map[string]string{"Authorization": "Bearer " + resp.Token}
}

func TestRouter_RequiresToken(t *testing.T) {
	r := newSeededRouter(t)

	w := doRequest(r, http.MethodGet, "/api/v1/users", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doRequest(r, http.MethodGet, "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", w.Code)
	}
}

func TestRouter_AssignRoleScenario(t *testing.T) {
	r := newSeededRouter(t)
	hdr := login(t, r)

	for range 2 {
		w := doRequestWith(r, http.MethodPut, "/api/v1/users/user-1/roles/role-3", "", hdr)
		if w.Code != http.StatusOK {
			t.Fatalf("assign: expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var u models.User
		if err := json.Unmarshal(w.Body.Bytes(), &u); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		got := slices.Clone(u.Roles)
		slices.Sort(got)

		if !slices.Equal(got, []string{"role-2", "role-3"}) {
			t.Fatalf("roles = %v, want [role-2 role-3]", got)
		}
	}
}

func TestRouter_NotFoundScenario(t *testing.T) {
	r := newSeededRouter(t)
	hdr := login(t, r)

	w := doRequestWith(r, http.MethodGet, "/api/v1/organizations/org-999", "", hdr)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestRouter_ImportMissingEmailScenario(t *testing.T) {
	r := newSeededRouter(t)
	hdr := login(t, r)
	hdr["Content-Type"] = "text/csv"

	csv := "username,email,firstName,lastName\nanna,,Anna,Lee\n"

	w := doRequestWith(r, http.MethodPost, "/api/v1/bulk/users/import?commit=true", csv, hdr)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res models.ImportResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if res.Success || res.ErrorCount != 1 || res.Errors[0].Row != 2 {
		t.Errorf("result = %+v, want one error on row 2", res)
	}
}

func TestRouter_TenantIsolation(t *testing.T) {
	r := newSeededRouter(t)
	hdr := login(t, r)

	w := doRequest(r, http.MethodPost, "/api/v1/auth/login",
		`{"username":"admin@system.com","password":"admin123","tenantId":"tenant-2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login tenant-2: expected 200, got %d", w.Code)
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	other := map[string]string{"Authorization": "Bearer " + resp.Token}

	if w := doRequestWith(r, http.MethodGet, "/api/v1/users/user-1", "", other); w.Code != http.StatusNotFound {
		t.Errorf("tenant-2 read of user-1: expected 404, got %d", w.Code)
	}

	if w := doRequestWith(r, http.MethodGet, "/api/v1/users/user-1", "", hdr); w.Code != http.StatusOK {
		t.Errorf("tenant-1 read of user-1: expected 200, got %d", w.Code)
	}
}

func TestRouter_ReportSummary(t *testing.T) {
	r := newSeededRouter(t)
	hdr := login(t, r)

	w := doRequestWith(r, http.MethodGet, "/api/v1/reports/summary", "", hdr)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var summary models.ReportSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if summary.TotalUsers != 3 || summary.TotalPrivileges != 6 {
		t.Errorf("summary = %+v", summary)
	}
}
