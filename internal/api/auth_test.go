package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/persistorai/tenantadmin/internal/api"
	"github.com/persistorai/tenantadmin/internal/models"
)

func TestLoginHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
	}{
		{"success", `{"username":"admin@system.com","password":"admin123"}`, nil, http.StatusOK},
		{"bad credentials", `{"username":"admin@system.com","password":"x"}`, models.ErrInvalidCredentials, http.StatusUnauthorized},
		{"locked", `{"username":"admin@system.com","password":"x"}`, models.ErrLoginLocked, http.StatusTooManyRequests},
		{"unknown tenant", `{"username":"a","password":"b","tenantId":"nope"}`, models.NewValidationError("tenantId", "unknown tenant"), http.StatusBadRequest},
		{"malformed body", `{`, nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockAuthService{
				loginFn: func(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
					if tt.err != nil {
						return nil, tt.err
					}

					return &models.LoginResponse{Token: "tok", ExpiresAt: time.Now().Add(time.Hour), User: models.Principal{Username: req.Username}}, nil
				},
			}

			r := newTestRouter()
			h := api.NewAuthHandler(svc, testLogger())
			r.POST("/auth/login", h.Login)

			w := doRequest(r, http.MethodPost, "/auth/login", tt.body)

			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	t.Parallel()

	var gotTenant string

	svc := &mockAuthService{
		logoutFn: func(_ context.Context, tenantID string) error {
			gotTenant = tenantID
			return nil
		},
	}

	r := newTestRouter()
	h := api.NewAuthHandler(svc, testLogger())
	r.POST("/auth/logout", h.Logout)

	w := doRequest(r, http.MethodPost, "/auth/logout", "")

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	if gotTenant != testTenantID {
		t.Errorf("tenant = %q, want %q", gotTenant, testTenantID)
	}
}
