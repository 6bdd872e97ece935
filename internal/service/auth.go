package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/auth"
	"github.com/persistorai/tenantadmin/internal/domain"
	"github.com/persistorai/tenantadmin/internal/metrics"
	"github.com/persistorai/tenantadmin/internal/models"
)

var _ domain.AuthService = (*AuthService)(nil)

// TokenIssuer signs operator tokens.
type TokenIssuer interface {
	Issue(p models.Principal) (string, time.Time, error)
}

// LoginLimiter tracks failed logins per username.
type LoginLimiter interface {
	IsLocked(username string) bool
	RecordFailure(username string)
	Reset(username string)
}

// TenantGetter resolves the tenant a login is scoped to.
type TenantGetter interface {
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
}

// AdminAccount is the configured console administrator.
type AdminAccount struct {
	ID           string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
}

// AuthService logs the configured administrator in and out.
type AuthService struct {
	admin         AdminAccount
	defaultTenant string
	tenants       TenantGetter
	issuer        TokenIssuer
	guard         LoginLimiter
	auditWorker   AuditEnqueuer
	log           *logrus.Logger
}

// NewAuthService creates an AuthService. guard and auditWorker may be nil.
func NewAuthService(
	admin AdminAccount, defaultTenant string, tenants TenantGetter, issuer TokenIssuer,
	guard LoginLimiter, auditWorker AuditEnqueuer, log *logrus.Logger,
) *AuthService {
	return &AuthService{
		admin:         admin,
		defaultTenant: defaultTenant,
		tenants:       tenants,
		issuer:        issuer,
		guard:         guard,
		auditWorker:   auditWorker,
		log:           log,
	}
}

// Login checks the credentials and issues a token scoped to the requested
// tenant, or the default tenant when none is given. The tenant must exist
// and must not be suspended.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.guard != nil && s.guard.IsLocked(req.Username) {
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		return nil, models.ErrLoginLocked
	}

	if !s.checkCredentials(req.Username, req.Password) {
		if s.guard != nil {
			s.guard.RecordFailure(req.Username)
		}

		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		s.log.WithField("username", req.Username).Warn("login rejected")

		return nil, models.ErrInvalidCredentials
	}

	tenantID := req.TenantID
	if tenantID == "" {
		tenantID = s.defaultTenant
	}

	tenant, err := s.tenants.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NewValidationError("tenantId", "unknown tenant %q", tenantID)
		}

		return nil, fmt.Errorf("resolving login tenant: %w", err)
	}

	if tenant.Status == models.TenantSuspended {
		return nil, models.NewValidationError("tenantId", "tenant %q is suspended", tenantID)
	}

	if s.guard != nil {
		s.guard.Reset(req.Username)
	}

	p := models.Principal{
		ID:        s.admin.ID,
		Username:  s.admin.Username,
		Email:     s.admin.Username,
		FirstName: s.admin.FirstName,
		LastName:  s.admin.LastName,
		Role:      s.admin.Role,
		TenantID:  tenant.ID,
	}

	token, exp, err := s.issuer.Issue(p)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	actor, _ := auth.ActorFromContext(ctx)
	actor.UserID = p.ID
	actor.UserName = p.FirstName + " " + p.LastName
	actor.TenantID = tenant.ID
	s.audit(auth.ContextWithActor(ctx, actor), tenant.ID, models.ActionLogin, p)

	return &models.LoginResponse{Token: token, ExpiresAt: exp, User: p}, nil
}

// Logout records the logout of the actor in ctx. Tokens are stateless and
// stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, tenantID string) error {
	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return models.ErrInvalidCredentials
	}

	s.audit(ctx, tenantID, models.ActionLogout, models.Principal{
		ID: actor.UserID, FirstName: actor.UserName,
	})

	return nil
}

// checkCredentials compares both values in constant time.
func (s *AuthService) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(username))),
		[]byte(strings.ToLower(s.admin.Username)),
	) == 1
	passOK := auth.VerifyPassword(s.admin.PasswordHash, password)

	return userOK && passOK
}

func (s *AuthService) audit(ctx context.Context, tenantID, action string, p models.Principal) {
	if s.auditWorker == nil {
		return
	}

	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	s.auditWorker.Enqueue(&AuditJob{
		TenantID: tenantID,
		Entry:    newAuditEntry(ctx, action, models.ResourceUser, p.ID, name, nil),
	})
}
