package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/dbpool"
	"github.com/persistorai/tenantadmin/internal/middleware"
	"github.com/persistorai/tenantadmin/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log           *logrus.Logger
	Pool          *dbpool.Pool
	Hub           *ws.Hub
	Tokens        middleware.TokenParser
	Tenants       TenantService
	Organizations OrganizationService
	Users         UserService
	Roles         RoleService
	Privileges    PrivilegeService
	LegalEntities LegalEntityService
	Audit         AuditService
	Bulk          BulkService
	Reports       ReportService
	Auth          AuthService
	CORSOrigins   []string
	Version       string
	ImportTimeout time.Duration
}

// Router-level limits.
const (
	maxBodySize   = 1 << 20 // 1 MB
	maxUploadBody = maxImportSize + 1<<20
	rateLimit     = 100 // requests per second per IP
	rateBurst     = 200 // token bucket burst size
	loginRate     = 1
	loginBurst    = 10
)

const importPath = "/api/v1/bulk/users/import"

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodySize, map[string]int64{importPath: maxUploadBody}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.Prometheus())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	var clients ClientCounter
	if deps.Hub != nil {
		clients = deps.Hub
	}

	health := NewHealthHandler(deps.Pool, clients, log, deps.Version)
	authH := NewAuthHandler(deps.Auth, log)
	tenants := NewTenantHandler(deps.Tenants, log)
	orgs := NewOrganizationHandler(deps.Organizations, log)
	users := NewUserHandler(deps.Users, log)
	roles := NewRoleHandler(deps.Roles, log)
	privs := NewPrivilegeHandler(deps.Privileges, log)
	entities := NewLegalEntityHandler(deps.LegalEntities, log)
	audit := NewAuditHandler(deps.Audit, log)
	bulk := NewBulkHandler(deps.Bulk, log, deps.ImportTimeout)
	reports := NewReportHandler(deps.Reports, log)

	// Health, readiness and login are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)
	api.POST("/auth/login", middleware.NewRateLimiter(ctx, loginRate, loginBurst).Handler(), authH.Login)

	// All other API routes require a bearer token.
	api.Use(middleware.Auth(deps.Tokens, log))

	api.POST("/auth/logout", authH.Logout)

	// Tenants.
	api.GET("/tenants", tenants.List)
	api.POST("/tenants", tenants.Create)
	api.GET("/tenants/:id", tenants.Get)
	api.PUT("/tenants/:id", tenants.Update)

	// Organizations.
	api.GET("/organizations", orgs.List)
	api.POST("/organizations", orgs.Create)
	api.GET("/organizations/:id", orgs.Get)
	api.PUT("/organizations/:id", orgs.Update)
	api.DELETE("/organizations/:id", orgs.Delete)

	// Users.
	api.GET("/users", users.List)
	api.POST("/users", users.Create)
	api.GET("/users/:id", users.Get)
	api.PUT("/users/:id", users.Update)
	api.PUT("/users/:id/roles/:roleId", users.AssignRole)
	api.DELETE("/users/:id/roles/:roleId", users.RemoveRole)

	// Roles.
	api.GET("/roles", roles.List)
	api.POST("/roles", roles.Create)
	api.GET("/roles/:id", roles.Get)
	api.PUT("/roles/:id", roles.Update)
	api.PUT("/roles/:id/privileges/:privilegeId", roles.LinkPrivilege)
	api.DELETE("/roles/:id/privileges/:privilegeId", roles.UnlinkPrivilege)

	// Privileges.
	api.GET("/privileges", privs.List)
	api.POST("/privileges", privs.Create)
	api.GET("/privileges/:id", privs.Get)
	api.PUT("/privileges/:id", privs.Update)

	// Legal entities.
	api.GET("/legal-entities", entities.List)
	api.POST("/legal-entities", entities.Create)
	api.GET("/legal-entities/:id", entities.Get)
	api.PUT("/legal-entities/:id", entities.Update)

	// Audit.
	api.GET("/audit", audit.Query)
	api.DELETE("/audit", audit.Purge)

	// Bulk user transfer.
	api.POST("/bulk/users/import", bulk.Import)
	api.GET("/bulk/users/export", bulk.Export)
	api.GET("/bulk/users/template", bulk.Template)

	// Reports.
	api.GET("/reports/summary", reports.Summary)

	// WebSocket endpoint.
	if deps.Hub != nil {
		api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.Tokens, deps.CORSOrigins))
	}
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
