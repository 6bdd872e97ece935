// Package api provides HTTP handlers for the tenant administration service.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/db"
	"github.com/persistorai/tenantadmin/internal/db/migrations"
	"github.com/persistorai/tenantadmin/internal/dbpool"
)

// ClientCounter reports live WebSocket connections.
type ClientCounter interface {
	ClientCount() int
}

// HealthHandler serves health check endpoints. A nil pool means the service
// runs without persistence.
type HealthHandler struct {
	pool      *dbpool.Pool
	hub       ClientCounter
	log       *logrus.Logger
	version   string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler with the given dependencies.
func NewHealthHandler(pool *dbpool.Pool, hub ClientCounter, log *logrus.Logger, version string) *HealthHandler {
	return &HealthHandler{
		pool:      pool,
		hub:       hub,
		log:       log,
		version:   version,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status           string  `json:"status"`
	Version          string  `json:"version"`
	Database         string  `json:"database"`
	WebSocketClients int     `json:"websocket_clients"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Database:      "connected",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.pool.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	} else {
		resp.Database = "not_configured"
	}

	if h.hub != nil {
		resp.WebSocketClients = h.hub.ClientCount()
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready. Without a database the in-memory
// store is always ready.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.pool == nil {
		c.JSON(http.StatusOK, readinessResponse{
			Status: "ready",
			Checks: map[string]string{"database": "not_configured", "schema": "not_configured"},
		})

		return
	}

	checks := map[string]string{
		"database": "ok",
		"schema":   "ok",
	}
	status := "ready"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.pool.HealthCheck(ctx); err != nil {
		h.log.WithError(err).Error("readiness: database health check failed")
		checks["database"] = "error"
		checks["schema"] = "unknown"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	} else if err := h.checkSchema(ctx); err != nil {
		h.log.WithError(err).Error("readiness: schema check failed")
		checks["schema"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, readinessResponse{
		Status: status,
		Checks: checks,
	})
}

// checkSchema verifies every embedded migration has been applied.
func (h *HealthHandler) checkSchema(ctx context.Context) error {
	v, err := db.CurrentVersion(ctx, h.pool, migrations.FS)
	if err != nil {
		return fmt.Errorf("schema check: %w", err)
	}

	if want := int64(db.SchemaVersion()); v < want {
		return fmt.Errorf("schema at version %d, want %d", v, want)
	}

	return nil
}
