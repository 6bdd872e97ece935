package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

const (
	defaultAuditLimit    = 50
	defaultRetentionDays = 90
)

// AuditHandler serves audit log endpoints.
type AuditHandler struct {
	svc AuditService
	log *logrus.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc AuditService, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: log}
}

// Query handles GET /api/v1/audit. Entries come back newest first.
func (h *AuditHandler) Query(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	filters := models.AuditFilters{
		UserID:       c.Query("userId"),
		Action:       c.Query("action"),
		ResourceType: c.Query("resourceType"),
		SearchTerm:   c.DefaultQuery("searchTerm", c.Query("search")),
		DateFrom:     c.Query("dateFrom"),
		DateTo:       c.Query("dateTo"),
		Limit:        parseInt(c.Query("limit"), defaultAuditLimit),
		Offset:       parseOffset(c.Query("offset")),
	}

	entries, hasMore, err := h.svc.QueryAudit(c.Request.Context(), tenantID, filters)
	if err != nil {
		respondServiceError(c, h.log, err, "querying audit log")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     entries,
		"has_more": hasMore,
	})
}

// Purge handles DELETE /api/v1/audit.
func (h *AuditHandler) Purge(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	retentionDays := defaultRetentionDays
	if rd := c.Query("retention_days"); rd != "" {
		v, err := strconv.Atoi(rd)
		if err != nil || v < 1 {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "retention_days must be a positive integer")
			return
		}
		retentionDays = v
	}

	deleted, err := h.svc.PurgeOldEntries(c.Request.Context(), tenantID, retentionDays)
	if err != nil {
		respondServiceError(c, h.log, err, "purging audit entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted":        deleted,
		"retention_days": retentionDays,
	})
}
