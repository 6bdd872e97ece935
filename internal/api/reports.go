package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReportHandler serves the dashboard summary.
type ReportHandler struct {
	svc ReportService
	log *logrus.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc ReportService, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{svc: svc, log: log}
}

// Summary handles GET /api/v1/reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, h.log, err, "building report summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}
