package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// TenantHandler serves tenant endpoints. Tenants are the scoping root, so
// these routes are not filtered by the caller's tenant.
type TenantHandler struct {
	svc TenantService
	log *logrus.Logger
}

// NewTenantHandler creates a TenantHandler.
func NewTenantHandler(svc TenantService, log *logrus.Logger) *TenantHandler {
	return &TenantHandler{svc: svc, log: log}
}

// List handles GET /api/v1/tenants.
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.svc.ListTenants(c.Request.Context(), listFilter(c))
	if err != nil {
		respondServiceError(c, h.log, err, "listing tenants")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tenants, "total": len(tenants)})
}

// Get handles GET /api/v1/tenants/:id.
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tenant, err := h.svc.GetTenant(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting tenant")
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// Create handles POST /api/v1/tenants.
func (h *TenantHandler) Create(c *gin.Context) {
	var req models.CreateTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	tenant, err := h.svc.CreateTenant(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating tenant")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "tenant.create", "tenant_id": tenant.ID}).Info("audit")

	c.JSON(http.StatusCreated, tenant)
}

// Update handles PUT /api/v1/tenants/:id.
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateTenantRequest
	if !bindJSON(c, &req) {
		return
	}

	tenant, err := h.svc.UpdateTenant(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating tenant")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "tenant.update", "tenant_id": id}).Info("audit")

	c.JSON(http.StatusOK, tenant)
}
