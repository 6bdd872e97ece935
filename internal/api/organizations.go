package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// OrganizationHandler serves organization endpoints.
type OrganizationHandler struct {
	svc OrganizationService
	log *logrus.Logger
}

// NewOrganizationHandler creates an OrganizationHandler.
func NewOrganizationHandler(svc OrganizationService, log *logrus.Logger) *OrganizationHandler {
	return &OrganizationHandler{svc: svc, log: log}
}

// List handles GET /api/v1/organizations.
func (h *OrganizationHandler) List(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	orgs, err := h.svc.ListOrganizations(c.Request.Context(), tenantID, listFilter(c))
	if err != nil {
		respondServiceError(c, h.log, err, "listing organizations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orgs, "total": len(orgs)})
}

// Get handles GET /api/v1/organizations/:id.
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	org, err := h.svc.GetOrganization(c.Request.Context(), tenantID, id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting organization")
		return
	}

	c.JSON(http.StatusOK, org)
}

// Create handles POST /api/v1/organizations.
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req models.CreateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	org, err := h.svc.CreateOrganization(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating organization")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "organization.create", "tenant_id": tenantID, "organization_id": org.ID}).Info("audit")

	c.JSON(http.StatusCreated, org)
}

// Update handles PUT /api/v1/organizations/:id.
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrganizationRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	org, err := h.svc.UpdateOrganization(c.Request.Context(), tenantID, id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating organization")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "organization.update", "tenant_id": tenantID, "organization_id": id}).Info("audit")

	c.JSON(http.StatusOK, org)
}

// Delete handles DELETE /api/v1/organizations/:id.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	if err := h.svc.DeleteOrganization(c.Request.Context(), tenantID, id); err != nil {
		respondServiceError(c, h.log, err, "deleting organization")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "organization.delete", "tenant_id": tenantID, "organization_id": id}).Info("audit")

	c.Status(http.StatusNoContent)
}
