package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// LegalEntityHandler serves legal entity endpoints.
type LegalEntityHandler struct {
	svc LegalEntityService
	log *logrus.Logger
}

// NewLegalEntityHandler creates a LegalEntityHandler.
func NewLegalEntityHandler(svc LegalEntityService, log *logrus.Logger) *LegalEntityHandler {
	return &LegalEntityHandler{svc: svc, log: log}
}

// List handles GET /api/v1/legal-entities.
func (h *LegalEntityHandler) List(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	entities, err := h.svc.ListLegalEntities(c.Request.Context(), tenantID, listFilter(c))
	if err != nil {
		respondServiceError(c, h.log, err, "listing legal entities")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entities, "total": len(entities)})
}

// Get handles GET /api/v1/legal-entities/:id.
func (h *LegalEntityHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	entity, err := h.svc.GetLegalEntity(c.Request.Context(), tenantID, id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting legal entity")
		return
	}

	c.JSON(http.StatusOK, entity)
}

// Create handles POST /api/v1/legal-entities.
func (h *LegalEntityHandler) Create(c *gin.Context) {
	var req models.CreateLegalEntityRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	entity, err := h.svc.CreateLegalEntity(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating legal entity")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "legal_entity.create", "tenant_id": tenantID, "legal_entity_id": entity.ID}).Info("audit")

	c.JSON(http.StatusCreated, entity)
}

// Update handles PUT /api/v1/legal-entities/:id.
func (h *LegalEntityHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateLegalEntityRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	entity, err := h.svc.UpdateLegalEntity(c.Request.Context(), tenantID, id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating legal entity")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "legal_entity.update", "tenant_id": tenantID, "legal_entity_id": id}).Info("audit")

	c.JSON(http.StatusOK, entity)
}
