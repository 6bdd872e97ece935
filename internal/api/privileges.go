package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// PrivilegeHandler serves privilege endpoints.
type PrivilegeHandler struct {
	svc PrivilegeService
	log *logrus.Logger
}

// NewPrivilegeHandler creates a PrivilegeHandler.
func NewPrivilegeHandler(svc PrivilegeService, log *logrus.Logger) *PrivilegeHandler {
	return &PrivilegeHandler{svc: svc, log: log}
}

// List handles GET /api/v1/privileges. Privileges have no status; the
// category query parameter takes its place in the filter.
func (h *PrivilegeHandler) List(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	filter := listFilter(c)
	filter.Status = c.DefaultQuery("category", filter.Status)

	privs, err := h.svc.ListPrivileges(c.Request.Context(), tenantID, filter)
	if err != nil {
		respondServiceError(c, h.log, err, "listing privileges")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": privs, "total": len(privs)})
}

// Get handles GET /api/v1/privileges/:id.
func (h *PrivilegeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	priv, err := h.svc.GetPrivilege(c.Request.Context(), tenantID, id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting privilege")
		return
	}

	c.JSON(http.StatusOK, priv)
}

// Create handles POST /api/v1/privileges.
func (h *PrivilegeHandler) Create(c *gin.Context) {
	var req models.CreatePrivilegeRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	priv, err := h.svc.CreatePrivilege(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating privilege")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "privilege.create", "tenant_id": tenantID, "privilege_id": priv.ID}).Info("audit")

	c.JSON(http.StatusCreated, priv)
}

// Update handles PUT /api/v1/privileges/:id.
func (h *PrivilegeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePrivilegeRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	priv, err := h.svc.UpdatePrivilege(c.Request.Context(), tenantID, id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating privilege")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "privilege.update", "tenant_id": tenantID, "privilege_id": id}).Info("audit")

	c.JSON(http.StatusOK, priv)
}
