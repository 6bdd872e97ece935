package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// RoleHandler serves role endpoints, including privilege linking.
type RoleHandler struct {
	svc RoleService
	log *logrus.Logger
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(svc RoleService, log *logrus.Logger) *RoleHandler {
	return &RoleHandler{svc: svc, log: log}
}

// List handles GET /api/v1/roles.
func (h *RoleHandler) List(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	roles, err := h.svc.ListRoles(c.Request.Context(), tenantID, listFilter(c))
	if err != nil {
		respondServiceError(c, h.log, err, "listing roles")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": roles, "total": len(roles)})
}

// Get handles GET /api/v1/roles/:id.
func (h *RoleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	role, err := h.svc.GetRole(c.Request.Context(), tenantID, id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting role")
		return
	}

	c.JSON(http.StatusOK, role)
}

// Create handles POST /api/v1/roles.
func (h *RoleHandler) Create(c *gin.Context) {
	var req models.CreateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	role, err := h.svc.CreateRole(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating role")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "role.create", "tenant_id": tenantID, "role_id": role.ID}).Info("audit")

	c.JSON(http.StatusCreated, role)
}

// Update handles PUT /api/v1/roles/:id.
func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	role, err := h.svc.UpdateRole(c.Request.Context(), tenantID, id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating role")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "role.update", "tenant_id": tenantID, "role_id": id}).Info("audit")

	c.JSON(http.StatusOK, role)
}

// LinkPrivilege handles PUT /api/v1/roles/:id/privileges/:privilegeId.
func (h *RoleHandler) LinkPrivilege(c *gin.Context) {
	h.togglePrivilege(c, "role.link_privilege", h.svc.LinkPrivilege)
}

// UnlinkPrivilege handles DELETE /api/v1/roles/:id/privileges/:privilegeId.
func (h *RoleHandler) UnlinkPrivilege(c *gin.Context) {
	h.togglePrivilege(c, "role.unlink_privilege", h.svc.UnlinkPrivilege)
}

func (h *RoleHandler) togglePrivilege(
	c *gin.Context, action string,
	op func(ctx context.Context, tenantID, roleID, privilegeID string) (*models.Role, error),
) {
	roleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	privilegeID, ok := pathID(c, "privilegeId")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	role, err := op(c.Request.Context(), tenantID, roleID, privilegeID)
	if err != nil {
		respondServiceError(c, h.log, err, action)
		return
	}

	h.log.WithFields(logrus.Fields{"action": action, "tenant_id": tenantID, "role_id": roleID, "privilege_id": privilegeID}).Info("audit")

	c.JSON(http.StatusOK, role)
}
