package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// UserHandler serves user endpoints, including role assignment.
type UserHandler struct {
	svc UserService
	log *logrus.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc UserService, log *logrus.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	users, err := h.svc.ListUsers(c.Request.Context(), tenantID, listFilter(c))
	if err != nil {
		respondServiceError(c, h.log, err, "listing users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users, "total": len(users)})
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), tenantID, id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), tenantID, req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating user")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "user.create", "tenant_id": tenantID, "user_id": user.ID}).Info("audit")

	c.JSON(http.StatusCreated, user)
}

// Update handles PUT /api/v1/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), tenantID, id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating user")
		return
	}

	h.log.WithFields(logrus.Fields{"action": "user.update", "tenant_id": tenantID, "user_id": id}).Info("audit")

	c.JSON(http.StatusOK, user)
}

// AssignRole handles PUT /api/v1/users/:id/roles/:roleId.
func (h *UserHandler) AssignRole(c *gin.Context) {
	h.toggleRole(c, "user.assign_role", h.svc.AssignRole)
}

// RemoveRole handles DELETE /api/v1/users/:id/roles/:roleId.
func (h *UserHandler) RemoveRole(c *gin.Context) {
	h.toggleRole(c, "user.remove_role", h.svc.RemoveRole)
}

func (h *UserHandler) toggleRole(
	c *gin.Context, action string,
	op func(ctx context.Context, tenantID, userID, roleID string) (*models.User, error),
) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	roleID, ok := pathID(c, "roleId")
	if !ok {
		return
	}

	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	user, err := op(c.Request.Context(), tenantID, userID, roleID)
	if err != nil {
		respondServiceError(c, h.log, err, action)
		return
	}

	h.log.WithFields(logrus.Fields{"action": action, "tenant_id": tenantID, "user_id": userID, "role_id": roleID}).Info("audit")

	c.JSON(http.StatusOK, user)
}
