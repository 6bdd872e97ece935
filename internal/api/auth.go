package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/models"
)

// AuthHandler serves operator login and logout.
type AuthHandler struct {
	svc AuthService
	log *logrus.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Login handles POST /api/v1/auth/login. It is the only unauthenticated
// route besides health and readiness.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "login")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless, so logout
// only records the event; clients discard the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	tenantID := getTenantID(c)
	if tenantID == "" {
		return
	}

	if err := h.svc.Logout(c.Request.Context(), tenantID); err != nil {
		respondServiceError(c, h.log, err, "logout")
		return
	}

	c.Status(http.StatusNoContent)
}
