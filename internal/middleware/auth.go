package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/auth"
)

// Context keys set by Auth.
const (
	TenantIDKey = "tenant_id"
	ClaimsKey   = "claims"
	TokenKey    = "token"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Auth returns Gin middleware that requires a valid operator JWT. It scopes
// the request to the token's tenant and attaches the operator as the audit
// actor of the request context.
func Auth(parser TokenParser, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractBearerToken(c)
		if token == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization header")
			return
		}

		claims, err := parser.Parse(token)
		if err != nil {
			logAuthFailure(log, c, err)
			respondError(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")

			return
		}

		actor := auth.Actor{
			UserID:    claims.Subject,
			UserName:  claims.Name,
			TenantID:  claims.TenantID,
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		c.Request = c.Request.WithContext(auth.ContextWithActor(c.Request.Context(), actor))

		c.Set(TenantIDKey, claims.TenantID)
		c.Set(ClaimsKey, claims)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// ExtractBearerToken returns the token from the Authorization header. Browsers
// cannot set headers on a WebSocket handshake, so upgrade requests may pass
// it as the "token" query parameter instead.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return c.Query("token")
	}

	return ""
}

func logAuthFailure(log *logrus.Logger, c *gin.Context, err error) {
	log.WithFields(logrus.Fields{
		"client_ip":  c.ClientIP(),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"user_agent": c.Request.UserAgent(),
		"request_id": c.GetString(RequestIDKey),
	}).WithError(err).Warn("authentication failed")
}
