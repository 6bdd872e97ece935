package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/auth"
	"github.com/persistorai/tenantadmin/internal/middleware"
	"github.com/persistorai/tenantadmin/internal/models"
	"github.com/persistorai/tenantadmin/internal/ws"
)

const maxIDLen = 255

// getTenantID returns the tenant the request's token is scoped to. It
// responds 400 and returns "" when the value is missing or malformed.
func getTenantID(c *gin.Context) string {
	tid := c.GetString(middleware.TenantIDKey)

	if err := validatePathID(tid); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid tenant id")

		return ""
	}

	return tid
}

// pathID reads and validates a path parameter, responding 400 on failure.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if err := validatePathID(id); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())

		return "", false
	}

	return id, true
}

// bindJSON decodes the request body into req, responding 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")

		return false
	}

	return true
}

// listFilter reads the search and status query parameters shared by every
// list endpoint.
func listFilter(c *gin.Context) models.ListFilter {
	return models.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Status: c.Query("status"),
	}
}

func wsHandler(appCtx context.Context, log *logrus.Logger, hub *ws.Hub, validator ws.TokenValidator, corsOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if getTenantID(c) == "" {
			return
		}

		claims, ok := c.Get(middleware.ClaimsKey)
		if !ok {
			respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing token claims")
			return
		}

		conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
			OriginPatterns:       corsOrigins,
			CompressionMode:      websocket.CompressionContextTakeover,
			CompressionThreshold: 128,
		})
		if err != nil {
			log.WithError(err).Error("websocket accept failed")

			return
		}

		client := ws.NewClient(hub, conn, validator, c.GetString(middleware.TokenKey), claims.(*auth.Claims))
		hub.Register(client)

		// Cancel when either the server shuts down or the request ends.
		wsCtx, wsCancel := context.WithCancel(appCtx)
		go func() {
			select {
			case <-c.Request.Context().Done():
				wsCancel()
			case <-wsCtx.Done():
			}
		}()

		go client.WritePump(wsCtx)
		client.ReadPump(wsCtx)
		wsCancel()
	}
}

// maxPaginationLimit caps the maximum number of items per page.
const maxPaginationLimit = 1000

// maxPaginationOffset caps the maximum offset for paginated queries.
const maxPaginationOffset = 100000

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}

	if v > maxPaginationLimit {
		return maxPaginationLimit
	}

	return v
}

func parseOffset(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}

	if v > maxPaginationOffset {
		return maxPaginationOffset
	}

	return v
}

// parseBool accepts the strconv spellings and falls back for anything else.
func parseBool(s string, fallback bool) bool {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}

	return v
}

// validatePathID checks that a path parameter ID is non-empty and within length limits.
func validatePathID(id string) error {
	if id == "" {
		return fmt.Errorf("id must not be empty")
	}
	if len(id) > maxIDLen {
		return fmt.Errorf("id exceeds maximum length of %d", maxIDLen)
	}
	return nil
}
