package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/tenantadmin/internal/httputil"
	"github.com/persistorai/tenantadmin/internal/metrics"
	"github.com/persistorai/tenantadmin/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeInvalidFormat   = "invalid_format"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
	ErrCodeTimeout         = "timeout"
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondServiceError maps a service error onto its HTTP status. Anything
// unrecognised is logged under op and reported as a 500.
func respondServiceError(c *gin.Context, log *logrus.Logger, err error, op string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidFormat):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidFormat, err.Error())
	case models.IsValidation(err):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid username or password")
	case errors.Is(err, models.ErrLoginLocked):
		respondError(c, http.StatusTooManyRequests, ErrCodeRateLimited, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusGatewayTimeout, ErrCodeTimeout, "operation timed out")
	default:
		log.WithError(err).Error(op)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
