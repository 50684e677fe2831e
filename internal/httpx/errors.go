// Package httpx carries the gin plumbing shared by the auth and credit
// services: bearer-token authentication, role gates, request IDs, panic
// recovery, request binding and the error-kind to HTTP mapping.
package httpx

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/common"
)

// ErrorResponse is the wire shape of every error body.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// Error renders err as the platform error body and aborts the request.
// Unrecognized errors become a generic 500 that leaks no internal detail.
func Error(c *gin.Context, err error) {
	status, code, message, fields := classify(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Errors:    fields,
	})
}

func classify(err error) (int, string, string, map[string]string) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", ve.Fields
	}

	switch {
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrAccountDeactivated):
		// Deactivated accounts intentionally keep their more specific
		// message, mirroring the reference behavior (see DESIGN.md).
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", capitalize(err.Error()), nil
	case errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenMalformed),
		errors.Is(err, common.ErrTokenSignature):
		// Distinct kinds for logging; one generic response at the boundary.
		return http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil
	case errors.Is(err, common.ErrNotOwner):
		return http.StatusForbidden, "FORBIDDEN", "You can only access your own applications", nil
	case errors.Is(err, common.ErrInsufficientRole):
		return http.StatusForbidden, "ACCESS_DENIED", "You don't have permission", nil
	case errors.Is(err, common.ErrUserNotFound),
		errors.Is(err, common.ErrApplicationNotFound),
		errors.Is(err, common.ErrDocumentNotFound),
		errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", capitalize(err.Error()), nil
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "Email already registered", nil
	case errors.Is(err, common.ErrDuplicateDocument):
		return http.StatusConflict, "DUPLICATE_DOCUMENT", "Document already registered", nil
	case errors.Is(err, common.ErrNotDeletable):
		return http.StatusBadRequest, "CANNOT_DELETE", "Only pending applications can be deleted", nil
	case errors.Is(err, common.ErrInvalidStatusValue):
		return http.StatusBadRequest, "INVALID_STATUS", "Invalid status value", nil
	case errors.Is(err, common.ErrInvalidTransition):
		return http.StatusBadRequest, "INVALID_TRANSITION", "Status transition not allowed", nil
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
