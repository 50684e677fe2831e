// Package common defines the sentinel errors shared across the credit
// platform services. Callers should use errors.Is to match these values;
// the HTTP layer maps each kind to a status code and a stable error code.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDeactivated = errors.New("user account is deactivated")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenSignature     = errors.New("token signature invalid")

	// Authorization errors.
	ErrNotOwner         = errors.New("not the owner of this resource")
	ErrInsufficientRole = errors.New("role not allowed to perform this action")

	// Conflict errors (uniqueness).
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateDocument = errors.New("document already registered")

	// Not-found errors surfaced to clients.
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDocumentNotFound    = errors.New("document not found")

	// State errors.
	ErrNotDeletable       = errors.New("only pending applications can be deleted")
	ErrInvalidStatusValue = errors.New("invalid status value")
	ErrInvalidTransition  = errors.New("status transition not allowed")

	// Service-level catch-all.
	ErrInternal = errors.New("internal error")
)

// ValidationError carries per-field validation messages for a rejected
// request body. It is rendered as the "errors" map of the error response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
