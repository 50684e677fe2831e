package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/common"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performWithError(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { Error(c, err) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)

	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v\n%s", err, w.Body.String())
	}
	return w, body
}

func TestError_KindMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid credentials", common.ErrInvalidCredentials, 401, "INVALID_CREDENTIALS"},
		{"deactivated account", common.ErrAccountDeactivated, 401, "INVALID_CREDENTIALS"},
		{"expired token", common.ErrTokenExpired, 401, "UNAUTHORIZED"},
		{"malformed token", common.ErrTokenMalformed, 401, "UNAUTHORIZED"},
		{"bad signature", common.ErrTokenSignature, 401, "UNAUTHORIZED"},
		{"not owner", common.ErrNotOwner, 403, "FORBIDDEN"},
		{"insufficient role", common.ErrInsufficientRole, 403, "ACCESS_DENIED"},
		{"user not found", common.ErrUserNotFound, 404, "NOT_FOUND"},
		{"application not found", common.ErrApplicationNotFound, 404, "NOT_FOUND"},
		{"duplicate email", common.ErrDuplicateEmail, 409, "DUPLICATE_EMAIL"},
		{"duplicate document", common.ErrDuplicateDocument, 409, "DUPLICATE_DOCUMENT"},
		{"not deletable", common.ErrNotDeletable, 400, "CANNOT_DELETE"},
		{"invalid status", common.ErrInvalidStatusValue, 400, "INVALID_STATUS"},
		{"invalid transition", common.ErrInvalidTransition, 400, "INVALID_TRANSITION"},
		{"unknown", errors.New("pg down"), 500, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, body := performWithError(t, tc.err)
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if body.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Code, tc.code)
			}
			if body.Status != tc.status {
				t.Fatalf("body.status = %d, want %d", body.Status, tc.status)
			}
			if body.Timestamp.IsZero() {
				t.Fatal("timestamp must be set")
			}
		})
	}
}

func TestError_InternalLeaksNothing(t *testing.T) {
	_, body := performWithError(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	if body.Message != "An unexpected error occurred" {
		t.Fatalf("internal error leaked detail: %q", body.Message)
	}
}

func TestError_ValidationCarriesFieldMap(t *testing.T) {
	err := &common.ValidationError{Fields: map[string]string{"amount": "must be at least 100000"}}
	w, body := performWithError(t, err)
	if w.Code != 400 || body.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected mapping: %d %s", w.Code, body.Code)
	}
	if body.Errors["amount"] != "must be at least 100000" {
		t.Fatalf("missing field message: %+v", body.Errors)
	}
}

func TestError_DeactivatedMessageIsSpecific(t *testing.T) {
	// The deactivated-account message deliberately differs from the generic
	// credentials message (reference behavior, see DESIGN.md).
	_, generic := performWithError(t, common.ErrInvalidCredentials)
	_, deactivated := performWithError(t, common.ErrAccountDeactivated)
	if generic.Message == deactivated.Message {
		t.Fatal("deactivated account message should differ from generic one")
	}
}
