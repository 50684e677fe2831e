package httpx

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/roles"
	"github.com/mycompany/credit-platform/internal/token"
)

const (
	identityKey  = "identity"
	requestIDKey = "request_id"
)

// Identity is the validated identity attached to a request after the bearer
// token has been verified. Handlers and services must trust only this, never
// client-supplied identity fields.
type Identity struct {
	UserID int64
	Email  string
	Role   roles.Role
}

// GetIdentity returns the request identity set by RequireAuth.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequestID propagates X-Request-ID, generating one when absent.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequireAuth verifies the Authorization bearer token and stores the
// resulting Identity in the context. Verification failures are logged with
// their precise kind and answered with the generic unauthorized body.
func RequireAuth(codec *token.Codec, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			Error(c, common.ErrTokenMalformed)
			return
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			log.Warn(c.Request.Context(), "token rejected",
				"reason", err.Error(),
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey))
			Error(c, err)
			return
		}

		role, err := roles.Parse(claims.Role)
		if err != nil {
			Error(c, common.ErrTokenMalformed)
			return
		}

		c.Set(identityKey, Identity{UserID: claims.UserID, Email: claims.Email(), Role: role})
		c.Next()
	}
}

// RequireRoles rejects requests whose identity role is not in the allowed
// set. It must run after RequireAuth.
func RequireRoles(allowed ...roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			Error(c, common.ErrTokenMalformed)
			return
		}
		for _, r := range allowed {
			if id.Role == r {
				c.Next()
				return
			}
		}
		Error(c, common.ErrInsufficientRole)
	}
}

// Recovery turns panics into the generic internal error body.
func Recovery(log logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error(c.Request.Context(), "panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey))
		Error(c, common.ErrInternal)
	})
}
