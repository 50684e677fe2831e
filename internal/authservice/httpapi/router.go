package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/authservice/services"
	"github.com/mycompany/credit-platform/internal/httpx"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/roles"
	"github.com/mycompany/credit-platform/internal/token"
)

// NewRouter assembles the auth service HTTP surface.
//
// Registration, login, health and the service-to-service user lookup are
// public; account status management requires an ADMIN token.
func NewRouter(users *services.UserService, codec *token.Codec, log logging.Logger, corsOrigin string) *gin.Engine {
	h := NewHandler(users, log)

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Recovery(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	api := r.Group("/api/auth")
	api.POST("/register", h.register)
	api.POST("/login", h.login)
	api.GET("/health", h.health)
	api.GET("/users/:id", h.getUser)

	admin := api.Group("")
	admin.Use(httpx.RequireAuth(codec, log), httpx.RequireRoles(roles.Admin))
	admin.PUT("/users/:id/status", h.updateStatus)

	return r
}
