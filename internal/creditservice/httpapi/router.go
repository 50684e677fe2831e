package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/httpx"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/token"
)

// NewRouter assembles the credit service HTTP surface. Everything except the
// health endpoint requires a valid token; role and ownership rules are
// enforced by the policy package inside the use cases, not by the router.
func NewRouter(apps ApplicationUseCases, docs DocumentUseCases, codec *token.Codec, log logging.Logger, corsOrigin string) *gin.Engine {
	h := NewHandler(apps, docs, log)

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Recovery(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{corsOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))

	api := r.Group("/api/applications")
	api.GET("/health", h.health)

	protected := api.Group("")
	protected.Use(httpx.RequireAuth(codec, log))
	protected.POST("", h.create)
	protected.GET("", h.listAll)
	protected.GET("/my", h.listMine)
	protected.GET("/:id", h.get)
	protected.PUT("/:id", h.update)
	protected.PATCH("/:id/status", h.updateStatus)
	protected.DELETE("/:id", h.delete)
	protected.GET("/:id/risk", h.risk)
	protected.POST("/:id/documents", h.attachDocument)
	protected.GET("/:id/documents", h.listDocuments)
	protected.GET("/:id/documents/:docId/download", h.downloadDocument)

	return r
}
