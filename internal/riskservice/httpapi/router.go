package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/httpx"
	"github.com/mycompany/credit-platform/internal/logging"
)

// NewRouter assembles the risk mock's HTTP surface. The endpoint is internal
// to the platform and unauthenticated, called only by the credit service.
func NewRouter(log logging.Logger, opts ...Option) *gin.Engine {
	h := NewHandler(log, opts...)

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Recovery(log))

	r.GET("/health", h.health)
	r.POST("/risk-evaluation", h.evaluate)

	return r
}
