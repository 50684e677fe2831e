// Package httpapi exposes the risk scoring mock over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/httpx"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/riskservice/scoring"
)

type evaluationRequest struct {
	Document   string `json:"document" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	TermMonths int    `json:"termMonths" binding:"required,gt=0"`
}

type evaluationResponse struct {
	Document    string    `json:"document"`
	Score       int       `json:"score"`
	RiskLevel   string    `json:"riskLevel"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

type Handler struct {
	log logging.Logger
	now func() time.Time
}

type Option func(*Handler)

// WithClock overrides the time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(log logging.Logger, opts ...Option) *Handler {
	h := &Handler{log: log, now: time.Now}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Handler) health(c *gin.Context) {
	c.String(http.StatusOK, "Risk evaluation service is running")
}

func (h *Handler) evaluate(c *gin.Context) {
	var req evaluationRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.Error(c, err)
		return
	}

	score := scoring.Score(req.Document)

	h.log.Info(c.Request.Context(), "risk evaluated", "score", score)

	c.JSON(http.StatusOK, evaluationResponse{
		Document:    req.Document,
		Score:       score,
		RiskLevel:   scoring.Level(score),
		EvaluatedAt: h.now().UTC(),
	})
}
