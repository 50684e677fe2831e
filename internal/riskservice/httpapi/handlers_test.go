package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mycompany/credit-platform/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewRouter(log, WithClock(func() time.Time { return fixed }))
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/risk-evaluation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEvaluate(t *testing.T) {
	r := newRouter(t)

	w := post(r, `{"document":"12345678","amount":200000,"termMonths":12}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp evaluationResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Document != "12345678" {
		t.Errorf("document = %q", resp.Document)
	}
	if resp.Score < 300 || resp.Score > 950 {
		t.Errorf("score %d out of range", resp.Score)
	}
	if resp.RiskLevel != "HIGH" && resp.RiskLevel != "MEDIUM" && resp.RiskLevel != "LOW" {
		t.Errorf("riskLevel = %q", resp.RiskLevel)
	}
	if !resp.EvaluatedAt.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("evaluatedAt = %v", resp.EvaluatedAt)
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	r := newRouter(t)

	first := post(r, `{"document":"CC-42","amount":150000,"termMonths":24}`)
	second := post(r, `{"document":"CC-42","amount":900000,"termMonths":6}`)

	var a, b evaluationResponse
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatal(err)
	}
	// the loan shape does not move the score, only the document does
	if a.Score != b.Score || a.RiskLevel != b.RiskLevel {
		t.Fatalf("same document scored differently: %+v vs %+v", a, b)
	}
}

func TestEvaluate_Validation(t *testing.T) {
	r := newRouter(t)

	cases := []string{
		`{"amount":200000,"termMonths":12}`,
		`{"document":"12345678","termMonths":12}`,
		`{"document":"12345678","amount":200000}`,
		`not json`,
	}
	for _, body := range cases {
		w := post(r, body)
		if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "VALIDATION_ERROR") {
			t.Errorf("%s: status = %d, body %s", body, w.Code, w.Body.String())
		}
	}
}

func TestHealth(t *testing.T) {
	r := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
