// Package riskclient is the credit service's HTTP client for the risk
// evaluation service.
package riskclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type EvaluationRequest struct {
	Document   string `json:"document"`
	Amount     int64  `json:"amount"`
	TermMonths int    `json:"termMonths"`
}

type Evaluation struct {
	Document    string    `json:"document"`
	Score       int       `json:"score"`
	RiskLevel   string    `json:"riskLevel"`
	EvaluatedAt time.Time `json:"evaluatedAt"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Evaluate submits the applicant document and loan shape for scoring.
func (c *Client) Evaluate(ctx context.Context, in EvaluationRequest) (*Evaluation, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("risk service request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/risk-evaluation", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("risk service request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("risk service call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("risk service: unexpected status %d", resp.StatusCode)
	}

	eval := &Evaluation{}
	if err := json.NewDecoder(resp.Body).Decode(eval); err != nil {
		return nil, fmt.Errorf("risk service response: %w", err)
	}
	return eval, nil
}
