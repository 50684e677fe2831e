// Package authclient is the credit service's HTTP client for the auth
// service's internal user lookup.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mycompany/credit-platform/internal/common"
)

// User is the account summary served by the auth service.
type User struct {
	UserID   int64  `json:"userId"`
	Document string `json:"document"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Salary   int64  `json:"salary"`
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

// GetUser resolves a user by id. A missing user is ErrUserNotFound; any
// other non-200 answer is an internal failure.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	url := fmt.Sprintf("%s/api/auth/users/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("auth service request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service call: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		user := &User{}
		if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
			return nil, fmt.Errorf("auth service response: %w", err)
		}
		return user, nil
	case http.StatusNotFound:
		return nil, common.ErrUserNotFound
	default:
		return nil, fmt.Errorf("auth service: unexpected status %d", resp.StatusCode)
	}
}
