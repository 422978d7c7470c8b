// Package directory is the HTTP client for the external user service, the
// black-box owner of user profiles. It exposes exactly the two operations
// the auth flows need: create a profile and look one up by email.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dkovalev2/authgate/internal/common"
	"github.com/dkovalev2/authgate/internal/server/models"
)

// Client talks to the user service at baseURL. Every call is bounded by the
// configured timeout so a stalled directory never blocks an auth request
// indefinitely.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
}

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUser asks the directory to create a profile. A (nil, nil) return
// means the directory refused creation (any non-201 status, e.g. duplicate
// email); only transport-level failures surface as errors.
func (c *Client) CreateUser(ctx context.Context, email, name string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(createUserRequest{Email: email, Name: name})
	if err != nil {
		return nil, fmt.Errorf("error encoding create request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error building create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, nil
	}

	user := &models.UserProfile{}
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
		return nil, fmt.Errorf("error decoding created user: %w", err)
	}

	return user, nil
}

// GetUserByEmail looks up a profile. Absent users are reported as
// common.ErrorNotFound; any other non-2xx response is an error.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/by-email/"+url.PathEscape(email), nil)
	if err != nil {
		return nil, fmt.Errorf("error building lookup request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.ErrorNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	// The directory answers a miss with a JSON null body as well.
	var user *models.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("error decoding user: %w", err)
	}
	if user == nil {
		return nil, common.ErrorNotFound
	}

	return user, nil
}
