// Package client talks to the account server's HTTP transport.
//
// Every call posts the action envelope to the server root and decodes the
// {success, user, error} reply. Failures reported by the server come back as
// *APIError, which matches ErrBadRequest, ErrUnauthorized, ErrNotFound,
// ErrConflict or ErrUnavailable under errors.Is. Transport failures match
// ErrUnavailable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Account is the public part of an account as returned by register and login.
type Account struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	Balance  int64  `json:"balance"`
}

// Profile is an account merged with its game statistics.
type Profile struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	Balance  int64  `json:"balance"`
	Kills    int64  `json:"kills"`
	Deaths   int64  `json:"deaths"`
	Wins     int64  `json:"wins"`
	Losses   int64  `json:"losses"`
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status"`
}

type request struct {
	Action   string `json:"action"`
	UserName string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	UserID   int64  `json:"userId,omitempty"`
}

type response struct {
	Success bool            `json:"success"`
	User    json.RawMessage `json:"user,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// HTTPClient is a client for the account server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Register(ctx context.Context, userName, password string) (*Account, error) {
	var a Account
	if err := c.call(ctx, request{Action: "register", UserName: userName, Password: password}, "", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) Login(ctx context.Context, userName, password string) (*Account, error) {
	var a Account
	if err := c.call(ctx, request{Action: "login", UserName: userName, Password: password}, "", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Profile fetches the profile of accountID. The id is sent in the body and
// in the X-User-Id header.
func (c *HTTPClient) Profile(ctx context.Context, accountID int64) (*Profile, error) {
	var p Profile
	if err := c.call(ctx, request{Action: "profile", UserID: accountID}, strconv.FormatInt(accountID, 10), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Health(ctx context.Context) (*Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
	}

	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &h, nil
}

func (c *HTTPClient) call(ctx context.Context, in request, userID string, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}

	body, status, err := c.do(req)
	if err != nil {
		return err
	}

	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		if status >= http.StatusBadRequest {
			return &APIError{StatusCode: status, Message: strings.TrimSpace(string(body))}
		}
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if status >= http.StatusBadRequest || !resp.Success {
		return &APIError{StatusCode: status, Message: resp.Error}
	}

	if err := json.Unmarshal(resp.User, out); err != nil {
		return fmt.Errorf("failed to parse user: %w", err)
	}
	return nil
}

func (c *HTTPClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
