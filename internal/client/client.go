// ABOUTME: HTTP client for the retail sales-management API
// ABOUTME: Wraps API calls with cookie credentials and error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the HTTP client timeout when none is configured.
const DefaultTimeout = 30 * time.Second

// Client is the API client for the sales-management backend.
// Authentication travels in an HTTP-only cookie managed by the jar;
// the client never attaches a bearer header itself.
type Client struct {
	baseURL    string
	adminKey   string
	httpClient *http.Client
}

// New creates a new API client with the given base URL and admin key.
func New(baseURL, adminKey string) *Client {
	return NewWithTimeout(baseURL, adminKey, DefaultTimeout)
}

// NewWithTimeout creates a new API client with an explicit HTTP timeout.
func NewWithTimeout(baseURL, adminKey string, timeout time.Duration) *Client {
	// cookiejar.New only fails on invalid options; none are passed.
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		adminKey: adminKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cookies returns the session cookies the backend set for its host, so
// callers can persist them across program invocations.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil || c.httpClient.Jar == nil {
		return nil
	}
	return c.httpClient.Jar.Cookies(u)
}

// SetCookies installs previously persisted session cookies into the jar,
// restoring the backend session in a fresh process.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 || c.httpClient.Jar == nil {
		return
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	c.httpClient.Jar.SetCookies(u, cookies)
}

// APIError is a structured rejection from the backend (4xx/5xx with a
// message body). Message is surfaced verbatim to the UI layer.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// errorResponse is the backend's error envelope. The message field may be
// a plain string or an array of validation messages.
type errorResponse struct {
	Message flexMessage `json:"message"`
	Error   string      `json:"error"`
}

type flexMessage string

func (m *flexMessage) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = flexMessage(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = flexMessage(strings.Join(list, "; "))
		return nil
	}
	// Unknown shape, leave empty and let the status-code fallback apply.
	*m = ""
	return nil
}

// do performs a JSON request against the backend and decodes the response
// into out (skipped when out is nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.adminKey != "" {
		req.Header.Set("x-admin-key", c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses into an *APIError
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		if errResp.Message != "" {
			apiErr.Message = string(errResp.Message)
		} else if errResp.Error != "" {
			apiErr.Message = errResp.Error
		}
	}

	return apiErr
}
