// Package client is a Go client library for the catalog API.  Client wraps
// the HTTP surface, Feed implements fetch-and-accumulate pagination for an
// infinite-scroll view, EntryCache holds the fetched entries keyed by id and
// Filter/Debouncer provide the local search over them.  The package talks
// JSON to the same routes the browser client uses and shares the server's
// validation rules, so a bad payload is rejected before it ever leaves the
// process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/iliyamo/media-catalog/internal/model"
	"github.com/iliyamo/media-catalog/internal/validator"
)

// APIError carries the HTTP status and the server's decoded error detail
// (either a plain string or a list of field issues).
type APIError struct {
	Status int
	Detail json.RawMessage
}

func (e *APIError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// ValidationError is returned when a payload fails the shared entry rules
// before a request is sent.
type ValidationError struct {
	Issues []validator.Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = is.Field + ": " + is.Message
	}
	return "invalid entry: " + strings.Join(msgs, "; ")
}

// Client calls the catalog API.  The underlying http.Client keeps a cookie
// jar so the session cookies set by register/login are sent on later
// requests.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a Client for the given base URL (e.g. "http://localhost:4000").
func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second, Jar: jar},
	}
}

// ListEntries fetches one page of the catalog.
func (c *Client) ListEntries(ctx context.Context, page, limit int) (model.EntryPage, error) {
	var out model.EntryPage
	url := fmt.Sprintf("%s/api/entries?page=%d&limit=%d", c.BaseURL, page, limit)
	err := c.do(ctx, http.MethodGet, url, nil, &out)
	return out, err
}

// CreateEntry validates the payload locally and posts it.  The server's
// created entry, id and timestamp included, comes back.
func (c *Client) CreateEntry(ctx context.Context, in validator.EntryInput) (model.Entry, error) {
	if issues := validator.ValidateCreate(in); len(issues) > 0 {
		return model.Entry{}, &ValidationError{Issues: issues}
	}
	var out model.Entry
	err := c.do(ctx, http.MethodPost, c.BaseURL+"/api/entries", in, &out)
	return out, err
}

// UpdateEntry validates the partial payload locally and sends it.  Only the
// fields set in the input change.
func (c *Client) UpdateEntry(ctx context.Context, id uint64, in validator.EntryInput) (model.Entry, error) {
	if issues := validator.ValidateUpdate(in); len(issues) > 0 {
		return model.Entry{}, &ValidationError{Issues: issues}
	}
	var out model.Entry
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/api/entries/%d", c.BaseURL, id), in, &out)
	return out, err
}

// DeleteEntry removes an entry by id.
func (c *Client) DeleteEntry(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/api/entries/%d", c.BaseURL, id), nil, nil)
}

// Account is the profile shape the auth endpoints return.
type Account struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Register creates an account and stores the session cookies in the jar.
func (c *Client) Register(ctx context.Context, email, password, name string) (Account, error) {
	var out Account
	body := map[string]string{"email": email, "password": password, "name": name}
	err := c.do(ctx, http.MethodPost, c.BaseURL+"/api/auth/register", body, &out)
	return out, err
}

// Login starts a session and stores the session cookies in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (Account, error) {
	var out Account
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, c.BaseURL+"/api/auth/login", body, &out)
	return out, err
}

// Refresh exchanges the refresh cookie for a new access cookie.
func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.BaseURL+"/api/auth/refresh", nil, nil)
}

// Logout clears the session cookies.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, c.BaseURL+"/api/auth/logout", nil, nil)
}

// do sends the request and decodes the response into out (when non-nil).
// Non-2xx statuses become an *APIError carrying the server's error body.
func (c *Client) do(ctx context.Context, method, url string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error json.RawMessage `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Detail = errBody.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
