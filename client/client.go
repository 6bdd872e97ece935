// Package client provides a typed Go SDK for the tenant administration REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Client is the top-level tenant administration API client.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string

	Auth          *AuthService
	Tenants       *TenantService
	Organizations *OrganizationService
	Users         *UserService
	Roles         *RoleService
	Privileges    *PrivilegeService
	LegalEntities *LegalEntityService
	Audit         *AuditService
	Bulk          *BulkService
	Reports       *ReportService
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token used for authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a client for the given base URL (e.g. "http://localhost:3030").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	c.Auth = &AuthService{c: c}
	c.Tenants = &TenantService{c: c}
	c.Organizations = &OrganizationService{c: c}
	c.Users = &UserService{c: c}
	c.Roles = &RoleService{c: c}
	c.Privileges = &PrivilegeService{c: c}
	c.LegalEntities = &LegalEntityService{c: c}
	c.Audit = &AuditService{c: c}
	c.Bulk = &BulkService{c: c}
	c.Reports = &ReportService{c: c}
	return c
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Health returns the liveness check response.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/api/v1/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do executes a JSON request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	respBody, _, err := c.send(ctx, method, path, bodyReader, contentType)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// send executes a request with a raw body and returns the raw response body
// and headers. Status codes of 400 and above become *APIError.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, nil, parseAPIError(resp.StatusCode, respBody)
	}

	return respBody, resp.Header, nil
}

// get is a convenience wrapper for GET requests with query parameters.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, http.MethodGet, withQuery(path, params), nil, result)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// put is a convenience wrapper for PUT requests.
func (c *Client) put(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// del is a convenience wrapper for DELETE requests.
func (c *Client) del(ctx context.Context, path string, params url.Values, result any) error {
	return c.do(ctx, http.MethodDelete, withQuery(path, params), nil, result)
}

func withQuery(path string, params url.Values) string {
	if len(params) > 0 {
		return path + "?" + params.Encode()
	}
	return path
}

// listParams encodes the search and status filters shared by list endpoints.
func listParams(opts *ListOptions) url.Values {
	params := url.Values{}
	if opts == nil {
		return params
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	return params
}

// listResponse is the envelope of every entity list endpoint.
type listResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
