// Package transport provides the authenticated HTTP client shared by the
// source-system API wrappers, plus the response helpers for body decoding
// and the pagination and rate-limit headers the wrappers depend on.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/timesync/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = 30 * time.Second

// Client provides HTTP client functionality with authentication.
type Client struct {
	http    *http.Client
	auth    Authenticator
	system  string
	baseURL string
}

// New creates a transport client for one external system. The system
// name tags errors; baseURL is prefixed to relative request paths.
func New(system, baseURL string, auth Authenticator) *Client {
	return &Client{
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		auth:    auth,
		system:  system,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// System returns the system name this client is bound to.
func (c *Client) System() string {
	return c.system
}

// URL joins a relative path onto the client's base URL.
func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// Do performs an HTTP request with authentication and common headers
// applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	c.auth.Apply(req)

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapAPI(c.system, 0, err)
	}
	return resp, nil
}

// Get performs a GET request against a relative path with optional query
// parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	target := c.URL(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.WrapAPI(c.system, 0, err)
	}
	return c.Do(req)
}

// Patch performs a PATCH request with a JSON body against a relative path.
func (c *Client) Patch(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.URL(path), body)
	if err != nil {
		return nil, errors.WrapAPI(c.system, 0, err)
	}
	return c.Do(req)
}

// Post performs a POST request with a JSON body against a relative path.
func (c *Client) Post(ctx context.Context, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), body)
	if err != nil {
		return nil, errors.WrapAPI(c.system, 0, err)
	}
	return c.Do(req)
}

// PageCountHeader reads a page-count response header as an integer,
// defaulting to 1 when absent so a headerless response still yields one
// fetch pass.
func PageCountHeader(resp *http.Response, header string) int {
	raw := resp.Header.Get(header)
	if raw == "" {
		return 1
	}
	pages, err := strconv.Atoi(raw)
	if err != nil || pages < 1 {
		return 1
	}
	return pages
}

// RateRemainingHeader reads a remaining-quota response header. The second
// return value is false when the header is absent or non-numeric.
func RateRemainingHeader(resp *http.Response, header string) (int, bool) {
	raw := resp.Header.Get(header)
	if raw == "" {
		return 0, false
	}
	remaining, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return remaining, true
}
