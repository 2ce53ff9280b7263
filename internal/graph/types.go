// Package graph provides a client for the Meta Graph API.
// This package centralizes all Graph API interactions for the application.
package graph

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// authErrorCodes are Graph API error codes that indicate the access token
// is no longer usable (expired, revoked, insufficient permission scope).
var authErrorCodes = map[int]bool{
	190: true, // Access token invalid or expired
	102: true, // API session issue
	4:   true, // Application request limit / token level throttling
	200: true, // Permission error
	10:  true, // Permission denied
}

// GraphError is the structured error body the Graph API returns alongside
// a non-success status.
type GraphError struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Code      int    `json:"code"`
	Subcode   int    `json:"error_subcode,omitempty"`
	FBTraceID string `json:"fbtrace_id,omitempty"`
}

// APIError represents a non-2xx response from the Graph API.
type APIError struct {
	StatusCode int
	Endpoint   string
	Graph      *GraphError            // Parsed Graph error body, when present
	Body       map[string]interface{} // Raw decoded body for diagnostics
	ParamsSent map[string]interface{} // Params that were on the wire, token redacted
}

func (e *APIError) Error() string {
	if e.Graph != nil {
		return fmt.Sprintf("graph API error: %s (status: %d, code: %d, endpoint: %s)",
			e.Graph.Message, e.StatusCode, e.Graph.Code, e.Endpoint)
	}
	return fmt.Sprintf("graph API error: HTTP %d (endpoint: %s)", e.StatusCode, e.Endpoint)
}

// IsAuthError reports whether the failure indicates an unusable token
// rather than a request-level problem.
func (e *APIError) IsAuthError() bool {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return true
	}
	return e.Graph != nil && authErrorCodes[e.Graph.Code]
}

// TransportError represents a network-level failure reaching the API
// (connection refused, DNS failure, timeout).
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graph API transport error (endpoint: %s): %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError represents a 2xx response whose body could not be parsed.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("graph API decode error (endpoint: %s): %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (used by tests to point at a fake API).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIVersion sets the Graph API version segment (e.g. "v20.0").
func WithAPIVersion(version string) ClientOption {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets a custom rate limit.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTokenSource sets a fallback token source consulted when a call is
// made with an empty token.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithInvalidator registers a callback fired when the API reports an
// auth-class error, so the token lifecycle manager can drop its credential.
func WithInvalidator(fn func()) ClientOption {
	return func(c *Client) {
		c.invalidate = fn
	}
}
