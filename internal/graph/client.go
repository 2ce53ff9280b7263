package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the Meta Graph API.
	DefaultBaseURL = "https://graph.facebook.com"

	// DefaultAPIVersion is the Graph API version used when none is configured.
	DefaultAPIVersion = "v20.0"

	// DefaultTimeout is the default HTTP timeout per call.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 10

	userAgent = "praeco/1.0"
)

// Client is a Meta Graph API client. It executes one logical operation per
// call and performs no retries and no pagination; callers that need another
// page issue a follow-up call with the API's cursor in the params.
type Client struct {
	baseURL    string
	apiVersion string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	tokens     oauth2.TokenSource
	invalidate func()
}

// NewClient creates a new Graph API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiVersion: DefaultAPIVersion,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Execute performs one Graph API operation against the resource at endpoint.
// For GET the params are encoded as a query string; for POST and DELETE they
// are sent as a form body. The token is attached as a bearer credential on
// every request. Structured param values are JSON-string encoded (see Params).
func (c *Client) Execute(ctx context.Context, method, endpoint, token string, params Params) (map[string]interface{}, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	if token == "" && c.tokens != nil {
		t, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token: %w", err)
		}
		token = t.AccessToken
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	values, err := params.Encode()
	if err != nil {
		return nil, err
	}
	values.Set("access_token", token)

	reqURL := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.baseURL, "/"), c.apiVersion, strings.TrimLeft(endpoint, "/"))

	var req *http.Request
	if method == http.MethodGet {
		req, err = http.NewRequestWithContext(ctx, method, reqURL+"?"+values.Encode(), nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, reqURL, strings.NewReader(values.Encode()))
		if req != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	requestID := uuid.NewString()
	if c.logger != nil {
		c.logger.Debug().
			Str("request_id", requestID).
			Str("method", method).
			Str("endpoint", endpoint).
			Str("params", maskedQuery(values)).
			Msg("Graph API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.buildAPIError(resp.StatusCode, endpoint, body)
		apiErr.ParamsSent = params.Redacted()
		if c.logger != nil {
			c.logger.Warn().
				Str("request_id", requestID).
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Msg("Graph API request failed")
		}
		if apiErr.IsAuthError() && c.invalidate != nil {
			c.invalidate()
		}
		return nil, apiErr
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}

	return result, nil
}

func (c *Client) buildAPIError(status int, endpoint string, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Endpoint:   endpoint,
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		apiErr.Body = map[string]interface{}{"text": string(body)}
		return apiErr
	}
	apiErr.Body = decoded

	// The Graph API wraps its structured error under an "error" key
	if raw, ok := decoded["error"]; ok {
		data, err := json.Marshal(raw)
		if err == nil {
			var ge GraphError
			if err := json.Unmarshal(data, &ge); err == nil {
				apiErr.Graph = &ge
			}
		}
	}

	return apiErr
}

// maskedQuery renders params for logging with the token redacted.
func maskedQuery(values url.Values) string {
	masked := url.Values{}
	for k, vs := range values {
		if k == "access_token" {
			masked.Set(k, "***TOKEN***")
			continue
		}
		for _, v := range vs {
			masked.Add(k, v)
		}
	}
	return masked.Encode()
}
