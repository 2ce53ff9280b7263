package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/praecolabs/praeco/internal/common"
	"github.com/praecolabs/praeco/internal/models"
)

// ErrTokenNotReady is returned while the user has not yet completed the
// authorization step at the provider.
var ErrTokenNotReady = errors.New("token not ready: authorization not completed")

// PipeboardClient talks to the pipeboard.co token provider, which brokers
// the Meta OAuth handshake and hands back finished access tokens.
type PipeboardClient struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	logger     arbor.ILogger
}

// NewPipeboardClient creates a provider client from configuration.
func NewPipeboardClient(config common.PipeboardConfig, logger arbor.ILogger) *PipeboardClient {
	return &PipeboardClient{
		baseURL:  config.BaseURL,
		apiToken: config.APIToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// InitiateAuth starts the Meta OAuth flow at the provider and returns the
// login URL the user must visit to authorize.
func (c *PipeboardClient) InitiateAuth(ctx context.Context) (string, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/api/meta/auth")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("auth flow request failed: HTTP %d: %s", status, string(body))
	}

	var result struct {
		LoginURL string `json:"loginUrl"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse auth flow response: %w", err)
	}
	if result.LoginURL == "" {
		return "", fmt.Errorf("auth flow response missing loginUrl")
	}

	return result.LoginURL, nil
}

// Token fetches the current Meta access token from the provider. Returns
// ErrTokenNotReady while the user has not completed authorization.
func (c *PipeboardClient) Token(ctx context.Context) (*models.Credential, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/api/meta/token")
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return nil, ErrTokenNotReady
	case status == http.StatusUnauthorized:
		return nil, fmt.Errorf("provider rejected API token: HTTP %d", status)
	case status != http.StatusOK:
		return nil, fmt.Errorf("token request failed: HTTP %d: %s", status, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresAt   string `json:"expires_at"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	cred := &models.Credential{
		Token:      result.AccessToken,
		Source:     models.CredentialSourceLive,
		ObtainedAt: time.Now(),
	}
	if result.ExpiresAt != "" {
		if t, err := parseExpiry(result.ExpiresAt); err == nil {
			cred.ExpiresAt = t
		} else if c.logger != nil {
			c.logger.Warn().Str("expires_at", result.ExpiresAt).Msg("Unparseable token expiry, assuming no expiry")
		}
	}

	return cred, nil
}

func (c *PipeboardClient) do(ctx context.Context, method, path string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read provider response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// parseExpiry accepts the RFC 3339 variants the provider emits
// ("2023-12-31T23:59:59.999Z" or with a numeric offset).
func parseExpiry(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized expiry format: %q", value)
}
