// Package auth owns the access token lifecycle: resolving a usable token on
// demand, validity probing, the provider acquisition flow, and a bypass mode
// that issues a fixed sentinel for environments without live credentials.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/praecolabs/praeco/internal/common"
	"github.com/praecolabs/praeco/internal/interfaces"
	"github.com/praecolabs/praeco/internal/models"
)

// BypassToken is the fixed sentinel credential issued in bypass mode.
const BypassToken = "MOCK_ACCESS_TOKEN_BYPASS_12345"

// AuthError indicates no usable token could be obtained.
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Service is the token lifecycle manager. It holds the one piece of
// process-wide mutable state: the current credential. Refresh replaces the
// credential; concurrent refreshes collapse into a single provider call.
type Service struct {
	provider  *PipeboardClient
	storage   interfaces.CredentialStorage
	logger    arbor.ILogger
	bypass    bool
	graphBase string // e.g. "https://graph.facebook.com/v20.0", for validity probes

	httpClient *http.Client

	mu      sync.Mutex
	current *models.Credential
	flight  singleflight.Group
}

// NewService creates the token lifecycle manager. Bypass mode is selected by
// the absence of a provider API token in the configuration. storage may be
// nil, in which case credentials live only in memory.
func NewService(config *common.Config, storage interfaces.CredentialStorage, logger arbor.ILogger) *Service {
	s := &Service{
		storage:   storage,
		logger:    logger,
		bypass:    config.BypassActive(),
		graphBase: strings.TrimRight(config.Graph.BaseURL, "/") + "/" + config.Graph.APIVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if s.bypass {
		logger.Info().Msg("No provider API token configured, token bypass mode active")
		s.current = &models.Credential{
			ID:         "bypass",
			Token:      BypassToken,
			Source:     models.CredentialSourceBypass,
			ObtainedAt: time.Now(),
		}
		return s
	}

	s.provider = NewPipeboardClient(config.Pipeboard, logger)
	s.loadCachedCredential()

	return s
}

func (s *Service) loadCachedCredential() {
	if s.storage == nil {
		return
	}

	cred, err := s.storage.GetCurrent(context.Background())
	if err != nil {
		s.logger.Debug().Err(err).Msg("No cached credential loaded")
		return
	}
	if cred == nil || cred.Source != models.CredentialSourceLive {
		return
	}
	if cred.Expired() {
		s.logger.Info().Msg("Cached credential is expired, ignoring")
		return
	}

	s.current = cred
	s.logger.Info().Str("token", maskToken(cred.Token)).Msg("Loaded cached credential")
}

// BypassActive reports whether the manager is running in bypass mode.
func (s *Service) BypassActive() bool {
	return s.bypass
}

// GetAccessToken returns a usable access token. In bypass mode it always
// returns the sentinel, regardless of forceRefresh. Otherwise a held usable
// token is returned unchanged unless forceRefresh is set; acquisition runs
// behind a single-flight guard so concurrent refreshes share one round-trip.
func (s *Service) GetAccessToken(ctx context.Context, forceRefresh bool) (string, error) {
	if s.bypass {
		return BypassToken, nil
	}

	// Usable reads KnownValid, which TestTokenValidity may flip; snapshot
	// it under the lock
	s.mu.Lock()
	held := s.current
	heldUsable := held != nil && held.Usable()
	s.mu.Unlock()

	if !forceRefresh && heldUsable {
		return held.Token, nil
	}

	v, err, _ := s.flight.Do("acquire", func() (interface{}, error) {
		return s.acquire(ctx)
	})
	if err != nil {
		// A prior token, even one we were asked to refresh past, beats
		// returning nothing
		if held != nil && !held.Expired() {
			s.logger.Warn().Err(err).Msg("Token refresh failed, falling back to held token")
			return held.Token, nil
		}
		return "", err
	}

	return v.(*models.Credential).Token, nil
}

func (s *Service) acquire(ctx context.Context) (*models.Credential, error) {
	cred, err := s.provider.Token(ctx)
	if err != nil {
		if err == ErrTokenNotReady {
			return nil, &AuthError{Reason: "authorization not completed, run the authenticate tool or --login", Err: err}
		}
		return nil, &AuthError{Reason: "token acquisition failed", Err: err}
	}

	s.mu.Lock()
	s.current = cred
	s.mu.Unlock()

	if s.storage != nil {
		if err := s.storage.Put(ctx, cred); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to cache credential")
		}
	}

	s.logger.Info().Str("token", maskToken(cred.Token)).Msg("Acquired access token")
	return cred, nil
}

// TestTokenValidity probes the Graph API /me endpoint with the given token,
// or the held one when token is empty. It only ever flips the held
// credential's known-validity flag; the token value is never touched.
// In bypass mode it reports true without any network call.
func (s *Service) TestTokenValidity(ctx context.Context, token string) bool {
	if s.bypass {
		return true
	}

	s.mu.Lock()
	held := s.current
	s.mu.Unlock()

	if token == "" {
		if held == nil {
			return false
		}
		token = held.Token
	}

	valid := s.probe(ctx, token)

	if held != nil && held.Token == token {
		s.mu.Lock()
		held.KnownValid = &valid
		s.mu.Unlock()
	}

	return valid
}

func (s *Service) probe(ctx context.Context, token string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.graphBase+"/me", nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Token validity probe failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Debug().Int("status", resp.StatusCode).Msg("Token validity probe rejected")
		return false
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false
	}
	return true
}

// InitiateAuthFlow starts the acquisition handshake, or reports the finished
// result when a token is already available. In bypass mode it returns an
// authenticated result with the sentinel and no side effects, shaped exactly
// like a live success.
func (s *Service) InitiateAuthFlow(ctx context.Context) (*models.AuthFlowResult, error) {
	if s.bypass {
		return &models.AuthFlowResult{
			Status: models.AuthStatusAuthenticated,
			Token:  BypassToken,
		}, nil
	}

	s.mu.Lock()
	held := s.current
	heldUsable := held != nil && held.Usable()
	s.mu.Unlock()

	if heldUsable {
		return &models.AuthFlowResult{
			Status: models.AuthStatusAuthenticated,
			Token:  held.Token,
			Detail: "already authenticated",
		}, nil
	}

	loginURL, err := s.provider.InitiateAuth(ctx)
	if err != nil {
		return nil, &AuthError{Reason: "could not start auth flow", Err: err}
	}

	// The handshake may already be complete from a previous visit
	if cred, err := s.provider.Token(ctx); err == nil {
		s.mu.Lock()
		s.current = cred
		s.mu.Unlock()
		if s.storage != nil {
			if err := s.storage.Put(ctx, cred); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to cache credential")
			}
		}
		return &models.AuthFlowResult{
			Status: models.AuthStatusAuthenticated,
			Token:  cred.Token,
		}, nil
	}

	return &models.AuthFlowResult{
		Status:   models.AuthStatusPending,
		LoginURL: loginURL,
		Detail:   "visit the login URL to authorize, then retry",
	}, nil
}

// AwaitAuthorization polls the provider until a token is issued or the
// context expires. Used by the interactive --login path.
func (s *Service) AwaitAuthorization(ctx context.Context, interval time.Duration) (string, error) {
	if s.bypass {
		return BypassToken, nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		cred, err := s.provider.Token(ctx)
		if err == nil {
			s.mu.Lock()
			s.current = cred
			s.mu.Unlock()
			if s.storage != nil {
				if err := s.storage.Put(ctx, cred); err != nil {
					s.logger.Warn().Err(err).Msg("Failed to cache credential")
				}
			}
			return cred.Token, nil
		}
		if err != ErrTokenNotReady {
			return "", err
		}

		select {
		case <-ctx.Done():
			return "", &AuthError{Reason: "authorization timed out", Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

// InvalidateToken drops the held credential. The next GetAccessToken call
// will acquire a fresh one. No-op in bypass mode.
func (s *Service) InvalidateToken() {
	if s.bypass {
		return
	}

	s.mu.Lock()
	dropped := s.current
	s.current = nil
	s.mu.Unlock()

	if dropped != nil {
		s.logger.Info().Str("token", maskToken(dropped.Token)).Msg("Invalidated access token")
		if s.storage != nil && dropped.ID != "" {
			if err := s.storage.Delete(context.Background(), dropped.ID); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to remove cached credential")
			}
		}
	}
}

// Token implements oauth2.TokenSource so the Graph client can fall back to
// the lifecycle manager when a call arrives without an explicit token.
func (s *Service) Token() (*oauth2.Token, error) {
	tok, err := s.GetAccessToken(context.Background(), false)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: tok}, nil
}

// maskToken renders a token for logs without exposing it.
func maskToken(token string) string {
	if len(token) <= 12 {
		return "***"
	}
	return token[:8] + "..." + token[len(token)-4:]
}
