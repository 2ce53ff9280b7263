package interfaces

import (
	"context"

	"github.com/praecolabs/praeco/internal/models"
)

// TokenManager owns the token lifecycle: resolving a usable access token on
// demand, checking validity, and driving the acquisition flow. Domain tools
// only ever see the token string it hands out.
type TokenManager interface {
	// GetAccessToken returns a usable token, acquiring one when none is held
	// or forceRefresh is set. In bypass mode it always returns the fixed
	// sentinel. It never returns an empty string without an error.
	GetAccessToken(ctx context.Context, forceRefresh bool) (string, error)

	// TestTokenValidity checks the given token (or the held one when empty)
	// against the API with a lightweight read. It never mutates the held
	// token value, only its known-validity flag.
	TestTokenValidity(ctx context.Context, token string) bool

	// InitiateAuthFlow starts the acquisition handshake with the token
	// provider, or reports its result if already complete.
	InitiateAuthFlow(ctx context.Context) (*models.AuthFlowResult, error)

	// InvalidateToken drops the held credential, forcing the next
	// GetAccessToken to acquire a fresh one.
	InvalidateToken()

	// BypassActive reports whether the manager is running in bypass mode.
	BypassActive() bool
}

// CredentialStorage persists the current credential so a restart does not
// force a fresh acquisition round-trip.
type CredentialStorage interface {
	Put(ctx context.Context, cred *models.Credential) error
	GetCurrent(ctx context.Context) (*models.Credential, error)
	Delete(ctx context.Context, id string) error
}
