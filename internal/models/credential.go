package models

import (
	"time"
)

// CredentialSource identifies where an access token came from
type CredentialSource string

const (
	CredentialSourceLive   CredentialSource = "live"   // Issued by the token provider
	CredentialSourceBypass CredentialSource = "bypass" // Fixed sentinel, no network involved
)

// Credential represents one resolved access token and what we know about it.
// A credential is replaced on refresh, never mutated in place; the only field
// that may change after creation is KnownValid.
type Credential struct {
	ID         string           `json:"id"`
	Token      string           `json:"token"`
	Source     CredentialSource `json:"source"`
	ObtainedAt time.Time        `json:"obtained_at"`
	ExpiresAt  time.Time        `json:"expires_at,omitempty"` // Zero when the provider gave no expiry
	KnownValid *bool            `json:"known_valid,omitempty"`
	CreatedAt  int64            `json:"created_at"`
	UpdatedAt  int64            `json:"updated_at"`
}

// Expired reports whether the credential is past its expiry time.
// Credentials without an expiry are assumed valid until proven otherwise.
func (c *Credential) Expired() bool {
	if c == nil || c.Token == "" {
		return true
	}
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}

// Usable reports whether the credential can be handed to a caller.
func (c *Credential) Usable() bool {
	if c.Expired() {
		return false
	}
	return c.KnownValid == nil || *c.KnownValid
}

// AuthStatus is the state of an authentication flow
type AuthStatus string

const (
	AuthStatusAuthenticated AuthStatus = "authenticated" // Terminal: token available
	AuthStatusPending       AuthStatus = "pending"       // Waiting on user authorization
	AuthStatusFailed        AuthStatus = "failed"        // Terminal: flow cannot complete
)

// AuthFlowResult is the outcome of initiating an authentication flow.
// The bypass path produces the same shape as a live success so callers
// never special-case it.
type AuthFlowResult struct {
	Status   AuthStatus `json:"status"`
	Token    string     `json:"token,omitempty"`
	LoginURL string     `json:"login_url,omitempty"`
	Detail   string     `json:"detail,omitempty"`
}
