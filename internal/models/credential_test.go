package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCredentialExpired(t *testing.T) {
	tests := []struct {
		name string
		cred *Credential
		want bool
	}{
		{
			name: "nil credential is expired",
			cred: nil,
			want: true,
		},
		{
			name: "empty token is expired",
			cred: &Credential{},
			want: true,
		},
		{
			name: "no expiry means not expired",
			cred: &Credential{Token: "tok", Source: CredentialSourceLive},
			want: false,
		},
		{
			name: "future expiry not expired",
			cred: &Credential{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)},
			want: false,
		},
		{
			name: "past expiry is expired",
			cred: &Credential{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cred.Expired())
		})
	}
}

func TestCredentialUsable(t *testing.T) {
	valid := true
	invalid := false

	assert.True(t, (&Credential{Token: "tok"}).Usable(), "unknown validity is usable")
	assert.True(t, (&Credential{Token: "tok", KnownValid: &valid}).Usable())
	assert.False(t, (&Credential{Token: "tok", KnownValid: &invalid}).Usable())
	assert.False(t, (&Credential{Token: "tok", ExpiresAt: time.Now().Add(-time.Second), KnownValid: &valid}).Usable(),
		"expired beats known-valid")
}
