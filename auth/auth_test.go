package auth

import (
	"testing"
	"time"

	errs "chat-relay/errors"

	"github.com/stretchr/testify/require"
)

func newTestGate(secret string, duration time.Duration) *Gate {
	return NewGate(Config{Secret: []byte(secret), TokenDuration: duration})
}

func TestAuthenticate_Valid_Token(t *testing.T) {
	req := require.New(t)
	gate := newTestGate("test_secret_for_this_run_only", time.Hour)

	// Given a token minted for alice
	token, err := gate.GenerateToken("u-1", "alice")
	req.NoError(err)

	// When the connection presents it
	identity, err := gate.Authenticate("Bearer " + token)

	// Then the decoded identity matches the claims
	req.NoError(err)
	req.Equal("u-1", identity.ID)
	req.Equal("alice", identity.Username)
}

func TestAuthenticate_Missing_Credential(t *testing.T) {
	req := require.New(t)
	gate := newTestGate("test_secret_for_this_run_only", time.Hour)

	_, err := gate.Authenticate("")
	req.ErrorIs(err, errs.ErrMissingCredential)

	// A bare "Bearer " prefix carries no credential either
	_, err = gate.Authenticate("Bearer ")
	req.ErrorIs(err, errs.ErrMissingCredential)
}

func TestAuthenticate_Invalid_Credential(t *testing.T) {
	gate := newTestGate("test_secret_for_this_run_only", time.Hour)

	tests := []struct {
		name string
		raw  string
	}{
		{"Garbage", "not-a-jwt"},
		{"Wrong signature", mustToken(t, newTestGate("a_completely_different_secret", time.Hour), "u-1", "alice")},
		{"Expired", mustToken(t, newTestGate("test_secret_for_this_run_only", -time.Minute), "u-1", "alice")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gate.Authenticate(tt.raw)
			require.ErrorIs(t, err, errs.ErrInvalidCredential)
		})
	}
}

func mustToken(t *testing.T, gate *Gate, userID, username string) string {
	t.Helper()
	token, err := gate.GenerateToken(userID, username)
	require.NoError(t, err)
	return token
}
