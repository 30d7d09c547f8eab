package token_test

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/auth-service/pkg/token"
)

func TestIssuer_IssueVerification(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer()

	tok, err := issuer.IssueVerification()
	require.NoError(t, err)

	// 32 random bytes, hex-encoded.
	assert.Len(t, tok.Value, 64)
	_, err = hex.DecodeString(tok.Value)
	assert.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(token.VerificationTTL), tok.ExpiresAt, time.Minute)
}

func TestIssuer_IssueReset(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer()

	tok, err := issuer.IssueReset()
	require.NoError(t, err)

	assert.Len(t, tok.Value, 64)
	assert.WithinDuration(t, time.Now().Add(token.ResetTTL), tok.ExpiresAt, time.Minute)
}

func TestIssuer_TokensAreUnique(t *testing.T) {
	t.Parallel()

	issuer := token.NewIssuer()
	seen := make(map[string]bool)

	for range 100 {
		tok, err := issuer.IssueVerification()
		require.NoError(t, err)
		assert.False(t, seen[tok.Value], "duplicate token issued")
		seen[tok.Value] = true
	}
}
