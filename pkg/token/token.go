package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Length of the raw random token material in bytes. Hex encoding doubles it
// on the wire.
const tokenBytes = 32

// Lifetimes for the two opaque token kinds.
const (
	VerificationTTL = 24 * time.Hour
	ResetTTL        = time.Hour
)

// Token is an opaque single-purpose credential stored on the user record.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Issuer mints opaque random tokens from crypto/rand. It holds no state, so
// token generation never contends with request handling.
type Issuer struct{}

// NewIssuer creates a token issuer.
func NewIssuer() *Issuer {
	return &Issuer{}
}

// IssueVerification returns a fresh email verification token valid for 24h.
func (i *Issuer) IssueVerification() (Token, error) {
	return issue(VerificationTTL)
}

// IssueReset returns a fresh password reset token valid for 1h.
func (i *Issuer) IssueReset() (Token, error) {
	return issue(ResetTTL)
}

func issue(ttl time.Duration) (Token, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return Token{}, fmt.Errorf("failed to read random source: %w", err)
	}
	return Token{
		Value:     hex.EncodeToString(buf),
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}
