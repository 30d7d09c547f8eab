package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSecretLength = 32

// Claims is the session credential payload: the user id as subject plus a
// per-issuance random session identifier. Sessions are stateless; the
// signature and expiry are the only trust mechanism.
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed session credentials.
type Manager struct {
	secret []byte
	ttl    time.Duration
	cfg    Config
}

// NewManager creates a session manager from config. The signing secret must
// be at least 32 bytes for HMAC-SHA256.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < minSecretLength {
		return nil, fmt.Errorf("%w: need at least %d chars", ErrSecretTooShort, minSecretLength)
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		cfg:    cfg,
	}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session credential for the given user id.
func (m *Manager) Issue(userID string) (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate session nonce: %w", err)
	}

	now := time.Now()
	claims := Claims{
		SessionID: hex.EncodeToString(nonce),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session credential: %w", err)
	}
	return signed, nil
}

// Parse verifies a session credential and returns its claims. Expired or
// tampered tokens return ErrInvalidSession.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// Collapse every parse failure into one error so callers cannot
		// distinguish expiry from tampering.
		return nil, errors.Join(ErrInvalidSession, err)
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, ErrInvalidSession
	}
	return &claims, nil
}
