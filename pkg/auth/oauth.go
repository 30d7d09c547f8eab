package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roamly/auth-service/pkg/password"
	"github.com/roamly/auth-service/pkg/sanitizer"
	"github.com/roamly/auth-service/pkg/user"
)

// ProviderProfile is the identity a federated provider attests to.
type ProviderProfile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
}

// ProviderAdapter wraps one OAuth provider. The core flow stays
// provider-agnostic; adapters own endpoints, scopes, and profile parsing.
type ProviderAdapter interface {
	// ProviderID returns the provider identifier, e.g. "google".
	ProviderID() string

	// AuthURL builds the provider authorization URL carrying the state.
	AuthURL(state string) string

	// ResolveProfile exchanges the authorization code for the user profile.
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

// StateStore persists OAuth state values for CSRF protection.
type StateStore interface {
	// Store records a state value until expiresAt.
	Store(ctx context.Context, state string, expiresAt time.Time) error

	// Consume atomically validates and removes a state value. It returns
	// ErrInvalidState when the state is unknown, expired, or already used.
	Consume(ctx context.Context, state string) error
}

// OAuthService runs the federated sign-in flow: issue an authorization URL
// with a one-time state, then resolve the callback into a local account.
type OAuthService struct {
	adapter ProviderAdapter
	states  StateStore
	store   user.Store
	hasher  *password.Hasher

	stateTTL     time.Duration
	verifiedOnly bool
	log          *slog.Logger
}

// OAuthOption configures an OAuthService.
type OAuthOption func(*OAuthService)

// WithOAuthLogger sets a custom logger for the service.
func WithOAuthLogger(log *slog.Logger) OAuthOption {
	return func(s *OAuthService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStateTTL overrides how long an issued state stays valid.
func WithStateTTL(ttl time.Duration) OAuthOption {
	return func(s *OAuthService) {
		if ttl > 0 {
			s.stateTTL = ttl
		}
	}
}

// WithVerifiedOnly controls whether provider profiles with unverified
// emails are rejected. On by default.
func WithVerifiedOnly(verifiedOnly bool) OAuthOption {
	return func(s *OAuthService) {
		s.verifiedOnly = verifiedOnly
	}
}

// NewOAuthService creates the federated sign-in flow.
func NewOAuthService(adapter ProviderAdapter, states StateStore, store user.Store, hasher *password.Hasher, opts ...OAuthOption) *OAuthService {
	s := &OAuthService{
		adapter:      adapter,
		states:       states,
		store:        store,
		hasher:       hasher,
		stateTTL:     10 * time.Minute,
		verifiedOnly: true,
		log:          slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// BeginURL issues a fresh one-time state and returns the provider
// authorization URL to redirect the user to.
func (s *OAuthService) BeginURL(ctx context.Context) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}
	if err := s.states.Store(ctx, state, time.Now().Add(s.stateTTL)); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}
	return s.adapter.AuthURL(state), nil
}

// Callback validates the state, resolves the provider profile, and finds or
// creates the matching local account. First-time sign-ins get a verified
// account with a random placeholder password, so the password login path
// exists but is not practically usable.
func (s *OAuthService) Callback(ctx context.Context, code, state string) (*user.User, error) {
	if err := s.states.Consume(ctx, state); err != nil {
		if errors.Is(err, ErrInvalidState) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("validate state: %w", err)
	}

	profile, err := s.adapter.ResolveProfile(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrProvider) {
			return nil, err
		}
		return nil, errors.Join(ErrProvider, err)
	}

	profile.Email = sanitizer.NormalizeEmail(profile.Email)
	if profile.Email == "" {
		return nil, errors.Join(ErrProvider, errors.New("provider returned no email"))
	}
	if s.verifiedOnly && !profile.EmailVerified {
		return nil, errors.Join(ErrProvider, errors.New("provider email not verified"))
	}

	u, err := s.store.ByEmail(ctx, profile.Email)
	if err == nil {
		// Provider attested the address, so a pending email verification
		// is satisfied by this sign-in.
		if !u.IsVerified {
			u.IsVerified = true
			u.ClearVerificationToken()
			if err := s.store.Save(ctx, u); err != nil {
				return nil, fmt.Errorf("save verified user: %w", err)
			}
		}
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return s.createFromProfile(ctx, profile)
}

func (s *OAuthService) createFromProfile(ctx context.Context, profile ProviderProfile) (*user.User, error) {
	placeholder, err := randomPlaceholderPassword()
	if err != nil {
		return nil, fmt.Errorf("generate placeholder password: %w", err)
	}
	hash, err := s.hasher.Hash(placeholder)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}

	base := usernameFromProfile(profile)

	// Retry with random suffixes when the derived username is taken.
	for attempt := 0; attempt < 5; attempt++ {
		username := base
		if attempt > 0 {
			username = fmt.Sprintf("%s_%s", base[:min(len(base), 21)], uuid.NewString()[:8])
		}

		u := &user.User{
			ID:           uuid.NewString(),
			Username:     username,
			Email:        profile.Email,
			PasswordHash: hash,
			IsVerified:   true,
			CreatedAt:    time.Now(),
		}

		err := s.store.Create(ctx, u)
		if err == nil {
			s.log.InfoContext(ctx, "created account from federated sign-in",
				slog.String("user_id", u.ID),
				slog.String("provider", s.adapter.ProviderID()),
			)
			return u, nil
		}
		if !errors.Is(err, user.ErrDuplicate) {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}
	return nil, fmt.Errorf("create user: %w", user.ErrDuplicate)
}

var usernameCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

// usernameFromProfile derives a handle from the provider name, falling back
// to the email local part, constrained to the username policy.
func usernameFromProfile(profile ProviderProfile) string {
	base := profile.Name
	if base == "" {
		base, _, _ = strings.Cut(profile.Email, "@")
	}
	base = usernameCharsRegex.ReplaceAllString(base, "_")
	base = strings.Trim(base, "_")

	if len(base) > 30 {
		base = base[:30]
	}
	if len(base) < 3 {
		base = "traveler_" + uuid.NewString()[:8]
	}
	return base
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// randomPlaceholderPassword returns 32 random bytes hex encoded. It is never
// shown to anyone, it only keeps the password column populated for accounts
// created through a provider.
func randomPlaceholderPassword() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
