package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roamly/auth-service/pkg/email"
	"github.com/roamly/auth-service/pkg/password"
	"github.com/roamly/auth-service/pkg/sanitizer"
	"github.com/roamly/auth-service/pkg/token"
	"github.com/roamly/auth-service/pkg/user"
)

// Service orchestrates the credential lifecycle: registration, email
// verification, login, and password reset. It owns the state transitions on
// the user record; transport concerns (sessions, cookies, status codes)
// stay in the HTTP layer.
type Service struct {
	store    user.Store
	hasher   *password.Hasher
	tokens   *token.Issuer
	sender   email.EmailSender
	composer *email.Composer
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the auth flow controller.
func NewService(store user.Store, hasher *password.Hasher, tokens *token.Issuer, sender email.EmailSender, composer *email.Composer, opts ...Option) *Service {
	s := &Service{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		sender:   sender,
		composer: composer,
		log:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates an unverified account and sends the verification email.
// Email delivery is fire-and-forget: the record is already committed, so a
// delivery failure is logged and the registration still succeeds. Duplicate
// email or username surfaces as user.ErrDuplicate.
func (s *Service) Register(ctx context.Context, username, emailAddr, plaintext string) (*user.User, error) {
	username = sanitizer.NormalizeUsername(username)
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verification, err := s.tokens.IssueVerification()
	if err != nil {
		return nil, fmt.Errorf("issue verification token: %w", err)
	}

	u := &user.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        emailAddr,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	u.SetVerificationToken(verification.Value, verification.ExpiresAt)

	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendVerification(ctx, u)
	return u, nil
}

// VerifyEmail transitions an account to verified using a pending token.
// Expired or unknown tokens fail identically with ErrInvalidToken.
func (s *Service) VerifyEmail(ctx context.Context, tokenValue string) (*user.User, error) {
	u, err := s.store.ByVerificationToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup verification token: %w", err)
	}

	u.IsVerified = true
	u.ClearVerificationToken()

	if err := s.store.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save verified user: %w", err)
	}
	return u, nil
}

// ResendVerification reissues the verification token for an unverified
// account and sends a fresh email. The previous token stops working.
func (s *Service) ResendVerification(ctx context.Context, emailAddr string) error {
	u, err := s.store.ByEmail(ctx, sanitizer.NormalizeEmail(emailAddr))
	if err != nil {
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}

	verification, err := s.tokens.IssueVerification()
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}
	u.SetVerificationToken(verification.Value, verification.ExpiresAt)

	if err := s.store.Save(ctx, u); err != nil {
		return fmt.Errorf("save verification token: %w", err)
	}

	s.sendVerification(ctx, u)
	return nil
}

// Login checks the password against a verified account. Unknown email,
// unverified account, and wrong password are indistinguishable to the
// caller.
func (s *Service) Login(ctx context.Context, emailAddr, plaintext string) (*user.User, error) {
	u, err := s.store.ByEmail(ctx, sanitizer.NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !u.IsVerified {
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Verify(plaintext, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// ForgotPassword starts a password reset. The outcome is identical whether
// or not the email belongs to an account, so the endpoint leaks nothing
// about account existence. Store failures other than not-found still
// surface as errors.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	u, err := s.store.ByEmail(ctx, sanitizer.NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	reset, err := s.tokens.IssueReset()
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}
	u.SetResetToken(reset.Value, reset.ExpiresAt)

	if err := s.store.Save(ctx, u); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	msg, err := s.composer.PasswordReset(u.Email, u.Username, reset.Value)
	if err != nil {
		s.log.ErrorContext(ctx, "compose password reset email",
			slog.String("user_id", u.ID), slog.Any("error", err))
		return nil
	}
	if err := s.sender.SendEmail(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "send password reset email",
			slog.String("user_id", u.ID), slog.Any("error", err))
	}
	return nil
}

// ResetPassword replaces the password hash using a pending reset token and
// clears the token so it cannot be replayed.
func (s *Service) ResetPassword(ctx context.Context, tokenValue, newPlaintext string) (*user.User, error) {
	u, err := s.store.ByResetToken(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup reset token: %w", err)
	}

	hash, err := s.hasher.Hash(newPlaintext)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u.PasswordHash = hash
	u.ClearResetToken()

	if err := s.store.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("save new password: %w", err)
	}
	return u, nil
}

// ProfileUpdate carries the mutable profile fields. Only username and email
// can change through this path; nil means leave unchanged.
type ProfileUpdate struct {
	Username *string
	Email    *string
}

// UpdateProfile applies a whitelisted profile change. Duplicate email or
// username surfaces as user.ErrDuplicate.
func (s *Service) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*user.User, error) {
	u, err := s.store.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		u.Username = sanitizer.NormalizeUsername(*upd.Username)
	}
	if upd.Email != nil {
		u.Email = sanitizer.NormalizeEmail(*upd.Email)
	}

	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) sendVerification(ctx context.Context, u *user.User) {
	msg, err := s.composer.Verification(u.Email, u.Username, u.VerificationToken)
	if err != nil {
		s.log.ErrorContext(ctx, "compose verification email",
			slog.String("user_id", u.ID), slog.Any("error", err))
		return
	}
	if err := s.sender.SendEmail(ctx, msg); err != nil {
		s.log.ErrorContext(ctx, "send verification email",
			slog.String("user_id", u.ID), slog.Any("error", err))
	}
}
