package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/auth-service/pkg/auth"
	"github.com/roamly/auth-service/pkg/email"
	"github.com/roamly/auth-service/pkg/password"
	"github.com/roamly/auth-service/pkg/token"
	"github.com/roamly/auth-service/pkg/user"
)

type captureSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	fail bool
}

func (c *captureSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return email.ErrFailedToSendEmail
	}
	c.sent = append(c.sent, params)
	return nil
}

func (c *captureSender) last() email.SendEmailParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sent[len(c.sent)-1]
}

func (c *captureSender) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

func newTestService(t *testing.T) (*auth.Service, *user.MemoryStore, *captureSender) {
	t.Helper()

	store := user.NewMemoryStore()
	sender := &captureSender{}
	svc := auth.NewService(
		store,
		password.New(password.WithCost(4)),
		token.NewIssuer(),
		sender,
		email.NewComposer("Roamly", "https://app.roamly.example"),
	)
	return svc, store, sender
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates unverified account with pending token", func(t *testing.T) {
		t.Parallel()

		svc, store, sender := newTestService(t)

		u, err := svc.Register(ctx, "alice", "  Alice@X.com ", "Str0ng!Pass")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "alice@x.com", u.Email, "email is normalized")
		assert.False(t, u.IsVerified)
		assert.NotEmpty(t, u.VerificationToken)
		require.NotNil(t, u.VerificationExpires)
		assert.NotEqual(t, "Str0ng!Pass", u.PasswordHash)

		stored, err := store.ByEmail(ctx, "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, stored.ID)

		require.Equal(t, 1, sender.count())
		msg := sender.last()
		assert.Equal(t, "alice@x.com", msg.SendTo)
		assert.Contains(t, msg.BodyHTML, u.VerificationToken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)

		_, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "bob", "alice@x.com", "Str0ng!Pass")
		assert.ErrorIs(t, err, user.ErrDuplicate)
	})

	t.Run("email failure does not fail registration", func(t *testing.T) {
		t.Parallel()

		svc, store, sender := newTestService(t)
		sender.fail = true

		u, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		_, err = store.ByID(ctx, u.ID)
		assert.NoError(t, err)
	})
}

func TestService_VerifyEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("valid token verifies and clears", func(t *testing.T) {
		t.Parallel()

		svc, store, _ := newTestService(t)

		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		u, err := svc.VerifyEmail(ctx, registered.VerificationToken)
		require.NoError(t, err)
		assert.True(t, u.IsVerified)
		assert.Empty(t, u.VerificationToken)
		assert.Nil(t, u.VerificationExpires)

		stored, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsVerified)
	})

	t.Run("token cannot be replayed", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)

		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		_, err = svc.VerifyEmail(ctx, registered.VerificationToken)
		require.NoError(t, err)

		_, err = svc.VerifyEmail(ctx, registered.VerificationToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		_, err := svc.VerifyEmail(ctx, "nope")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestService_ResendVerification(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("reissues token and invalidates the old one", func(t *testing.T) {
		t.Parallel()

		svc, store, sender := newTestService(t)

		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)
		oldToken := registered.VerificationToken

		require.NoError(t, svc.ResendVerification(ctx, "alice@x.com"))
		assert.Equal(t, 2, sender.count())

		stored, err := store.ByID(ctx, registered.ID)
		require.NoError(t, err)
		assert.NotEqual(t, oldToken, stored.VerificationToken)

		_, err = svc.VerifyEmail(ctx, oldToken)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)

		_, err = svc.VerifyEmail(ctx, stored.VerificationToken)
		assert.NoError(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		err := svc.ResendVerification(ctx, "ghost@x.com")
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("already verified", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)

		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)
		_, err = svc.VerifyEmail(ctx, registered.VerificationToken)
		require.NoError(t, err)

		err = svc.ResendVerification(ctx, "alice@x.com")
		assert.ErrorIs(t, err, auth.ErrAlreadyVerified)
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	register := func(t *testing.T, svc *auth.Service, verify bool) *user.User {
		t.Helper()
		u, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)
		if verify {
			u, err = svc.VerifyEmail(ctx, u.VerificationToken)
			require.NoError(t, err)
		}
		return u
	}

	t.Run("verified account with correct password", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		registered := register(t, svc, true)

		u, err := svc.Login(ctx, "Alice@X.com", "Str0ng!Pass")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
	})

	t.Run("failure causes are indistinguishable", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			verify   bool
			email    string
			password string
		}{
			{name: "unknown email", verify: true, email: "ghost@x.com", password: "Str0ng!Pass"},
			{name: "wrong password", verify: true, email: "alice@x.com", password: "Wr0ng!Pass"},
			{name: "unverified account", verify: false, email: "alice@x.com", password: "Str0ng!Pass"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				svc, _, _ := newTestService(t)
				register(t, svc, tt.verify)

				_, err := svc.Login(ctx, tt.email, tt.password)
				assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
			})
		}
	})
}

func TestService_ForgotPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sets reset token and sends email", func(t *testing.T) {
		t.Parallel()

		svc, store, sender := newTestService(t)

		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		require.NoError(t, svc.ForgotPassword(ctx, "alice@x.com"))

		stored, err := store.ByID(ctx, registered.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ResetToken)
		require.NotNil(t, stored.ResetExpires)

		msg := sender.last()
		assert.Equal(t, "password-reset", msg.Tag)
		assert.Contains(t, msg.BodyHTML, stored.ResetToken)
	})

	t.Run("unknown email behaves identically", func(t *testing.T) {
		t.Parallel()

		svc, _, sender := newTestService(t)

		err := svc.ForgotPassword(ctx, "ghost@x.com")
		assert.NoError(t, err)
		assert.Equal(t, 0, sender.count())
	})
}

func TestService_ResetPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	setup := func(t *testing.T) (*auth.Service, *user.MemoryStore, string) {
		t.Helper()

		svc, store, _ := newTestService(t)
		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)
		_, err = svc.VerifyEmail(ctx, registered.VerificationToken)
		require.NoError(t, err)
		require.NoError(t, svc.ForgotPassword(ctx, "alice@x.com"))

		stored, err := store.ByID(ctx, registered.ID)
		require.NoError(t, err)
		return svc, store, stored.ResetToken
	}

	t.Run("new password works, old does not", func(t *testing.T) {
		t.Parallel()

		svc, _, resetToken := setup(t)

		u, err := svc.ResetPassword(ctx, resetToken, "N3w!Passw0rd")
		require.NoError(t, err)
		assert.Empty(t, u.ResetToken)
		assert.Nil(t, u.ResetExpires)

		_, err = svc.Login(ctx, "alice@x.com", "N3w!Passw0rd")
		assert.NoError(t, err)

		_, err = svc.Login(ctx, "alice@x.com", "Str0ng!Pass")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("used token fails", func(t *testing.T) {
		t.Parallel()

		svc, _, resetToken := setup(t)

		_, err := svc.ResetPassword(ctx, resetToken, "N3w!Passw0rd")
		require.NoError(t, err)

		_, err = svc.ResetPassword(ctx, resetToken, "An0ther!Pass")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unknown token fails", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		_, err := svc.ResetPassword(ctx, "nope", "N3w!Passw0rd")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("updates username and email", func(t *testing.T) {
		t.Parallel()

		svc, store, _ := newTestService(t)
		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		u, err := svc.UpdateProfile(ctx, registered.ID, auth.ProfileUpdate{
			Username: strPtr("alice_travels"),
			Email:    strPtr(" Alice@New.com "),
		})
		require.NoError(t, err)
		assert.Equal(t, "alice_travels", u.Username)
		assert.Equal(t, "alice@new.com", u.Email)

		stored, err := store.ByID(ctx, registered.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice_travels", stored.Username)
	})

	t.Run("partial update leaves other fields", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		registered, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		u, err := svc.UpdateProfile(ctx, registered.ID, auth.ProfileUpdate{Username: strPtr("renamed")})
		require.NoError(t, err)
		assert.Equal(t, "renamed", u.Username)
		assert.Equal(t, "alice@x.com", u.Email)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		_, err := svc.Register(ctx, "alice", "alice@x.com", "Str0ng!Pass")
		require.NoError(t, err)
		bob, err := svc.Register(ctx, "bob", "bob@x.com", "Str0ng!Pass")
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, bob.ID, auth.ProfileUpdate{Username: strPtr("alice")})
		assert.ErrorIs(t, err, user.ErrDuplicate)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newTestService(t)
		_, err := svc.UpdateProfile(ctx, "missing", auth.ProfileUpdate{Username: strPtr("x")})
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}
