package email_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/auth-service/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Hello",
		BodyHTML: "<p>Hi</p>",
	}

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
		valid  bool
	}{
		{name: "valid", mutate: func(*email.SendEmailParams) {}, valid: true},
		{name: "missing recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "" }},
		{name: "invalid recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "not-an-email" }},
		{name: "missing subject", mutate: func(p *email.SendEmailParams) { p.Subject = "" }},
		{name: "missing body", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			params := valid
			tt.mutate(&params)
			err := params.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
			}
		})
	}
}

func TestNewPostmarkClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@roamly.example",
		SupportEmail:         "support@roamly.example",
	}

	tests := []struct {
		name   string
		mutate func(*email.Config)
	}{
		{name: "missing server token", mutate: func(c *email.Config) { c.PostmarkServerToken = "" }},
		{name: "missing account token", mutate: func(c *email.Config) { c.PostmarkAccountToken = "" }},
		{name: "missing sender", mutate: func(c *email.Config) { c.SenderEmail = "" }},
		{name: "invalid sender", mutate: func(c *email.Config) { c.SenderEmail = "nope" }},
		{name: "invalid support", mutate: func(c *email.Config) { c.SupportEmail = "nope" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			tt.mutate(&cfg)
			_, err := email.NewPostmarkClient(cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()

		sender, err := email.NewPostmarkClient(valid)
		require.NoError(t, err)
		assert.NotNil(t, sender)
	})
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir, nil)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Verify your email",
		BodyHTML: "<p>click the link</p>",
		Tag:      "email-verification",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), ".html"))
	assert.Contains(t, entries[0].Name(), "email-verification")

	body, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "<p>click the link</p>", string(body))
}

func TestComposer(t *testing.T) {
	t.Parallel()

	composer := email.NewComposer("Roamly", "https://app.roamly.example/")

	t.Run("verification", func(t *testing.T) {
		t.Parallel()

		msg, err := composer.Verification("user@example.com", "traveler", "abc123")
		require.NoError(t, err)

		assert.Equal(t, "user@example.com", msg.SendTo)
		assert.Equal(t, "Verify your Roamly email address", msg.Subject)
		assert.Equal(t, "email-verification", msg.Tag)
		assert.Contains(t, msg.BodyHTML, "https://app.roamly.example/verify-email?token=abc123")
		assert.Contains(t, msg.BodyHTML, "traveler")
		assert.NoError(t, msg.Validate())
	})

	t.Run("password reset", func(t *testing.T) {
		t.Parallel()

		msg, err := composer.PasswordReset("user@example.com", "traveler", "xyz789")
		require.NoError(t, err)

		assert.Equal(t, "Reset your Roamly password", msg.Subject)
		assert.Equal(t, "password-reset", msg.Tag)
		assert.Contains(t, msg.BodyHTML, "https://app.roamly.example/reset-password?token=xyz789")
		assert.Contains(t, msg.BodyHTML, "expires in one hour")
	})

	t.Run("token is query escaped", func(t *testing.T) {
		t.Parallel()

		msg, err := composer.Verification("user@example.com", "traveler", "a+b c")
		require.NoError(t, err)
		assert.Contains(t, msg.BodyHTML, "token=a%2Bb+c")
	})

	t.Run("username is html escaped", func(t *testing.T) {
		t.Parallel()

		msg, err := composer.Verification("user@example.com", "<script>", "abc")
		require.NoError(t, err)
		assert.NotContains(t, msg.BodyHTML, "<script>")
	})
}
