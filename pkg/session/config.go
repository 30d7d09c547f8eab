package session

import "time"

// Config holds session credential and cookie configuration.
type Config struct {
	Secret       string        `env:"SESSION_SECRET,required"`               // Secret signs session credentials; at least 32 chars.
	TTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`          // TTL is the fixed session lifetime from issuance.
	CookieName   string        `env:"SESSION_COOKIE_NAME" envDefault:"token"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"` // Set in production so the cookie is https-only.
}
