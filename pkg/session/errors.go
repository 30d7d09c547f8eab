package session

import "errors"

var (
	// ErrSecretTooShort is returned when the signing secret is too weak for HMAC-SHA256.
	ErrSecretTooShort = errors.New("session secret too short")
	// ErrNoSession is returned when the request carries no session cookie.
	ErrNoSession = errors.New("no session credential")
	// ErrInvalidSession covers expired, tampered, and malformed credentials alike.
	ErrInvalidSession = errors.New("invalid session credential")
)
