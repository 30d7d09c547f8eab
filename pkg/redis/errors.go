package redis

import "errors"

var (
	// ErrInvalidConnectionURL is returned when the Redis URL cannot be parsed.
	ErrInvalidConnectionURL = errors.New("invalid redis connection url")
	// ErrNotReady is returned when all connection attempts are exhausted.
	ErrNotReady = errors.New("redis is not ready")
	// ErrHealthcheckFailed is returned when a ping against the server fails.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
