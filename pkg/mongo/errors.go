package mongo

import "errors"

var (
	// ErrFailedToConnect is returned when all connection attempts are exhausted.
	ErrFailedToConnect = errors.New("failed to connect to mongo")
	// ErrHealthcheckFailed is returned when a ping against the server fails.
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
)
