package httpserver

import "errors"

var (
	// ErrStart indicates the server failed to start or exited abnormally.
	ErrStart = errors.New("httpserver: failed to start")
	// ErrShutdown indicates graceful shutdown did not complete cleanly.
	ErrShutdown = errors.New("httpserver: failed to shut down")
)
