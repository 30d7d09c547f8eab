// Package httpserver provides an http.Server wrapper with environment-driven
// timeouts, graceful shutdown, and SIGINT/SIGTERM handling.
package httpserver
