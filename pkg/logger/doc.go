// Package logger builds slog loggers with environment-driven format and
// level selection. Production deployments use JSON output for aggregation;
// development defaults to text.
package logger
