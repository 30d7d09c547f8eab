// Package redis manages the Redis connection backing the shared rate-limit
// store. Like the mongo connector it retries and lets the caller fall back
// to an in-memory alternative.
package redis
