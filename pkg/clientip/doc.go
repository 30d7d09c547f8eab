// Package clientip extracts the originating client IP address from HTTP
// requests arriving through reverse proxies.
//
// The service keys its rate limit counters by client IP, so the resolved
// address must survive proxies. GetIP checks X-Forwarded-For first (the
// first valid entry wins), then X-Real-IP, and finally falls back to the
// TCP peer address. Invalid header values are skipped rather than trusted.
//
// GetIP never returns an error; an empty string means no valid address
// could be resolved and callers decide how to proceed.
package clientip
