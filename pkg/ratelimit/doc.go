// Package ratelimit provides sliding window rate limiting over pluggable
// storage backends.
//
// The limiter counts request timestamps inside a rolling window, so bursts
// right before a window boundary cannot double the effective rate the way
// fixed window counters allow. Two stores ship with the package: a Redis
// sorted set implementation for multi-instance deployments, and an
// in-process store for development and single-node fallback.
//
// Basic usage:
//
//	store := ratelimit.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimit.NewSlidingWindow(store, 5, 15*time.Minute)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := limiter.Allow(ctx, clientIP)
//	if err != nil {
//		// store failure, decide whether to fail open
//	}
//	if !result.Allowed {
//		// reject, result.RetryAfter() says how long to wait
//	}
//
// HTTP handlers can use Middleware, which sets the X-RateLimit-* response
// headers and answers rejected requests with 429 and a Retry-After header.
// The middleware fails open on store errors.
package ratelimit
