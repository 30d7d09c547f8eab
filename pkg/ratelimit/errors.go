package ratelimit

import "errors"

var (
	// ErrStoreRequired is returned when a limiter is constructed without a store.
	ErrStoreRequired = errors.New("ratelimit: store is required")

	// ErrInvalidLimit is returned when the limit is not a positive number.
	ErrInvalidLimit = errors.New("ratelimit: limit must be greater than zero")

	// ErrInvalidWindow is returned when the window duration is not positive.
	ErrInvalidWindow = errors.New("ratelimit: window must be greater than zero")

	// ErrKeyRequired is returned when Allow is called with an empty key.
	ErrKeyRequired = errors.New("ratelimit: key is required")

	// ErrStoreUnavailable wraps backend failures from the underlying store.
	ErrStoreUnavailable = errors.New("ratelimit: store unavailable")
)
