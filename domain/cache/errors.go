package cache

import "errors"

// Domain errors for plan cache operations.
var (
	// ErrInvalidKey is returned when a key is invalid (e.g., empty).
	ErrInvalidKey = errors.New("invalid cache key")

	// ErrCacheFull is returned when the cache is at capacity and cannot accept new entries.
	ErrCacheFull = errors.New("cache is full")

	// ErrClosed is returned when an operation runs against a closed cache.
	ErrClosed = errors.New("cache is closed")

	// ErrConnectionFailed is returned when connection to the cache backend fails.
	ErrConnectionFailed = errors.New("cache connection failed")

	// ErrOperationTimeout is returned when a cache operation times out.
	ErrOperationTimeout = errors.New("cache operation timeout")
)
