package resilience

import (
	"time"

	"github.com/felixgeelhaar/goap-go/domain/cache"
)

// Option configures the resilient cache decorator.
type Option func(*Config)

// WithMaxConcurrent sets the maximum concurrent cache calls.
func WithMaxConcurrent(n int) Option {
	return func(c *Config) {
		c.MaxConcurrent = n
	}
}

// WithCircuitBreakerThreshold sets the failure threshold for the circuit breaker.
func WithCircuitBreakerThreshold(n int) Option {
	return func(c *Config) {
		c.CircuitBreakerThreshold = n
	}
}

// WithCircuitBreakerTimeout sets the circuit breaker open duration.
func WithCircuitBreakerTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.CircuitBreakerTimeout = d
	}
}

// WithRetryAttempts sets the maximum attempts per cache call.
func WithRetryAttempts(n int) Option {
	return func(c *Config) {
		c.RetryMaxAttempts = n
	}
}

// WithRetryDelay sets the initial retry delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		c.RetryInitialDelay = d
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.DefaultTimeout = d
	}
}

// NewCacheWithOptions wraps inner with the given options applied on top
// of the defaults.
func NewCacheWithOptions(inner cache.Cache, opts ...Option) *Cache {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return NewCache(inner, config)
}
