// Package resilience wraps plan caches with fortify resilience patterns.
//
// Remote cache backends fail in ways the planner should never feel: a
// Redis blip must not stall solving. Once a backend misbehaves the
// circuit opens, cache calls fail fast, and the solver falls through to
// planning from scratch until the backend recovers.
package resilience

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/goap-go/domain/cache"
)

// opResult carries the payload of a cache operation through the
// resilience pipeline. Write operations leave it zero.
type opResult struct {
	value []byte
	found bool
}

// Cache decorates a cache.Cache with bulkhead, timeout, circuit breaker
// and retry patterns.
type Cache struct {
	inner    cache.Cache
	bulkhead bulkhead.Bulkhead[opResult]
	breaker  circuitbreaker.CircuitBreaker[opResult]
	retry    retry.Retry[opResult]
	timeout  time.Duration
}

// Config configures the resilient cache decorator.
type Config struct {
	// MaxConcurrent limits concurrent cache calls.
	MaxConcurrent int

	// CircuitBreakerThreshold is the number of consecutive failures
	// before the circuit opens.
	CircuitBreakerThreshold int

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration

	// RetryMaxAttempts is the maximum number of attempts per call.
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64

	// DefaultTimeout bounds each cache call.
	DefaultTimeout time.Duration
}

// DefaultConfig returns defaults tuned for cache lookups, which should
// be far cheaper than the planning they shortcut.
func DefaultConfig() Config {
	return Config{
		MaxConcurrent:           32,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   10 * time.Second,
		RetryMaxAttempts:        2,
		RetryInitialDelay:       20 * time.Millisecond,
		RetryBackoffMultiplier:  2.0,
		DefaultTimeout:          2 * time.Second,
	}
}

// NewCache wraps inner with the resilience patterns from config.
func NewCache(inner cache.Cache, config Config) *Cache {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent < 0 {
		maxConcurrent = 32
	}
	threshold := config.CircuitBreakerThreshold
	if threshold < 0 {
		threshold = 5
	}

	return &Cache{
		inner: inner,
		bulkhead: bulkhead.New[opResult](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		breaker: circuitbreaker.New[opResult](circuitbreaker.Config{
			MaxRequests: uint32(maxConcurrent), // #nosec G115 -- bounds checked above
			Interval:    config.CircuitBreakerTimeout,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		}),
		retry: retry.New[opResult](retry.Config{
			MaxAttempts:   config.RetryMaxAttempts,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    config.RetryBackoffMultiplier,
		}),
		timeout: config.DefaultTimeout,
	}
}

// NewDefaultCache wraps inner with default configuration.
func NewDefaultCache(inner cache.Cache) *Cache {
	return NewCache(inner, DefaultConfig())
}

// execute runs a cache operation through the resilience pipeline.
// Composition order: Bulkhead → Timeout → Circuit Breaker → Retry.
// Cache operations are idempotent, so retrying is always safe.
func (c *Cache) execute(ctx context.Context, op func(ctx context.Context) (opResult, error)) (opResult, error) {
	return c.bulkhead.Execute(ctx, func(ctx context.Context) (opResult, error) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		return c.breaker.Execute(ctx, func(ctx context.Context) (opResult, error) {
			return c.retry.Do(ctx, op)
		})
	})
}

// Get retrieves a cached plan through the resilience pipeline.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := c.execute(ctx, func(ctx context.Context) (opResult, error) {
		value, found, err := c.inner.Get(ctx, key)
		return opResult{value: value, found: found}, err
	})
	if err != nil {
		return nil, false, err
	}
	return res.value, res.found, nil
}

// Set stores a plan through the resilience pipeline.
func (c *Cache) Set(ctx context.Context, key string, value []byte, opts cache.SetOptions) error {
	_, err := c.execute(ctx, func(ctx context.Context) (opResult, error) {
		return opResult{}, c.inner.Set(ctx, key, value, opts)
	})
	return err
}

// Delete removes a plan through the resilience pipeline.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.execute(ctx, func(ctx context.Context) (opResult, error) {
		return opResult{}, c.inner.Delete(ctx, key)
	})
	return err
}

// Exists checks for a cached plan through the resilience pipeline.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.execute(ctx, func(ctx context.Context) (opResult, error) {
		found, err := c.inner.Exists(ctx, key)
		return opResult{found: found}, err
	})
	if err != nil {
		return false, err
	}
	return res.found, nil
}

// Clear empties the underlying cache through the resilience pipeline.
func (c *Cache) Clear(ctx context.Context) error {
	_, err := c.execute(ctx, func(ctx context.Context) (opResult, error) {
		return opResult{}, c.inner.Clear(ctx)
	})
	return err
}

// Stats passes through to the underlying cache when it tracks stats.
func (c *Cache) Stats() cache.Stats {
	if sp, ok := c.inner.(cache.StatsProvider); ok {
		return sp.Stats()
	}
	return cache.Stats{}
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (c *Cache) CircuitBreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// Ensure Cache implements cache.Cache and cache.StatsProvider.
var (
	_ cache.Cache         = (*Cache)(nil)
	_ cache.StatsProvider = (*Cache)(nil)
)
