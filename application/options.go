package application

import (
	"time"

	"github.com/felixgeelhaar/goap-go/domain/cache"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Option configures the solver.
type Option func(*SolverConfig)

// WithPlanner sets the planner requests run through.
func WithPlanner(p *planner.Planner) Option {
	return func(c *SolverConfig) {
		c.Planner = p
	}
}

// WithCache sets the plan cache. Without one the solver plans every
// request from scratch.
func WithCache(cc cache.Cache) Option {
	return func(c *SolverConfig) {
		c.Cache = cc
	}
}

// WithCacheTTL bounds how long cached plans live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *SolverConfig) {
		c.CacheTTL = ttl
	}
}

// WithMetrics sets the telemetry sink.
func WithMetrics(m telemetry.Metrics) Option {
	return func(c *SolverConfig) {
		c.Metrics = m
	}
}

// NewSolverWithOptions creates a solver with functional options.
func NewSolverWithOptions(opts ...Option) (*Solver, error) {
	config := SolverConfig{}
	for _, opt := range opts {
		opt(&config)
	}
	return NewSolver(config)
}
