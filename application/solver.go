// Package application orchestrates planning: it runs requests through
// the planner, reuses solved plans from an optional cache, and reports
// structured logs and metrics along the way.
package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/cache"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// DefaultCacheTTL is how long cached plans live when no TTL is
// configured. Plans stay valid until the action catalog changes, so
// the TTL mostly bounds how long a stale catalog's plans survive.
const DefaultCacheTTL = time.Hour

// Solver runs planning requests. Planning is deterministic, so a
// solved request can be keyed by its canonical form and the plan
// reused; the cache is optional and solving degrades to plain
// planning when it misbehaves.
type Solver struct {
	planner  *planner.Planner
	cache    cache.Cache
	metrics  telemetry.Metrics
	cacheTTL time.Duration
}

// SolverConfig contains configuration for the solver.
type SolverConfig struct {
	// Planner runs the searches. Nil gets a default planner.
	Planner *planner.Planner
	// Cache stores solved plans. Nil disables caching.
	Cache cache.Cache
	// Metrics receives planning telemetry. Nil disables it.
	Metrics telemetry.Metrics
	// CacheTTL bounds cached plan lifetime. Zero means DefaultCacheTTL.
	CacheTTL time.Duration
}

// NewSolver creates a solver with the given configuration.
func NewSolver(config SolverConfig) (*Solver, error) {
	s := &Solver{
		planner:  config.Planner,
		cache:    config.Cache,
		metrics:  config.Metrics,
		cacheTTL: config.CacheTTL,
	}

	if s.planner == nil {
		p, err := planner.New()
		if err != nil {
			return nil, fmt.Errorf("default planner: %w", err)
		}
		s.planner = p
	}
	if s.metrics == nil {
		s.metrics = &telemetry.NoopMetricsProvider{}
	}
	if s.cacheTTL == 0 {
		s.cacheTTL = DefaultCacheTTL
	}

	return s, nil
}

// Planner returns the planner the solver runs requests through.
func (s *Solver) Planner() *planner.Planner { return s.planner }

// CacheStats returns cache statistics, if the configured cache
// provides them.
func (s *Solver) CacheStats() (cache.Stats, bool) {
	sp, ok := s.cache.(cache.StatsProvider)
	if !ok {
		return cache.Stats{}, false
	}
	return sp.Stats(), true
}

// Request is one planning problem.
type Request struct {
	// Scenario is an optional display name carried into logs.
	Scenario string
	// Start is the state planning begins from.
	Start world.State
	// Actions is the catalog the planner may use.
	Actions []action.Action
	// Goal is the conjunction of conditions to achieve.
	Goal goal.Goal
}

// Result is the outcome of solving one request. A request with no
// reachable goal state is a Found=false result, not an error.
type Result struct {
	// RequestID identifies this solve in logs and metrics.
	RequestID string
	// Scenario echoes the request's display name.
	Scenario string
	// Plan is the solution. Nil when Found is false.
	Plan *plan.Plan
	// Found reports whether a plan was found.
	Found bool
	// Cached reports whether the plan came from the cache.
	Cached bool
	// Stats describes the search. Zero when the plan came from the cache.
	Stats planner.Stats
	// Duration is how long solving took, including cache traffic.
	Duration time.Duration
}

// Solve runs one planning request. Cache failures are logged and
// absorbed; the search itself cannot fail, only come up empty.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	strategy := s.planner.Strategy()
	began := time.Now()

	s.metrics.IncrementActiveSolves(ctx)
	defer s.metrics.DecrementActiveSolves(ctx)

	var key string
	if s.cache != nil {
		key = s.cacheKey(req)
		if cached, ok := s.lookup(ctx, key, requestID); ok {
			s.metrics.RecordCacheHit(ctx, strategy.String())
			logging.Debug().
				Add(logging.RequestID(requestID)).
				Add(logging.Scenario(req.Scenario)).
				Add(logging.CacheKey(key)).
				Msg("plan served from cache")
			return &Result{
				RequestID: requestID,
				Scenario:  req.Scenario,
				Plan:      cached,
				Found:     true,
				Cached:    true,
				Duration:  time.Since(began),
			}, nil
		}
		s.metrics.RecordCacheMiss(ctx, strategy.String())
	}

	p, stats, found := s.planner.FindPlanStats(req.Start, req.Actions, req.Goal)
	duration := time.Since(began)

	s.metrics.RecordPlanning(ctx, strategy.String(), found, stats.BudgetExhausted,
		duration, int64(stats.NodesExpanded))

	event := logging.Info().
		Add(logging.RequestID(requestID)).
		Add(logging.Scenario(req.Scenario)).
		Add(logging.Strategy(strategy)).
		Add(logging.GoalSize(req.Goal.Len())).
		Add(logging.ActionCount(len(req.Actions))).
		Add(logging.Found(found)).
		Add(logging.Expanded(stats.NodesExpanded)).
		Add(logging.BudgetExhausted(stats.BudgetExhausted)).
		Add(logging.Duration(duration))
	if found {
		s.metrics.RecordPlan(ctx, strategy.String(), p.Cost(), p.Len())
		event.Add(logging.PlanCost(p.Cost())).Add(logging.PlanLength(p.Len()))
	}
	event.Msg("solve finished")

	if found && s.cache != nil {
		s.store(ctx, key, p, requestID)
	}

	return &Result{
		RequestID: requestID,
		Scenario:  req.Scenario,
		Plan:      p,
		Found:     found,
		Stats:     stats,
		Duration:  duration,
	}, nil
}

// lookup fetches and decodes a cached plan. Any failure is treated as
// a miss: a broken cache must never break solving.
func (s *Solver) lookup(ctx context.Context, key, requestID string) (*plan.Plan, bool) {
	value, found, err := s.cache.Get(ctx, key)
	if err != nil {
		logging.Warn().
			Add(logging.RequestID(requestID)).
			Add(logging.CacheKey(key)).
			Add(logging.ErrorField(err)).
			Msg("cache lookup failed, planning instead")
		s.metrics.RecordError(ctx, "cache_get", map[string]string{"key": key})
		return nil, false
	}
	if !found {
		return nil, false
	}

	p := &plan.Plan{}
	if err := json.Unmarshal(value, p); err != nil {
		logging.Warn().
			Add(logging.RequestID(requestID)).
			Add(logging.CacheKey(key)).
			Add(logging.ErrorField(err)).
			Msg("cached plan is corrupt, planning instead")
		s.metrics.RecordError(ctx, "cache_decode", map[string]string{"key": key})
		return nil, false
	}
	return p, true
}

// store writes a solved plan back to the cache, absorbing failures.
func (s *Solver) store(ctx context.Context, key string, p *plan.Plan, requestID string) {
	value, err := json.Marshal(p)
	if err != nil {
		logging.Warn().
			Add(logging.RequestID(requestID)).
			Add(logging.ErrorField(err)).
			Msg("plan not cacheable")
		return
	}
	if err := s.cache.Set(ctx, key, value, cache.SetOptions{TTL: s.cacheTTL}); err != nil {
		logging.Warn().
			Add(logging.RequestID(requestID)).
			Add(logging.CacheKey(key)).
			Add(logging.ErrorField(err)).
			Msg("cache store failed")
		s.metrics.RecordError(ctx, "cache_set", map[string]string{"key": key})
	}
}

// cacheKey derives a canonical key for a request. State fingerprints
// are canonical by construction, and JSON encoding sorts map keys, so
// equivalent requests collide and different ones do not. Strategy and
// budget are part of the key: the same problem can produce different
// plans under different planner settings.
func (s *Solver) cacheKey(req Request) string {
	h := sha256.New()
	io.WriteString(h, req.Start.Fingerprint())
	io.WriteString(h, "|goal:")
	goalJSON, _ := json.Marshal(req.Goal)
	h.Write(goalJSON)
	io.WriteString(h, "|actions:")
	actionsJSON, _ := json.Marshal(req.Actions)
	h.Write(actionsJSON)
	fmt.Fprintf(h, "|strategy:%s|budget:%d", s.planner.Strategy(), s.planner.MaxExpansions())
	return hex.EncodeToString(h.Sum(nil))
}
