// Package api provides the public planning surface for goap-go.
//
// goap-go is a goal-oriented action planner: given a symbolic world
// state, a goal, and a catalog of actions with preconditions and
// effects, it searches for the cheapest action sequence that reaches a
// state satisfying the goal.
//
// # Quick Start
//
// Describe the world, the goal, and the actions, then plan:
//
//	start := api.NewWorldState().
//	    Set("is_hungry", api.Bool(true)).
//	    Set("has_food", api.Bool(false))
//
//	target := api.NewGoal().
//	    With("is_hungry", api.Eq(api.Bool(false)))
//
//	buyFood := api.NewActionBuilder("buy_food").
//	    WithEffect(api.NewEffect().
//	        WithCost(2).
//	        WithMutation(api.Set("has_food", api.Bool(true)))).
//	    MustBuild()
//
//	eat := api.NewActionBuilder("eat").
//	    WithPrecondition("has_food", api.Eq(api.Bool(true))).
//	    WithEffect(api.NewEffect().
//	        WithMutation(api.Set("is_hungry", api.Bool(false))).
//	        WithMutation(api.Set("has_food", api.Bool(false)))).
//	    MustBuild()
//
//	plan, err := api.MakePlan(start, []api.Action{buyFood, eat}, target)
//	if err != nil {
//	    // errors.Is(err, api.ErrNoPlanFound) when the goal is unreachable
//	    return err
//	}
//	fmt.Println(api.FormatPlan(plan))
//
// # Values
//
// World values are a closed set of kinds: Bool, Int, Float, and Text.
// Conditions and mutations never coerce across kinds; an ordering
// relation on a non-numeric value is simply false, and an increment on
// a non-numeric or absent key leaves the state unchanged.
//
// # Strategies
//
// Two strategies are available:
//
//   - StrategyMinimizeCost: minimize the summed effect costs (default)
//   - StrategyMinimizeActions: minimize the number of actions taken
//
// Either way the reported plan cost is the sum of the chosen effects'
// declared costs.
//
// # Solver
//
// For repeated planning over the same catalogs, NewSolver wraps a
// planner with result caching, structured logging, and metrics:
//
//	solver, _ := api.NewSolver(
//	    api.WithCache(api.NewMemoryCache()),
//	)
//	result, err := solver.Solve(ctx, api.SolveRequest{
//	    Scenario: "survival",
//	    Start:    start,
//	    Actions:  []api.Action{buyFood, eat},
//	    Goal:     target,
//	})
package api

import (
	"github.com/felixgeelhaar/goap-go/application"
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/cache"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// Re-export core types for convenience.
type (
	// Value is a world value: one of Bool, Int, Float, or Text.
	Value = world.Value

	// Kind identifies which variant a Value holds.
	Kind = world.Kind

	// WorldState is an immutable snapshot of named values.
	WorldState = world.State

	// Condition compares a world value against an operand.
	Condition = goal.Condition

	// Relation is the comparison a Condition applies.
	Relation = goal.Relation

	// Goal is a set of conditions keyed by world state key.
	Goal = goal.Goal

	// Mutation is a single change to one key of a world state.
	Mutation = action.Mutation

	// Op identifies which change a Mutation applies.
	Op = action.Op

	// Effect is an ordered group of mutations with a cost.
	Effect = action.Effect

	// Action pairs preconditions with one or more alternative effects.
	Action = action.Action

	// ActionBuilder assembles an Action step by step.
	ActionBuilder = action.Builder

	// Plan is the result of a successful search.
	Plan = plan.Plan

	// Step is one (action, effect) edge of a plan and the state it
	// produced.
	Step = plan.Step

	// Planner runs best-first searches over action catalogs.
	Planner = planner.Planner

	// PlannerOption configures a Planner.
	PlannerOption = planner.Option

	// Stats describes one search.
	Stats = planner.Stats

	// Strategy selects what a plan's edge weight measures.
	Strategy = planner.Strategy

	// Solver plans with caching, logging, and metrics around the core.
	Solver = application.Solver

	// SolverOption configures a Solver.
	SolverOption = application.Option

	// SolveRequest is one planning problem handed to a Solver.
	SolveRequest = application.Request

	// SolveResult is the outcome of one Solve call.
	SolveResult = application.Result

	// Cache stores serialized plans keyed by problem fingerprint.
	Cache = cache.Cache

	// Metrics receives planning and cache measurements.
	Metrics = telemetry.Metrics
)

// Re-export value kinds.
const (
	KindBool  = world.KindBool
	KindInt   = world.KindInt
	KindFloat = world.KindFloat
	KindText  = world.KindText
)

// Re-export condition relations.
const (
	RelationEqual          = goal.RelationEqual
	RelationNotEqual       = goal.RelationNotEqual
	RelationGreater        = goal.RelationGreater
	RelationGreaterOrEqual = goal.RelationGreaterOrEqual
	RelationLess           = goal.RelationLess
	RelationLessOrEqual    = goal.RelationLessOrEqual
)

// Re-export mutation operations.
const (
	OpSet       = action.OpSet
	OpIncrement = action.OpIncrement
	OpDecrement = action.OpDecrement
	OpDelete    = action.OpDelete
)

// Re-export planning strategies.
const (
	StrategyMinimizeCost    = planner.StrategyMinimizeCost
	StrategyMinimizeActions = planner.StrategyMinimizeActions
)

// DefaultMaxExpansions is the expansion budget of a default planner.
const DefaultMaxExpansions = planner.DefaultMaxExpansions

// DefaultEffectCost is the cost of an effect built without WithCost.
const DefaultEffectCost = action.DefaultEffectCost

// Re-export planner errors.
var (
	// ErrNoPlanFound is returned when no action sequence reaches the
	// goal within the expansion budget.
	ErrNoPlanFound = planner.ErrNoPlanFound

	// ErrInvalidBudget is returned for a negative expansion budget.
	ErrInvalidBudget = planner.ErrInvalidBudget

	// ErrInvalidStrategy is returned for a strategy outside the
	// defined set.
	ErrInvalidStrategy = planner.ErrInvalidStrategy
)

// MakePlan searches for the cheapest plan from start to a state
// satisfying target, using a planner with default settings. It returns
// ErrNoPlanFound when the goal is unreachable within the default
// expansion budget.
func MakePlan(start WorldState, actions []Action, target Goal) (*Plan, error) {
	return MakePlanWithStrategy(StrategyMinimizeCost, start, actions, target)
}

// MakePlanWithStrategy is MakePlan with an explicit strategy.
func MakePlanWithStrategy(s Strategy, start WorldState, actions []Action, target Goal) (*Plan, error) {
	p, err := planner.New(planner.WithStrategy(s))
	if err != nil {
		return nil, err
	}
	result, found := p.FindPlan(start, actions, target)
	if !found {
		return nil, ErrNoPlanFound
	}
	return result, nil
}

// GetEffectsFromPlan returns the ordered (action, effect) steps of a
// plan; each step also carries the state it produced. A nil plan
// yields nil.
func GetEffectsFromPlan(p *Plan) []Step {
	if p == nil {
		return nil
	}
	return p.Steps()
}

// FormatPlan renders a plan as a human-readable report: the initial
// state, each action with its mutations and resulting state, and the
// final state with the total cost. A nil plan yields the empty string.
func FormatPlan(p *Plan) string {
	if p == nil {
		return ""
	}
	return p.Format()
}

// VerifyPlan replays a plan step by step against its start state and
// reports the first discrepancy: an inapplicable action, a recorded
// state that replay does not reproduce, a cost that does not sum, or a
// final state that misses the goal.
func VerifyPlan(p *Plan, target Goal) error {
	return application.Verify(p, target)
}

// NewSolver creates a solving service. Without options it plans with a
// default planner and no cache.
func NewSolver(opts ...SolverOption) (*Solver, error) {
	return application.NewSolverWithOptions(opts...)
}
