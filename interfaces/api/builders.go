package api

import (
	"time"

	"github.com/felixgeelhaar/goap-go/application"
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/memory"
)

// Value constructors

// Bool creates a boolean world value.
func Bool(v bool) Value { return world.Bool(v) }

// Int creates an integer world value.
func Int(v int64) Value { return world.Int(v) }

// Float creates a floating-point world value.
func Float(v float64) Value { return world.Float(v) }

// Text creates a string world value.
func Text(v string) Value { return world.Text(v) }

// World state constructors

// NewWorldState creates an empty world state.
func NewWorldState() WorldState { return world.NewState() }

// WorldStateFrom creates a world state holding the given entries.
func WorldStateFrom(entries map[string]Value) WorldState {
	return world.StateFrom(entries)
}

// Condition constructors

// Eq matches values equal to v.
func Eq(v Value) Condition { return goal.Eq(v) }

// NotEq matches values not equal to v.
func NotEq(v Value) Condition { return goal.NotEq(v) }

// Gt matches numeric values strictly greater than v.
func Gt(v Value) Condition { return goal.Gt(v) }

// Gte matches numeric values greater than or equal to v.
func Gte(v Value) Condition { return goal.Gte(v) }

// Lt matches numeric values strictly less than v.
func Lt(v Value) Condition { return goal.Lt(v) }

// Lte matches numeric values less than or equal to v.
func Lte(v Value) Condition { return goal.Lte(v) }

// NewCondition creates a condition from a relation and operand.
func NewCondition(r Relation, v Value) Condition {
	return goal.NewCondition(r, v)
}

// ParseRelation maps a token such as "eq" or "lt" to a Relation.
func ParseRelation(token string) (Relation, error) {
	return goal.ParseRelation(token)
}

// Goal constructors

// NewGoal creates an empty goal, satisfied by every state.
func NewGoal() Goal { return goal.New() }

// GoalFrom creates a goal holding the given conditions.
func GoalFrom(conditions map[string]Condition) Goal {
	return goal.From(conditions)
}

// Mutation constructors

// Set binds key to v, creating the key if absent.
func Set(key string, v Value) Mutation { return action.Set(key, v) }

// Increment adds amount to the numeric value at key.
func Increment(key string, amount Value) Mutation {
	return action.Increment(key, amount)
}

// Decrement subtracts amount from the numeric value at key.
func Decrement(key string, amount Value) Mutation {
	return action.Decrement(key, amount)
}

// Delete removes key from the state.
func Delete(key string) Mutation { return action.Delete(key) }

// ParseOp maps a token such as "set" or "increment" to an Op.
func ParseOp(token string) (Op, error) { return action.ParseOp(token) }

// Effect and action constructors

// NewEffect creates an effect with no mutations and the default cost.
func NewEffect() Effect { return action.NewEffect() }

// NewActionBuilder creates a builder for an action with the given name.
func NewActionBuilder(name string) *ActionBuilder {
	return action.NewBuilder(name)
}

// Planner constructors

// NewPlanner creates a planner, rejecting invalid configuration.
func NewPlanner(opts ...PlannerOption) (*Planner, error) {
	return planner.New(opts...)
}

// WithMaxExpansions bounds how many nodes a single search may expand.
func WithMaxExpansions(n int) PlannerOption {
	return planner.WithMaxExpansions(n)
}

// WithStrategy selects what edge weight the search minimizes.
func WithStrategy(s Strategy) PlannerOption {
	return planner.WithStrategy(s)
}

// ParseStrategy maps a token such as "minimize-cost" to a Strategy.
func ParseStrategy(token string) (Strategy, error) {
	return planner.ParseStrategy(token)
}

// Solver options

// WithPlanner sets the planner a solver plans with.
func WithPlanner(p *Planner) SolverOption {
	return application.WithPlanner(p)
}

// WithCache sets the plan cache a solver consults before planning.
func WithCache(c Cache) SolverOption {
	return application.WithCache(c)
}

// WithCacheTTL sets how long cached plans stay valid.
func WithCacheTTL(ttl time.Duration) SolverOption {
	return application.WithCacheTTL(ttl)
}

// WithMetrics sets the metrics sink a solver records to.
func WithMetrics(m Metrics) SolverOption {
	return application.WithMetrics(m)
}

// NewMemoryCache creates an in-process plan cache.
func NewMemoryCache(opts ...memory.Option) *memory.Cache {
	return memory.NewCache(opts...)
}
