package planner

import "errors"

var (
	// ErrNoPlanFound indicates the search ended without reaching the
	// goal, either by exhausting reachable states or the expansion
	// budget.
	ErrNoPlanFound = errors.New("no plan found")

	// ErrInvalidBudget indicates a negative expansion budget.
	ErrInvalidBudget = errors.New("invalid expansion budget")

	// ErrInvalidStrategy indicates a strategy outside the defined set.
	ErrInvalidStrategy = errors.New("invalid planning strategy")
)
