package application

import "errors"

// Errors returned by plan verification.
var (
	// ErrNilPlan indicates a nil plan was handed to Verify.
	ErrNilPlan = errors.New("plan is nil")

	// ErrPreconditionViolated indicates a step's action is not applicable
	// in the state the previous steps produced.
	ErrPreconditionViolated = errors.New("step preconditions do not hold")

	// ErrStateMismatch indicates a step's recorded state differs from the
	// state replaying its effect produces.
	ErrStateMismatch = errors.New("recorded state does not match replay")

	// ErrCostMismatch indicates the plan's cost differs from the sum of
	// its steps' effect costs.
	ErrCostMismatch = errors.New("plan cost does not match its steps")

	// ErrGoalNotReached indicates the plan's final state does not satisfy
	// the goal.
	ErrGoalNotReached = errors.New("plan does not reach the goal")
)
