package planner

import "fmt"

// Strategy selects what a plan's edge weight measures during search.
// Both strategies search forward from the start state; they differ only
// in what they minimize.
type Strategy int

const (
	// StrategyMinimizeCost weighs each edge by its effect cost, finding
	// the cheapest plan. This is the default.
	StrategyMinimizeCost Strategy = iota
	// StrategyMinimizeActions weighs every edge as one, finding the
	// shortest plan by action count regardless of effect costs.
	StrategyMinimizeActions
)

// String returns the token used for the strategy in flags and scenario
// files.
func (s Strategy) String() string {
	switch s {
	case StrategyMinimizeCost:
		return "minimize-cost"
	case StrategyMinimizeActions:
		return "minimize-actions"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Valid reports whether the strategy is one of the defined set.
func (s Strategy) Valid() bool {
	return s == StrategyMinimizeCost || s == StrategyMinimizeActions
}

// ParseStrategy maps a token to a Strategy.
func ParseStrategy(token string) (Strategy, error) {
	switch token {
	case "minimize-cost":
		return StrategyMinimizeCost, nil
	case "minimize-actions":
		return StrategyMinimizeActions, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, token)
	}
}
