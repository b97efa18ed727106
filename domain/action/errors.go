package action

import "errors"

var (
	// ErrEmptyName indicates an action built without a name.
	ErrEmptyName = errors.New("action name is empty")

	// ErrNoEffects indicates an action built without any effect.
	ErrNoEffects = errors.New("action has no effects")

	// ErrNegativeCost indicates an effect priced below zero.
	ErrNegativeCost = errors.New("effect cost is negative")

	// ErrUnknownOp indicates a mutation op token outside the supported set.
	ErrUnknownOp = errors.New("unknown mutation op")

	// ErrMissingValue indicates an encoded mutation without the operand
	// its op requires.
	ErrMissingValue = errors.New("missing mutation value")
)
