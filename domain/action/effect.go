package action

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// DefaultEffectCost is the cost of an effect built with NewEffect.
const DefaultEffectCost = 1

// Effect is an ordered list of mutations applied as one transition,
// priced with a non-negative integer cost. Effects are immutable
// values: WithCost and WithMutation return modified copies.
type Effect struct {
	mutations []Mutation
	cost      int
}

// NewEffect returns an effect with no mutations and the default cost.
func NewEffect() Effect { return Effect{cost: DefaultEffectCost} }

// WithCost returns a copy of the effect with the given cost. Negative
// costs are rejected by Validate and by the action builder.
func (e Effect) WithCost(cost int) Effect {
	e.cost = cost
	return e
}

// WithMutation returns a copy of the effect with m appended to its
// mutation list.
func (e Effect) WithMutation(m Mutation) Effect {
	ms := make([]Mutation, len(e.mutations), len(e.mutations)+1)
	copy(ms, e.mutations)
	e.mutations = append(ms, m)
	return e
}

// Cost returns the effect's cost.
func (e Effect) Cost() int { return e.cost }

// Mutations returns a copy of the mutation list in application order.
func (e Effect) Mutations() []Mutation {
	ms := make([]Mutation, len(e.mutations))
	copy(ms, e.mutations)
	return ms
}

// Len returns the number of mutations.
func (e Effect) Len() int { return len(e.mutations) }

// Apply returns the state produced by applying every mutation in
// order. Each mutation sees the state produced by the ones before it.
func (e Effect) Apply(st world.State) world.State {
	for _, m := range e.mutations {
		st = m.Apply(st)
	}
	return st
}

// Validate reports whether the effect is usable in an action.
func (e Effect) Validate() error {
	if e.cost < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCost, e.cost)
	}
	return nil
}

// String renders the effect as its mutations and cost.
func (e Effect) String() string {
	if len(e.mutations) == 0 {
		return fmt.Sprintf("[no mutations] (cost %d)", e.cost)
	}
	parts := make([]string, len(e.mutations))
	for i, m := range e.mutations {
		parts[i] = m.String()
	}
	return fmt.Sprintf("[%s] (cost %d)", strings.Join(parts, "; "), e.cost)
}

type effectJSON struct {
	Cost      int        `json:"cost"`
	Mutations []Mutation `json:"mutations"`
}

// MarshalJSON encodes the effect's cost and ordered mutations.
func (e Effect) MarshalJSON() ([]byte, error) {
	return json.Marshal(effectJSON{Cost: e.cost, Mutations: e.Mutations()})
}

// UnmarshalJSON decodes and validates an effect.
func (e *Effect) UnmarshalJSON(data []byte) error {
	var in effectJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal effect: %w", err)
	}
	out := Effect{mutations: in.Mutations, cost: in.Cost}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("unmarshal effect: %w", err)
	}
	*e = out
	return nil
}
