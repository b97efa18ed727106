package action

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Action is a named transition gated by preconditions. An action
// carries one or more effects; each effect is an independent way of
// performing the action, so an applicable action contributes one search
// edge per effect. Names do not need to be unique within a catalog.
type Action struct {
	name          string
	preconditions map[string]goal.Condition
	effects       []Effect
}

// Name returns the action's display name.
func (a Action) Name() string { return a.name }

// Preconditions returns a copy of the per-key conditions that must all
// hold before the action applies.
func (a Action) Preconditions() map[string]goal.Condition {
	m := make(map[string]goal.Condition, len(a.preconditions))
	for k, c := range a.preconditions {
		m[k] = c
	}
	return m
}

// PreconditionKeys returns the conditioned keys in sorted order.
func (a Action) PreconditionKeys() []string {
	keys := make([]string, 0, len(a.preconditions))
	for k := range a.preconditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Effects returns a copy of the action's alternative effects in
// declaration order.
func (a Action) Effects() []Effect {
	es := make([]Effect, len(a.effects))
	copy(es, a.effects)
	return es
}

// Applicable reports whether every precondition holds in st. Keys
// absent from st fail their condition regardless of relation.
func (a Action) Applicable(st world.State) bool {
	for key, c := range a.preconditions {
		if !c.Holds(st, key) {
			return false
		}
	}
	return true
}

// String returns the action's name.
func (a Action) String() string { return a.name }

// Builder assembles an Action, deferring validation to Build.
type Builder struct {
	action Action
	err    error
}

// NewBuilder creates an action builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{action: Action{name: name}}
}

// WithPrecondition requires the condition to hold on key before the
// action applies. A second condition on the same key replaces the first.
func (b *Builder) WithPrecondition(key string, c goal.Condition) *Builder {
	if b.err != nil {
		return b
	}
	if b.action.preconditions == nil {
		b.action.preconditions = make(map[string]goal.Condition)
	}
	b.action.preconditions[key] = c
	return b
}

// WithEffect adds an alternative effect. Effects keep declaration
// order, which fixes the order their edges are explored in.
func (b *Builder) WithEffect(e Effect) *Builder {
	if b.err != nil {
		return b
	}
	if err := e.Validate(); err != nil {
		b.err = fmt.Errorf("effect %d: %w", len(b.action.effects), err)
		return b
	}
	b.action.effects = append(b.action.effects, e)
	return b
}

// Build validates and returns the action.
func (b *Builder) Build() (Action, error) {
	if b.err != nil {
		return Action{}, b.err
	}
	if b.action.name == "" {
		return Action{}, ErrEmptyName
	}
	if len(b.action.effects) == 0 {
		return Action{}, fmt.Errorf("%w: action %q", ErrNoEffects, b.action.name)
	}
	return b.action, nil
}

// MustBuild returns the action or panics on a validation error.
func (b *Builder) MustBuild() Action {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}

type actionJSON struct {
	Name          string                    `json:"name"`
	Preconditions map[string]goal.Condition `json:"preconditions,omitempty"`
	Effects       []Effect                  `json:"effects"`
}

// MarshalJSON encodes the action's name, preconditions and effects.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionJSON{
		Name:          a.name,
		Preconditions: a.Preconditions(),
		Effects:       a.Effects(),
	})
}

// UnmarshalJSON decodes an action through the builder so the same
// validation applies.
func (a *Action) UnmarshalJSON(data []byte) error {
	var in actionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal action: %w", err)
	}
	b := NewBuilder(in.Name)
	for key, c := range in.Preconditions {
		b.WithPrecondition(key, c)
	}
	for _, e := range in.Effects {
		b.WithEffect(e)
	}
	out, err := b.Build()
	if err != nil {
		return fmt.Errorf("unmarshal action: %w", err)
	}
	*a = out
	return nil
}
