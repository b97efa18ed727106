package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Scenario is a planning problem as declared in a scenario file: a
// start state, a goal, and the catalog of actions the planner may use.
//
// Start entries are plain scalars. Goal and precondition entries are
// either a plain scalar, shorthand for equality, or a single-entry map
// naming the relation:
//
//	fed: true          # equality shorthand
//	hunger: {lt: 30}   # explicit relation (eq, neq, gt, gte, lt, lte)
type Scenario struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	Planner     PlannerSettings `json:"planner,omitempty" yaml:"planner,omitempty"`
	Start       map[string]any  `json:"start,omitempty" yaml:"start,omitempty"`
	Goal        map[string]any  `json:"goal,omitempty" yaml:"goal,omitempty"`
	Actions     []ActionDoc     `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// PlannerSettings tunes the search for one scenario. Zero fields keep
// the planner defaults; an explicit max_expansions of zero is honored
// and forbids any expansion.
type PlannerSettings struct {
	Strategy      string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	MaxExpansions *int   `json:"max_expansions,omitempty" yaml:"max_expansions,omitempty"`
}

// ActionDoc declares one action of the catalog.
type ActionDoc struct {
	Name          string         `json:"name" yaml:"name"`
	Preconditions map[string]any `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	Effects       []EffectDoc    `json:"effects" yaml:"effects"`
}

// EffectDoc declares one alternative effect of an action. A nil cost
// means the default effect cost; an explicit zero is honored.
type EffectDoc struct {
	Cost      *int          `json:"cost,omitempty" yaml:"cost,omitempty"`
	Mutations []MutationDoc `json:"mutations,omitempty" yaml:"mutations,omitempty"`
}

// MutationDoc declares one state rewrite. Delete takes no value; the
// other ops require one.
type MutationDoc struct {
	Op    string `json:"op" yaml:"op"`
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// ValidationError describes one problem found in a scenario document.
type ValidationError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Error returns the path and message of the validation error.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors collects every problem found in one validation pass.
type ValidationErrors []ValidationError

// Error returns a summary of all validation errors.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation error(s):", len(e))
	for _, err := range e {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// HasErrors reports whether any validation errors were found.
func (e ValidationErrors) HasErrors() bool { return len(e) > 0 }

type validator struct {
	errors ValidationErrors
}

func (v *validator) addError(path, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks the document without lowering it. Every problem is
// reported, each with a path into the document, in a stable order.
func (s *Scenario) Validate() ValidationErrors {
	v := &validator{}

	if s.Name == "" {
		v.addError("name", "scenario name is required")
	}
	if s.Planner.Strategy != "" {
		if _, err := planner.ParseStrategy(s.Planner.Strategy); err != nil {
			v.addError("planner.strategy",
				"unknown strategy %q (use minimize-cost or minimize-actions)", s.Planner.Strategy)
		}
	}
	if s.Planner.MaxExpansions != nil && *s.Planner.MaxExpansions < 0 {
		v.addError("planner.max_expansions", "must not be negative, got %d", *s.Planner.MaxExpansions)
	}
	for _, key := range sortedKeys(s.Start) {
		if _, err := toValue(s.Start[key]); err != nil {
			v.addError("start."+key, "%v", err)
		}
	}
	for _, key := range sortedKeys(s.Goal) {
		if _, err := parseCondition(s.Goal[key]); err != nil {
			v.addError("goal."+key, "%v", err)
		}
	}
	for i, a := range s.Actions {
		a.validate(v, fmt.Sprintf("actions[%d]", i))
	}

	return v.errors
}

func (d ActionDoc) validate(v *validator, path string) {
	if d.Name == "" {
		v.addError(path+".name", "action name is required")
	}
	for _, key := range sortedKeys(d.Preconditions) {
		if _, err := parseCondition(d.Preconditions[key]); err != nil {
			v.addError(path+".preconditions."+key, "%v", err)
		}
	}
	if len(d.Effects) == 0 {
		v.addError(path+".effects", "an action needs at least one effect")
	}
	for i, e := range d.Effects {
		e.validate(v, fmt.Sprintf("%s.effects[%d]", path, i))
	}
}

func (d EffectDoc) validate(v *validator, path string) {
	if d.Cost != nil && *d.Cost < 0 {
		v.addError(path+".cost", "must not be negative, got %d", *d.Cost)
	}
	for i, m := range d.Mutations {
		m.validate(v, fmt.Sprintf("%s.mutations[%d]", path, i))
	}
}

func (d MutationDoc) validate(v *validator, path string) {
	op, err := action.ParseOp(d.Op)
	if err != nil {
		v.addError(path+".op", "unknown op %q (use set, increment, decrement or delete)", d.Op)
		return
	}
	if d.Key == "" {
		v.addError(path+".key", "mutation key is required")
	}
	if op == action.OpDelete {
		if d.Value != nil {
			v.addError(path+".value", "delete takes no value")
		}
		return
	}
	if d.Value == nil {
		v.addError(path+".value", "%s needs a value", op)
		return
	}
	val, err := toValue(d.Value)
	if err != nil {
		v.addError(path+".value", "%v", err)
		return
	}
	if op != action.OpSet && val.Kind() != world.KindInt && val.Kind() != world.KindFloat {
		v.addError(path+".value", "%s needs a numeric amount, got %s", op, val.Kind())
	}
}

// Compiled is a scenario lowered to domain types, ready to hand to the
// planner.
type Compiled struct {
	Name          string
	Start         world.State
	Goal          goal.Goal
	Actions       []action.Action
	Strategy      planner.Strategy
	MaxExpansions int
}

// Compile lowers the document to domain types, stopping at the first
// problem. Run Validate first for a full report.
func (s *Scenario) Compile() (*Compiled, error) {
	start := make(map[string]world.Value, len(s.Start))
	for _, key := range sortedKeys(s.Start) {
		v, err := toValue(s.Start[key])
		if err != nil {
			return nil, fmt.Errorf("start.%s: %w", key, err)
		}
		start[key] = v
	}

	conditions := make(map[string]goal.Condition, len(s.Goal))
	for _, key := range sortedKeys(s.Goal) {
		c, err := parseCondition(s.Goal[key])
		if err != nil {
			return nil, fmt.Errorf("goal.%s: %w", key, err)
		}
		conditions[key] = c
	}

	actions := make([]action.Action, 0, len(s.Actions))
	for i, doc := range s.Actions {
		a, err := doc.compile()
		if err != nil {
			return nil, fmt.Errorf("actions[%d]: %w", i, err)
		}
		actions = append(actions, a)
	}

	strategy := planner.StrategyMinimizeCost
	if s.Planner.Strategy != "" {
		st, err := planner.ParseStrategy(s.Planner.Strategy)
		if err != nil {
			return nil, fmt.Errorf("planner.strategy: %w", err)
		}
		strategy = st
	}
	maxExpansions := planner.DefaultMaxExpansions
	if s.Planner.MaxExpansions != nil {
		if *s.Planner.MaxExpansions < 0 {
			return nil, fmt.Errorf("planner.max_expansions: %w: must not be negative", ErrInvalidFormat)
		}
		maxExpansions = *s.Planner.MaxExpansions
	}

	return &Compiled{
		Name:          s.Name,
		Start:         world.StateFrom(start),
		Goal:          goal.From(conditions),
		Actions:       actions,
		Strategy:      strategy,
		MaxExpansions: maxExpansions,
	}, nil
}

func (d ActionDoc) compile() (action.Action, error) {
	b := action.NewBuilder(d.Name)
	for _, key := range sortedKeys(d.Preconditions) {
		c, err := parseCondition(d.Preconditions[key])
		if err != nil {
			return action.Action{}, fmt.Errorf("preconditions.%s: %w", key, err)
		}
		b.WithPrecondition(key, c)
	}
	for i, ed := range d.Effects {
		e, err := ed.compile()
		if err != nil {
			return action.Action{}, fmt.Errorf("effects[%d]: %w", i, err)
		}
		b.WithEffect(e)
	}
	return b.Build()
}

func (d EffectDoc) compile() (action.Effect, error) {
	e := action.NewEffect()
	if d.Cost != nil {
		e = e.WithCost(*d.Cost)
	}
	for i, md := range d.Mutations {
		m, err := md.compile()
		if err != nil {
			return action.Effect{}, fmt.Errorf("mutations[%d]: %w", i, err)
		}
		e = e.WithMutation(m)
	}
	return e, nil
}

func (d MutationDoc) compile() (action.Mutation, error) {
	op, err := action.ParseOp(d.Op)
	if err != nil {
		return action.Mutation{}, err
	}
	if op == action.OpDelete {
		return action.Delete(d.Key), nil
	}
	if d.Value == nil {
		return action.Mutation{}, fmt.Errorf("%w: %s needs a value", ErrInvalidFormat, op)
	}
	v, err := toValue(d.Value)
	if err != nil {
		return action.Mutation{}, err
	}
	switch op {
	case action.OpIncrement:
		return action.Increment(d.Key, v), nil
	case action.OpDecrement:
		return action.Decrement(d.Key, v), nil
	default:
		return action.Set(d.Key, v), nil
	}
}

// parseCondition lowers a goal or precondition entry. A bare scalar is
// equality shorthand; a single-entry map names the relation.
func parseCondition(raw any) (goal.Condition, error) {
	if m, ok := raw.(map[string]any); ok {
		if len(m) != 1 {
			return goal.Condition{}, fmt.Errorf(
				"%w: a condition takes exactly one relation, got %d", ErrInvalidFormat, len(m))
		}
		for token, operand := range m {
			r, err := goal.ParseRelation(token)
			if err != nil {
				return goal.Condition{}, err
			}
			v, err := toValue(operand)
			if err != nil {
				return goal.Condition{}, err
			}
			return goal.NewCondition(r, v), nil
		}
	}
	v, err := toValue(raw)
	if err != nil {
		return goal.Condition{}, err
	}
	return goal.Eq(v), nil
}

// toValue lowers a decoded scalar to a world value. YAML hands numbers
// over as int or float64; JSON, decoded with UseNumber, hands over
// json.Number, kept as an int unless it carries a fraction or exponent.
func toValue(raw any) (world.Value, error) {
	switch v := raw.(type) {
	case bool:
		return world.Bool(v), nil
	case int:
		return world.Int(int64(v)), nil
	case int64:
		return world.Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return world.Value{}, fmt.Errorf("%w: integer %d overflows int64", ErrInvalidFormat, v)
		}
		return world.Int(int64(v)), nil
	case float64:
		return world.Float(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return world.Int(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return world.Value{}, fmt.Errorf("%w: number %q", ErrInvalidFormat, v.String())
		}
		return world.Float(f), nil
	case string:
		return world.Text(v), nil
	case nil:
		return world.Value{}, fmt.Errorf("%w: null value", ErrInvalidFormat)
	default:
		return world.Value{}, fmt.Errorf("%w: unsupported value type %T", ErrInvalidFormat, raw)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
