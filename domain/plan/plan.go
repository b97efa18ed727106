// Package plan represents the product of a successful search: an
// ordered sequence of action steps from a start state to a goal state.
package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Step is one executed edge of a plan: the action taken, the effect
// chosen among the action's alternatives, and the world state after
// applying it.
type Step struct {
	act    action.Action
	effect action.Effect
	after  world.State
}

// NewStep builds a plan step.
func NewStep(act action.Action, effect action.Effect, after world.State) Step {
	return Step{act: act, effect: effect, after: after}
}

// Action returns the action taken in this step.
func (s Step) Action() action.Action { return s.act }

// Effect returns the effect chosen among the action's alternatives.
func (s Step) Effect() action.Effect { return s.effect }

// After returns the world state after this step.
func (s Step) After() world.State { return s.after }

// Plan is an ordered sequence of steps transforming a start state into
// one satisfying some goal, together with the total effect cost of the
// sequence. A zero-step plan means the start state already satisfied
// the goal.
type Plan struct {
	start world.State
	steps []Step
	cost  int
}

// New builds a plan from its start state, steps and total cost. The
// steps slice is copied.
func New(start world.State, steps []Step, cost int) *Plan {
	ss := make([]Step, len(steps))
	copy(ss, steps)
	return &Plan{start: start, steps: ss, cost: cost}
}

// Start returns the state the plan begins from.
func (p *Plan) Start() world.State { return p.start }

// Steps returns a copy of the plan's steps in execution order.
func (p *Plan) Steps() []Step {
	ss := make([]Step, len(p.steps))
	copy(ss, p.steps)
	return ss
}

// Effects returns the chosen effect of each step in execution order.
func (p *Plan) Effects() []action.Effect {
	es := make([]action.Effect, len(p.steps))
	for i, s := range p.steps {
		es[i] = s.effect
	}
	return es
}

// Cost returns the summed effect cost of all steps.
func (p *Plan) Cost() int { return p.cost }

// Len returns the number of steps.
func (p *Plan) Len() int { return len(p.steps) }

// Final returns the state after the last step, or the start state for
// an empty plan.
func (p *Plan) Final() world.State {
	if len(p.steps) == 0 {
		return p.start
	}
	return p.steps[len(p.steps)-1].after
}

// String renders the plan as a one-line action sequence.
func (p *Plan) String() string {
	if len(p.steps) == 0 {
		return fmt.Sprintf("empty plan (cost %d)", p.cost)
	}
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.act.Name()
	}
	return fmt.Sprintf("%s (cost %d)", strings.Join(names, " -> "), p.cost)
}

type stepJSON struct {
	Action action.Action `json:"action"`
	Effect action.Effect `json:"effect"`
	After  world.State   `json:"after"`
}

type planJSON struct {
	Start world.State `json:"start"`
	Steps []stepJSON  `json:"steps"`
	Cost  int         `json:"cost"`
}

// MarshalJSON encodes the plan with full action detail, so a decoded
// plan can still be verified against its preconditions.
func (p *Plan) MarshalJSON() ([]byte, error) {
	steps := make([]stepJSON, len(p.steps))
	for i, s := range p.steps {
		steps[i] = stepJSON{Action: s.act, Effect: s.effect, After: s.after}
	}
	return json.Marshal(planJSON{Start: p.start, Steps: steps, Cost: p.cost})
}

// UnmarshalJSON decodes a plan.
func (p *Plan) UnmarshalJSON(data []byte) error {
	var in planJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshal plan: %w", err)
	}
	steps := make([]Step, len(in.Steps))
	for i, s := range in.Steps {
		steps[i] = Step{act: s.Action, effect: s.Effect, after: s.After}
	}
	p.start = in.Start
	p.steps = steps
	p.cost = in.Cost
	return nil
}
