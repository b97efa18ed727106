package application

import (
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
)

// Verify replays a plan from its start state and checks that it is
// internally consistent and actually achieves the goal: every step's
// preconditions hold in the state the previous steps produced, every
// recorded state matches the replay, the cost is the sum of the chosen
// effects' costs, and the final state satisfies the goal.
//
// Verification catches plans invalidated after the fact, such as a
// cached plan whose catalog has since changed, or a plan deserialized
// from an untrusted source.
func Verify(p *plan.Plan, target goal.Goal) error {
	if p == nil {
		return ErrNilPlan
	}

	state := p.Start()
	cost := 0

	for i, step := range p.Steps() {
		act := step.Action()
		if !act.Applicable(state) {
			return fmt.Errorf("step %d (%s): %w", i, act.Name(), ErrPreconditionViolated)
		}

		state = step.Effect().Apply(state)
		if state.Fingerprint() != step.After().Fingerprint() {
			return fmt.Errorf("step %d (%s): %w", i, act.Name(), ErrStateMismatch)
		}

		cost += step.Effect().Cost()
	}

	if cost != p.Cost() {
		return fmt.Errorf("%w: steps sum to %d, plan says %d", ErrCostMismatch, cost, p.Cost())
	}
	if !target.SatisfiedBy(state) {
		return fmt.Errorf("%w: final state %s does not satisfy %s", ErrGoalNotReached, state, target)
	}

	return nil
}
