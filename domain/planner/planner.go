// Package planner searches for the lowest-cost action sequence
// transforming a start state into one satisfying a goal.
//
// The search is best-first over the implicit graph whose vertices are
// world states and whose edges are (action, effect) pairs, ordered by
// f = g + h with h counting unsatisfied goal conditions. The heuristic
// never overestimates, and plans are therefore optimal, as long as any
// effect able to satisfy a goal condition costs at least one; catalogs
// with free goal-satisfying effects trade that guarantee away.
package planner

import (
	"container/heap"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// DefaultMaxExpansions is the expansion budget of a planner built
// without WithMaxExpansions.
const DefaultMaxExpansions = 100_000

// Planner runs best-first searches over action catalogs. A Planner is
// immutable after New and safe for concurrent use; each FindPlan call
// keeps all search state on its own stack.
type Planner struct {
	maxExpansions int
	strategy      Strategy
}

// Option configures a Planner.
type Option func(*Planner)

// WithMaxExpansions bounds how many nodes a single search may expand.
// A search that exceeds the bound reports no plan. Zero forbids any
// expansion, so only already-satisfied goals succeed.
func WithMaxExpansions(n int) Option {
	return func(p *Planner) {
		p.maxExpansions = n
	}
}

// WithStrategy selects what edge weight the search minimizes.
func WithStrategy(s Strategy) Option {
	return func(p *Planner) {
		p.strategy = s
	}
}

// New builds a Planner, rejecting invalid configuration.
func New(opts ...Option) (*Planner, error) {
	p := &Planner{
		maxExpansions: DefaultMaxExpansions,
		strategy:      StrategyMinimizeCost,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxExpansions < 0 {
		return nil, ErrInvalidBudget
	}
	if !p.strategy.Valid() {
		return nil, ErrInvalidStrategy
	}
	return p, nil
}

// MaxExpansions returns the expansion budget.
func (p *Planner) MaxExpansions() int { return p.maxExpansions }

// Strategy returns the configured strategy.
func (p *Planner) Strategy() Strategy { return p.strategy }

// Stats describes one search.
type Stats struct {
	// NodesExpanded counts nodes whose successors were generated.
	NodesExpanded int
	// NodesGenerated counts nodes created, including the root.
	NodesGenerated int
	// NodesReopened counts states re-queued after a strictly better
	// path to them was found.
	NodesReopened int
	// FrontierPeak is the largest size the open set reached.
	FrontierPeak int
	// BudgetExhausted reports whether the search stopped because it hit
	// the expansion budget rather than exhausting reachable states.
	BudgetExhausted bool
}

// FindPlan searches for a lowest-weight plan from start to a state
// satisfying target. It reports false when no plan exists among
// reachable states or the expansion budget ran out. Identical inputs
// produce identical plans.
func (p *Planner) FindPlan(start world.State, catalog []action.Action, target goal.Goal) (*plan.Plan, bool) {
	result, _, found := p.FindPlanStats(start, catalog, target)
	return result, found
}

// FindPlanStats is FindPlan with search statistics.
func (p *Planner) FindPlanStats(start world.State, catalog []action.Action, target goal.Goal) (*plan.Plan, Stats, bool) {
	var stats Stats

	arena := []node{{
		state:  start,
		key:    start.Fingerprint(),
		g:      0,
		h:      target.UnsatisfiedCount(start),
		parent: -1,
		act:    -1,
		eff:    -1,
	}}
	stats.NodesGenerated = 1

	open := make(frontier, 0, 16)
	heap.Push(&open, frontierItem{f: arena[0].h, g: 0, seq: 0, node: 0})
	stats.FrontierPeak = 1
	var seq uint64 = 1

	// bestG records the cheapest g seen per state fingerprint. Entries
	// are written when a node is generated, so a later pop with a worse
	// g is stale and gets skipped.
	bestG := map[string]int{arena[0].key: 0}

	for open.Len() > 0 {
		it := heap.Pop(&open).(frontierItem)
		cur := arena[it.node]

		if it.g > bestG[cur.key] {
			continue
		}

		if target.SatisfiedBy(cur.state) {
			return extract(arena, it.node, start, catalog), stats, true
		}

		if stats.NodesExpanded >= p.maxExpansions {
			stats.BudgetExhausted = true
			return nil, stats, false
		}
		stats.NodesExpanded++

		for ai := range catalog {
			if !catalog[ai].Applicable(cur.state) {
				continue
			}
			for ei, eff := range catalog[ai].Effects() {
				next := eff.Apply(cur.state)
				key := next.Fingerprint()

				weight := eff.Cost()
				if p.strategy == StrategyMinimizeActions {
					weight = 1
				}
				ng := cur.g + weight

				if prev, seen := bestG[key]; seen {
					if ng >= prev {
						continue
					}
					stats.NodesReopened++
				}
				bestG[key] = ng

				nh := target.UnsatisfiedCount(next)
				arena = append(arena, node{
					state:  next,
					key:    key,
					g:      ng,
					h:      nh,
					parent: it.node,
					act:    ai,
					eff:    ei,
				})
				stats.NodesGenerated++

				heap.Push(&open, frontierItem{f: ng + nh, g: ng, seq: seq, node: len(arena) - 1})
				seq++
				if open.Len() > stats.FrontierPeak {
					stats.FrontierPeak = open.Len()
				}
			}
		}
	}

	return nil, stats, false
}

// extract rebuilds the step sequence by walking parent links from the
// goal node to the root. The plan's cost is the sum of the chosen
// effects' costs, which under StrategyMinimizeActions can differ from
// the minimized edge weight.
func extract(arena []node, goalIdx int, start world.State, catalog []action.Action) *plan.Plan {
	count := 0
	for i := goalIdx; arena[i].parent >= 0; i = arena[i].parent {
		count++
	}

	steps := make([]plan.Step, count)
	cost := 0
	i := goalIdx
	for pos := count - 1; pos >= 0; pos-- {
		n := arena[i]
		act := catalog[n.act]
		eff := act.Effects()[n.eff]
		steps[pos] = plan.NewStep(act, eff, n.state)
		cost += eff.Cost()
		i = n.parent
	}

	return plan.New(start, steps, cost)
}
