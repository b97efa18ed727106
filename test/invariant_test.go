// Package test contains the invariant test suite for the planner.
package test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/felixgeelhaar/goap-go/application"
	"github.com/felixgeelhaar/goap-go/domain/cache"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/memory"
	api "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func survivalActions() []api.Action {
	buyFood := api.NewActionBuilder("buy_food").
		WithEffect(api.NewEffect().
			WithCost(2).
			WithMutation(api.Set("has_food", api.Bool(true)))).
		MustBuild()
	eat := api.NewActionBuilder("eat").
		WithPrecondition("has_food", api.Eq(api.Bool(true))).
		WithEffect(api.NewEffect().
			WithMutation(api.Set("is_hungry", api.Bool(false))).
			WithMutation(api.Set("has_food", api.Bool(false)))).
		MustBuild()
	return []api.Action{buyFood, eat}
}

func hungryStart() api.WorldState {
	return api.NewWorldState().
		Set("is_hungry", api.Bool(true)).
		Set("has_food", api.Bool(false))
}

func hungryGoal() api.Goal {
	return api.NewGoal().With("is_hungry", api.Eq(api.Bool(false)))
}

// goldActions is a catalog whose plans need a dozen steps and where
// numeric increments could generate states forever.
func goldActions() []api.Action {
	sleep := api.NewActionBuilder("sleep").
		WithEffect(api.NewEffect().
			WithMutation(api.Increment("energy", api.Int(10)))).
		MustBuild()
	eat := api.NewActionBuilder("eat").
		WithPrecondition("energy", api.Gte(api.Int(26))).
		WithEffect(api.NewEffect().
			WithMutation(api.Decrement("hunger", api.Int(10)))).
		MustBuild()
	rob := api.NewActionBuilder("rob").
		WithPrecondition("hunger", api.Lte(api.Int(50))).
		WithPrecondition("energy", api.Gte(api.Int(50))).
		WithEffect(api.NewEffect().
			WithMutation(api.Increment("gold", api.Int(1))).
			WithMutation(api.Decrement("energy", api.Int(5))).
			WithMutation(api.Increment("hunger", api.Int(5)))).
		MustBuild()
	return []api.Action{sleep, eat, rob}
}

func goldStart() api.WorldState {
	return api.NewWorldState().
		Set("energy", api.Int(30)).
		Set("hunger", api.Int(70)).
		Set("gold", api.Int(0))
}

// =============================================================================
// Invariant 1: Determinism
// Identical inputs always yield byte-identical plans and costs.
// =============================================================================

func TestInvariant_Determinism(t *testing.T) {
	t.Run("repeated_runs_yield_identical_plans", func(t *testing.T) {
		start := goldStart()
		actions := goldActions()
		target := api.NewGoal().With("gold", api.Eq(api.Int(3)))

		first, err := api.MakePlan(start, actions, target)
		if err != nil {
			t.Fatalf("MakePlan: %v", err)
		}
		firstJSON, err := json.Marshal(first)
		if err != nil {
			t.Fatalf("marshal plan: %v", err)
		}

		for i := 0; i < 10; i++ {
			next, err := api.MakePlan(start, actions, target)
			if err != nil {
				t.Fatalf("MakePlan run %d: %v", i, err)
			}
			nextJSON, err := json.Marshal(next)
			if err != nil {
				t.Fatalf("marshal plan run %d: %v", i, err)
			}
			if string(firstJSON) != string(nextJSON) {
				t.Fatalf("run %d produced a different plan:\nfirst: %s\nnow:   %s", i, firstJSON, nextJSON)
			}
		}
	})

	t.Run("formatting_is_stable", func(t *testing.T) {
		first, err := api.MakePlan(hungryStart(), survivalActions(), hungryGoal())
		if err != nil {
			t.Fatalf("MakePlan: %v", err)
		}
		second, err := api.MakePlan(hungryStart(), survivalActions(), hungryGoal())
		if err != nil {
			t.Fatalf("MakePlan: %v", err)
		}
		if api.FormatPlan(first) != api.FormatPlan(second) {
			t.Error("two runs rendered differently")
		}
	})
}

// =============================================================================
// Invariant 2: Soundness
// Replaying a returned plan from its start state reaches the goal, and
// the replayed cost matches the reported cost.
// =============================================================================

func TestInvariant_Soundness(t *testing.T) {
	scenarios := []struct {
		name    string
		start   api.WorldState
		actions []api.Action
		goal    api.Goal
	}{
		{"survival", hungryStart(), survivalActions(), hungryGoal()},
		{"one_gold", goldStart(), goldActions(), api.NewGoal().With("gold", api.Eq(api.Int(1)))},
		{"seven_gold", goldStart(), goldActions(), api.NewGoal().With("gold", api.Eq(api.Int(7)))},
	}
	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			p, err := api.MakePlan(sc.start, sc.actions, sc.goal)
			if err != nil {
				t.Fatalf("MakePlan: %v", err)
			}
			if err := api.VerifyPlan(p, sc.goal); err != nil {
				t.Errorf("plan does not replay: %v", err)
			}
		})
	}
}

// =============================================================================
// Invariant 3: Optimality
// No reachable action sequence beats the returned plan's cost, checked
// by brute-force enumeration on a small catalog.
// =============================================================================

func TestInvariant_Optimality(t *testing.T) {
	start := hungryStart()
	actions := survivalActions()
	target := hungryGoal()

	p, err := api.MakePlan(start, actions, target)
	if err != nil {
		t.Fatalf("MakePlan: %v", err)
	}

	best := bruteForceMinCost(start, actions, target, 6)
	if best < 0 {
		t.Fatal("brute force found no plan, planner did")
	}
	if p.Cost() != best {
		t.Errorf("plan cost = %d, brute-force minimum = %d", p.Cost(), best)
	}
}

// bruteForceMinCost enumerates every action sequence up to maxDepth and
// returns the cheapest total cost reaching the goal, or -1.
func bruteForceMinCost(start api.WorldState, actions []api.Action, target api.Goal, maxDepth int) int {
	best := -1
	var walk func(st api.WorldState, depth, cost int)
	walk = func(st api.WorldState, depth, cost int) {
		if best >= 0 && cost >= best {
			return
		}
		if target.SatisfiedBy(st) {
			best = cost
			return
		}
		if depth == maxDepth {
			return
		}
		for _, a := range actions {
			if !a.Applicable(st) {
				continue
			}
			for _, e := range a.Effects() {
				walk(e.Apply(st), depth+1, cost+e.Cost())
			}
		}
	}
	walk(start, 0, 0)
	return best
}

// =============================================================================
// Invariant 4: Termination
// Unreachable goals report no plan instead of hanging, even when
// numeric mutations can generate fresh states forever.
// =============================================================================

func TestInvariant_Termination(t *testing.T) {
	t.Run("unreachable_goal_reports_no_plan", func(t *testing.T) {
		target := api.NewGoal().With("has_weapon", api.Eq(api.Bool(true)))
		_, err := api.MakePlan(hungryStart(), survivalActions(), target)
		if err == nil {
			t.Fatal("expected no-plan error for unreachable goal")
		}
	})

	t.Run("budget_bounds_unbounded_state_growth", func(t *testing.T) {
		// Reaching 1000 gold needs thousands of steps, far beyond the
		// budget, and sleep alone generates fresh energy values forever.
		p, err := api.NewPlanner(api.WithMaxExpansions(2000))
		if err != nil {
			t.Fatalf("NewPlanner: %v", err)
		}
		target := api.NewGoal().With("gold", api.Eq(api.Int(1000)))
		result, stats, found := p.FindPlanStats(goldStart(), goldActions(), target)
		if found {
			t.Fatalf("found a plan of %d steps, expected budget exhaustion", result.Len())
		}
		if !stats.BudgetExhausted {
			t.Error("stats.BudgetExhausted = false, want true")
		}
		if stats.NodesExpanded > 2000 {
			t.Errorf("expanded %d nodes, budget was 2000", stats.NodesExpanded)
		}
	})
}

// =============================================================================
// Invariant 5: Absent keys
// A condition on a key the state never set evaluates false for every
// relation; plans can only come from actions that set the key.
// =============================================================================

func TestInvariant_AbsentKeys(t *testing.T) {
	start := api.NewWorldState()

	relations := []struct {
		name string
		c    api.Condition
	}{
		{"eq", api.Eq(api.Int(0))},
		{"not_eq", api.NotEq(api.Int(0))},
		{"gt", api.Gt(api.Int(-1))},
		{"gte", api.Gte(api.Int(0))},
		{"lt", api.Lt(api.Int(1))},
		{"lte", api.Lte(api.Int(0))},
	}
	for _, r := range relations {
		t.Run(r.name, func(t *testing.T) {
			target := api.NewGoal().With("missing", r.c)
			if target.SatisfiedBy(start) {
				t.Error("goal on absent key satisfied, want unsatisfied")
			}
			_, err := api.MakePlan(start, nil, target)
			if err == nil {
				t.Error("expected no-plan error with an empty catalog")
			}
		})
	}
}

// =============================================================================
// Invariant 6: Cache transparency
// A solver with a cache returns plans equivalent to a cacheless solve,
// and a failing cache never fails the solve.
// =============================================================================

func TestInvariant_CacheTransparency(t *testing.T) {
	ctx := context.Background()
	req := application.Request{
		Scenario: "survival",
		Start:    hungryStart(),
		Actions:  survivalActions(),
		Goal:     hungryGoal(),
	}

	bare, err := api.NewSolver()
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	baseline, err := bare.Solve(ctx, req)
	if err != nil {
		t.Fatalf("Solve without cache: %v", err)
	}

	cached, err := api.NewSolver(api.WithCache(memory.NewCache()))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	for round := 0; round < 2; round++ {
		result, err := cached.Solve(ctx, req)
		if err != nil {
			t.Fatalf("Solve round %d: %v", round, err)
		}
		if result.Plan.Cost() != baseline.Plan.Cost() {
			t.Errorf("round %d cost = %d, cacheless cost = %d", round, result.Plan.Cost(), baseline.Plan.Cost())
		}
		if result.Plan.Len() != baseline.Plan.Len() {
			t.Errorf("round %d length = %d, cacheless length = %d", round, result.Plan.Len(), baseline.Plan.Len())
		}
		if err := api.VerifyPlan(result.Plan, req.Goal); err != nil {
			t.Errorf("round %d plan does not replay: %v", round, err)
		}
		wantCached := round > 0
		if result.Cached != wantCached {
			t.Errorf("round %d Cached = %v, want %v", round, result.Cached, wantCached)
		}
	}

	broken, err := api.NewSolver(api.WithCache(failingCache{}))
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	result, err := broken.Solve(ctx, req)
	if err != nil {
		t.Fatalf("Solve with failing cache: %v", err)
	}
	if !result.Found {
		t.Error("failing cache prevented planning")
	}
}

// failingCache errors on every operation.
type failingCache struct{}

var _ cache.Cache = failingCache{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, context.DeadlineExceeded
}

func (failingCache) Set(context.Context, string, []byte, cache.SetOptions) error {
	return context.DeadlineExceeded
}

func (failingCache) Delete(context.Context, string) error { return context.DeadlineExceeded }

func (failingCache) Exists(context.Context, string) (bool, error) {
	return false, context.DeadlineExceeded
}

func (failingCache) Clear(context.Context) error { return context.DeadlineExceeded }
