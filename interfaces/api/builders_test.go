package api_test

import (
	"testing"

	"github.com/felixgeelhaar/goap-go/interfaces/api"
)

func TestValueConstructors(t *testing.T) {
	tests := []struct {
		name string
		v    api.Value
		kind api.Kind
	}{
		{"bool", api.Bool(true), api.KindBool},
		{"int", api.Int(42), api.KindInt},
		{"float", api.Float(2.5), api.KindFloat},
		{"text", api.Text("sword"), api.KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestConditionConstructors(t *testing.T) {
	tests := []struct {
		name     string
		c        api.Condition
		relation api.Relation
		matches  api.Value
		misses   api.Value
	}{
		{"eq", api.Eq(api.Int(5)), api.RelationEqual, api.Int(5), api.Int(6)},
		{"not-eq", api.NotEq(api.Int(5)), api.RelationNotEqual, api.Int(6), api.Int(5)},
		{"gt", api.Gt(api.Int(5)), api.RelationGreater, api.Int(6), api.Int(5)},
		{"gte", api.Gte(api.Int(5)), api.RelationGreaterOrEqual, api.Int(5), api.Int(4)},
		{"lt", api.Lt(api.Int(5)), api.RelationLess, api.Int(4), api.Int(5)},
		{"lte", api.Lte(api.Int(5)), api.RelationLessOrEqual, api.Int(5), api.Int(6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Relation(); got != tt.relation {
				t.Errorf("Relation() = %v, want %v", got, tt.relation)
			}
			if !tt.c.Matches(tt.matches) {
				t.Errorf("Matches(%v) = false, want true", tt.matches)
			}
			if tt.c.Matches(tt.misses) {
				t.Errorf("Matches(%v) = true, want false", tt.misses)
			}
		})
	}
}

func TestNewCondition(t *testing.T) {
	c := api.NewCondition(api.RelationLess, api.Int(30))
	if !c.Matches(api.Int(29)) {
		t.Error("Matches(29) = false, want true")
	}
	if c.Matches(api.Int(30)) {
		t.Error("Matches(30) = true, want false")
	}
}

func TestMutationConstructors(t *testing.T) {
	start := api.NewWorldState().
		Set("gold", api.Int(10)).
		Set("alive", api.Bool(true))

	tests := []struct {
		name string
		m    api.Mutation
		op   api.Op
		key  string
		want api.Value
		gone bool
	}{
		{"set", api.Set("gold", api.Int(3)), api.OpSet, "gold", api.Int(3), false},
		{"increment", api.Increment("gold", api.Int(5)), api.OpIncrement, "gold", api.Int(15), false},
		{"decrement", api.Decrement("gold", api.Int(4)), api.OpDecrement, "gold", api.Int(6), false},
		{"delete", api.Delete("alive"), api.OpDelete, "alive", api.Value{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Op(); got != tt.op {
				t.Errorf("Op() = %v, want %v", got, tt.op)
			}
			st := tt.m.Apply(start)
			got, ok := st.Get(tt.key)
			if tt.gone {
				if ok {
					t.Errorf("key %q still present after delete", tt.key)
				}
				return
			}
			if !ok || !got.Equal(tt.want) {
				t.Errorf("state[%q] = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestWorldStateFrom(t *testing.T) {
	st := api.WorldStateFrom(map[string]api.Value{
		"hunger": api.Int(70),
		"fed":    api.Bool(false),
	})
	if got, want := st.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	v, ok := st.Get("hunger")
	if !ok || !v.Equal(api.Int(70)) {
		t.Errorf("Get(hunger) = %v, %v, want 70, true", v, ok)
	}
}

func TestGoalFrom(t *testing.T) {
	g := api.GoalFrom(map[string]api.Condition{
		"hunger": api.Lt(api.Int(30)),
		"fed":    api.Eq(api.Bool(true)),
	})
	if got, want := g.Len(), 2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}

	satisfied := api.WorldStateFrom(map[string]api.Value{
		"hunger": api.Int(10),
		"fed":    api.Bool(true),
	})
	if !g.SatisfiedBy(satisfied) {
		t.Error("SatisfiedBy = false, want true")
	}
}

func TestNewActionBuilder(t *testing.T) {
	act, err := api.NewActionBuilder("drink").
		WithPrecondition("has_water", api.Eq(api.Bool(true))).
		WithEffect(api.NewEffect().
			WithCost(2).
			WithMutation(api.Decrement("thirst", api.Int(40)))).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := act.Name(), "drink"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	ready := api.NewWorldState().
		Set("has_water", api.Bool(true)).
		Set("thirst", api.Int(90))
	if !act.Applicable(ready) {
		t.Error("Applicable = false, want true")
	}
	if act.Applicable(api.NewWorldState()) {
		t.Error("Applicable on empty state = true, want false")
	}
}

func TestNewEffect_DefaultCost(t *testing.T) {
	e := api.NewEffect().WithMutation(api.Set("done", api.Bool(true)))
	if got, want := e.Cost(), api.DefaultEffectCost; got != want {
		t.Errorf("Cost() = %d, want %d", got, want)
	}
}

func TestNewPlanner_Defaults(t *testing.T) {
	p, err := api.NewPlanner()
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	if got, want := p.MaxExpansions(), api.DefaultMaxExpansions; got != want {
		t.Errorf("MaxExpansions() = %d, want %d", got, want)
	}
	if got, want := p.Strategy(), api.StrategyMinimizeCost; got != want {
		t.Errorf("Strategy() = %v, want %v", got, want)
	}
}

func TestNewPlanner_Options(t *testing.T) {
	p, err := api.NewPlanner(
		api.WithMaxExpansions(500),
		api.WithStrategy(api.StrategyMinimizeActions),
	)
	if err != nil {
		t.Fatalf("NewPlanner: %v", err)
	}
	if got, want := p.MaxExpansions(), 500; got != want {
		t.Errorf("MaxExpansions() = %d, want %d", got, want)
	}
	if got, want := p.Strategy(), api.StrategyMinimizeActions; got != want {
		t.Errorf("Strategy() = %v, want %v", got, want)
	}
}

func TestParseHelpers(t *testing.T) {
	r, err := api.ParseRelation("lte")
	if err != nil || r != api.RelationLessOrEqual {
		t.Errorf("ParseRelation(lte) = %v, %v", r, err)
	}
	if _, err := api.ParseRelation("between"); err == nil {
		t.Error("ParseRelation(between) succeeded, want error")
	}

	op, err := api.ParseOp("increment")
	if err != nil || op != api.OpIncrement {
		t.Errorf("ParseOp(increment) = %v, %v", op, err)
	}
	if _, err := api.ParseOp("merge"); err == nil {
		t.Error("ParseOp(merge) succeeded, want error")
	}

	s, err := api.ParseStrategy("minimize-actions")
	if err != nil || s != api.StrategyMinimizeActions {
		t.Errorf("ParseStrategy(minimize-actions) = %v, %v", s, err)
	}
	if _, err := api.ParseStrategy("fastest"); err == nil {
		t.Error("ParseStrategy(fastest) succeeded, want error")
	}
}
