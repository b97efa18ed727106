package plan

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

func twoStepPlan(t *testing.T) *Plan {
	t.Helper()

	start := world.NewState().
		Set("hunger", world.Int(5)).
		Set("has_food", world.Bool(false))

	buyEffect := action.NewEffect().WithMutation(action.Set("has_food", world.Bool(true)))
	buy := action.NewBuilder("buy_food").
		WithPrecondition("has_food", goal.Eq(world.Bool(false))).
		WithEffect(buyEffect).
		MustBuild()

	eatEffect := action.NewEffect().
		WithMutation(action.Set("has_food", world.Bool(false))).
		WithMutation(action.Decrement("hunger", world.Int(3)))
	eat := action.NewBuilder("eat").
		WithPrecondition("has_food", goal.Eq(world.Bool(true))).
		WithEffect(eatEffect).
		MustBuild()

	afterBuy := buyEffect.Apply(start)
	afterEat := eatEffect.Apply(afterBuy)

	return New(start, []Step{
		NewStep(buy, buyEffect, afterBuy),
		NewStep(eat, eatEffect, afterEat),
	}, 2)
}

func TestPlanAccessors(t *testing.T) {
	p := twoStepPlan(t)

	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
	if p.Cost() != 2 {
		t.Errorf("Cost() = %d, want 2", p.Cost())
	}

	steps := p.Steps()
	if steps[0].Action().Name() != "buy_food" || steps[1].Action().Name() != "eat" {
		t.Errorf("steps out of order: %s, %s", steps[0].Action().Name(), steps[1].Action().Name())
	}

	effects := p.Effects()
	if len(effects) != 2 {
		t.Fatalf("Effects() len = %d, want 2", len(effects))
	}
	if effects[1].Len() != 2 {
		t.Errorf("second effect has %d mutations, want 2", effects[1].Len())
	}

	final := p.Final()
	if v, _ := final.Get("hunger"); !v.Equal(world.Int(2)) {
		t.Errorf("final hunger = %v, want 2", v)
	}
}

func TestEmptyPlan(t *testing.T) {
	start := world.NewState().Set("done", world.Bool(true))
	p := New(start, nil, 0)
	if p.Len() != 0 || p.Cost() != 0 {
		t.Errorf("empty plan Len/Cost = %d/%d, want 0/0", p.Len(), p.Cost())
	}
	if !p.Final().Equal(start) {
		t.Error("Final() of empty plan is not the start state")
	}
	if got := p.String(); got != "empty plan (cost 0)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPlanString(t *testing.T) {
	p := twoStepPlan(t)
	want := "buy_food -> eat (cost 2)"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPlanStepsCopy(t *testing.T) {
	p := twoStepPlan(t)
	steps := p.Steps()
	steps[0] = Step{}
	if p.Steps()[0].Action().Name() != "buy_food" {
		t.Error("Steps() exposed internal slice")
	}
}

func TestPlanFormat(t *testing.T) {
	p := twoStepPlan(t)
	got := p.Format()

	wantParts := []string{
		"= INITIAL STATE",
		"has_food = false",
		"hunger = 5",
		`= DO ACTION "buy_food"`,
		"MUTATES:",
		"set has_food = true",
		`= DO ACTION "eat"`,
		"decrement hunger by 3",
		"= FINAL STATE (COST: 2)",
		"hunger = 2",
	}
	for _, part := range wantParts {
		if !strings.Contains(got, part) {
			t.Errorf("Format() missing %q\n%s", part, got)
		}
	}

	// The report must list the initial state before any action and the
	// final section last.
	if strings.Index(got, "= INITIAL STATE") > strings.Index(got, "= DO ACTION") {
		t.Error("initial state section not first")
	}
	if strings.Index(got, "= FINAL STATE") < strings.Index(got, `= DO ACTION "eat"`) {
		t.Error("final state section not last")
	}

	// Stable output for stable input.
	if p.Format() != got {
		t.Error("Format() is not deterministic")
	}
}

func TestPlanFormatEmpty(t *testing.T) {
	p := New(world.NewState(), nil, 0)
	got := p.Format()
	if !strings.Contains(got, "= INITIAL STATE") || !strings.Contains(got, "= FINAL STATE (COST: 0)") {
		t.Errorf("Format() of empty plan missing sections:\n%s", got)
	}
	if !strings.Contains(got, "(empty)") {
		t.Errorf("Format() of empty state missing placeholder:\n%s", got)
	}
}

func TestPlanJSONRoundTrip(t *testing.T) {
	p := twoStepPlan(t)
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Plan
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Len() != p.Len() || got.Cost() != p.Cost() {
		t.Fatalf("round trip Len/Cost = %d/%d, want %d/%d", got.Len(), got.Cost(), p.Len(), p.Cost())
	}
	if !got.Start().Equal(p.Start()) {
		t.Error("round trip changed the start state")
	}
	if !got.Final().Equal(p.Final()) {
		t.Error("round trip changed the final state")
	}
	// Preconditions must survive so a decoded plan can be verified.
	pre := got.Steps()[1].Action().Preconditions()
	c, ok := pre["has_food"]
	if !ok {
		t.Fatal("round trip lost preconditions")
	}
	if !c.Value().Equal(world.Bool(true)) {
		t.Errorf("round trip precondition = %v", c)
	}
	if got.Format() != p.Format() {
		t.Error("round trip changed the formatted report")
	}
}
