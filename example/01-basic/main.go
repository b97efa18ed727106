// Package main demonstrates the smallest possible plan: buy food, then
// eat it.
package main

import (
	"fmt"
	"log"

	goap "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func main() {
	// Define the initial world state
	start := goap.NewWorldState().
		Set("is_hungry", goap.Bool(true)).
		Set("has_food", goap.Bool(false))

	// Define the goal: not hungry
	target := goap.NewGoal().
		With("is_hungry", goap.Eq(goap.Bool(false)))

	// Define available actions
	buyFood := goap.NewActionBuilder("buy_food").
		WithEffect(goap.NewEffect().
			WithCost(2).
			WithMutation(goap.Set("has_food", goap.Bool(true)))).
		MustBuild()

	eat := goap.NewActionBuilder("eat").
		WithPrecondition("has_food", goap.Eq(goap.Bool(true))).
		WithEffect(goap.NewEffect().
			WithMutation(goap.Set("is_hungry", goap.Bool(false))).
			WithMutation(goap.Set("has_food", goap.Bool(false)))).
		MustBuild()

	// Find the optimal plan: buy_food then eat, total cost 3
	plan, err := goap.MakePlan(start, []goap.Action{buyFood, eat}, target)
	if err != nil {
		log.Fatalf("planning failed: %v", err)
	}

	fmt.Println(goap.FormatPlan(plan))
}
