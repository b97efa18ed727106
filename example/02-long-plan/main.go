// Package main shows a plan with many steps. Robbing yields one gold at
// a time and burns energy and hunger margin, so reaching seven gold
// forces the planner through repeated sleep/eat/rob cycles.
package main

import (
	"fmt"
	"log"

	goap "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func main() {
	start := goap.NewWorldState().
		Set("energy", goap.Int(30)).
		Set("hunger", goap.Int(70)).
		Set("gold", goap.Int(0))

	target := goap.NewGoal().
		With("gold", goap.Eq(goap.Int(7)))

	sleep := goap.NewActionBuilder("sleep").
		WithEffect(goap.NewEffect().
			WithMutation(goap.Increment("energy", goap.Int(10)))).
		MustBuild()

	eat := goap.NewActionBuilder("eat").
		WithPrecondition("energy", goap.Gte(goap.Int(26))).
		WithEffect(goap.NewEffect().
			WithMutation(goap.Decrement("hunger", goap.Int(10)))).
		MustBuild()

	rob := goap.NewActionBuilder("rob").
		WithPrecondition("hunger", goap.Lte(goap.Int(50))).
		WithPrecondition("energy", goap.Gte(goap.Int(50))).
		WithEffect(goap.NewEffect().
			WithMutation(goap.Increment("gold", goap.Int(1))).
			WithMutation(goap.Decrement("energy", goap.Int(5))).
			WithMutation(goap.Increment("hunger", goap.Int(5)))).
		MustBuild()

	actions := []goap.Action{sleep, eat, rob}

	plan, err := goap.MakePlan(start, actions, target)
	if err != nil {
		log.Fatalf("planning failed: %v", err)
	}

	fmt.Println(goap.FormatPlan(plan))
	fmt.Printf("%d steps, cost %d\n", plan.Len(), plan.Cost())
}
