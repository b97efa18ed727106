// Package main plans one scenario under both strategies. Walking three
// times costs 3 in total; a single teleport costs 10. Minimizing cost
// picks the walks, minimizing actions picks the teleport.
package main

import (
	"fmt"
	"log"

	goap "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func main() {
	start := goap.NewWorldState().
		Set("distance", goap.Int(0))

	target := goap.NewGoal().
		With("distance", goap.Gte(goap.Int(3)))

	walk := goap.NewActionBuilder("walk").
		WithEffect(goap.NewEffect().
			WithMutation(goap.Increment("distance", goap.Int(1)))).
		MustBuild()

	teleport := goap.NewActionBuilder("teleport").
		WithEffect(goap.NewEffect().
			WithCost(10).
			WithMutation(goap.Set("distance", goap.Int(3)))).
		MustBuild()

	actions := []goap.Action{walk, teleport}

	for _, strategy := range []goap.Strategy{
		goap.StrategyMinimizeCost,
		goap.StrategyMinimizeActions,
	} {
		plan, err := goap.MakePlanWithStrategy(strategy, start, actions, target)
		if err != nil {
			log.Fatalf("planning with %s failed: %v", strategy, err)
		}

		fmt.Printf("%s: %d steps, cost %d\n", strategy, plan.Len(), plan.Cost())
		for i, step := range plan.Steps() {
			fmt.Printf("  %d. %s\n", i+1, step.Action().Name())
		}
		fmt.Println()
	}
}
