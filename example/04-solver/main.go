// Package main runs the solving service end to end: a scenario file, a
// persistent plan cache, structured logging, and metrics. Run it twice;
// the second run answers from the cache.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/goap-go/infrastructure/catalog"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/badger"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
	goap "github.com/felixgeelhaar/goap-go/interfaces/api"
)

func main() {
	cfg := logging.DefaultConfig()
	cfg.Level = "debug"
	logging.Init(cfg)

	loader := catalog.NewLoader()
	scn, err := loader.LoadFile("scenario.yaml")
	if err != nil {
		log.Fatalf("load scenario: %v", err)
	}
	compiled, err := scn.Compile()
	if err != nil {
		log.Fatalf("compile scenario: %v", err)
	}

	store, err := badger.NewCache(badger.Config{
		Dir: filepath.Join(os.TempDir(), "goap-solver-example"),
	})
	if err != nil {
		log.Fatalf("open plan cache: %v", err)
	}
	defer store.Close()

	p, err := goap.NewPlanner(
		goap.WithStrategy(compiled.Strategy),
		goap.WithMaxExpansions(compiled.MaxExpansions),
	)
	if err != nil {
		log.Fatalf("create planner: %v", err)
	}

	solver, err := goap.NewSolver(
		goap.WithPlanner(p),
		goap.WithCache(resilience.NewDefaultCache(store)),
		goap.WithMetrics(telemetry.NewMetricsProvider(telemetry.DefaultMetricsConfig())),
	)
	if err != nil {
		log.Fatalf("create solver: %v", err)
	}

	result, err := solver.Solve(context.Background(), goap.SolveRequest{
		Scenario: compiled.Name,
		Start:    compiled.Start,
		Actions:  compiled.Actions,
		Goal:     compiled.Goal,
	})
	if err != nil {
		log.Fatalf("solve: %v", err)
	}
	if !result.Found {
		log.Fatalf("no plan found for %q", compiled.Name)
	}

	fmt.Printf("request %s: cached=%v duration=%s\n\n", result.RequestID, result.Cached, result.Duration)
	fmt.Println(goap.FormatPlan(result.Plan))
}
