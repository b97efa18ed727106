// Package telemetry provides OpenTelemetry metrics for the planner and
// the solver built on top of it.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	plansFound    metric.Int64Counter
	plansNotFound metric.Int64Counter
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
	errors        metric.Int64Counter

	// Histograms
	planningDuration metric.Float64Histogram
	nodesExpanded    metric.Float64Histogram
	planCost         metric.Float64Histogram
	planLength       metric.Float64Histogram

	// Gauges (UpDownCounter in OpenTelemetry)
	activeSolves metric.Int64UpDownCounter

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/felixgeelhaar/goap-go").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// Attributes are default attributes to attach to all metrics.
	Attributes []attribute.KeyValue
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/goap-go",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	// Counters
	mp.plansFound, err = mp.meter.Int64Counter(
		"goap.plans.found",
		metric.WithDescription("Number of planning requests that produced a plan"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return err
	}

	mp.plansNotFound, err = mp.meter.Int64Counter(
		"goap.plans.not_found",
		metric.WithDescription("Number of planning requests with no reachable goal"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return err
	}

	mp.cacheHits, err = mp.meter.Int64Counter(
		"goap.cache.hits",
		metric.WithDescription("Number of plan cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return err
	}

	mp.cacheMisses, err = mp.meter.Int64Counter(
		"goap.cache.misses",
		metric.WithDescription("Number of plan cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return err
	}

	mp.errors, err = mp.meter.Int64Counter(
		"goap.errors",
		metric.WithDescription("Number of errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	// Histograms
	mp.planningDuration, err = mp.meter.Float64Histogram(
		"goap.planning.duration",
		metric.WithDescription("Duration of planning searches"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.nodesExpanded, err = mp.meter.Float64Histogram(
		"goap.planning.nodes_expanded",
		metric.WithDescription("Nodes expanded per planning search"),
		metric.WithUnit("{node}"),
	)
	if err != nil {
		return err
	}

	mp.planCost, err = mp.meter.Float64Histogram(
		"goap.plan.cost",
		metric.WithDescription("Total effect cost of found plans"),
		metric.WithUnit("{cost}"),
	)
	if err != nil {
		return err
	}

	mp.planLength, err = mp.meter.Float64Histogram(
		"goap.plan.length",
		metric.WithDescription("Number of steps in found plans"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return err
	}

	// Gauges (UpDownCounters)
	mp.activeSolves, err = mp.meter.Int64UpDownCounter(
		"goap.solves.active",
		metric.WithDescription("Number of planning requests in flight"),
		metric.WithUnit("{solve}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordPlanning records the outcome of one planning search.
func (mp *MetricsProvider) RecordPlanning(ctx context.Context, strategy string, found bool, budgetExhausted bool, duration time.Duration, nodesExpanded int64) {
	attrs := []attribute.KeyValue{
		attribute.String("strategy", strategy),
		attribute.Bool("budget.exhausted", budgetExhausted),
	}

	if found {
		mp.plansFound.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		mp.plansNotFound.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	mp.planningDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	mp.nodesExpanded.Record(ctx, float64(nodesExpanded), metric.WithAttributes(attrs...))
}

// RecordPlan records the shape of a found plan.
func (mp *MetricsProvider) RecordPlan(ctx context.Context, strategy string, cost, length int) {
	attrs := []attribute.KeyValue{
		attribute.String("strategy", strategy),
	}

	mp.planCost.Record(ctx, float64(cost), metric.WithAttributes(attrs...))
	mp.planLength.Record(ctx, float64(length), metric.WithAttributes(attrs...))
}

// RecordCacheHit records a plan cache hit.
func (mp *MetricsProvider) RecordCacheHit(ctx context.Context, strategy string) {
	mp.cacheHits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
}

// RecordCacheMiss records a plan cache miss.
func (mp *MetricsProvider) RecordCacheMiss(ctx context.Context, strategy string) {
	mp.cacheMisses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
}

// RecordError records an error.
func (mp *MetricsProvider) RecordError(ctx context.Context, errorType string, details map[string]string) {
	attrs := []attribute.KeyValue{
		attribute.String("error.type", errorType),
	}
	for k, v := range details {
		attrs = append(attrs, attribute.String(k, v))
	}

	mp.errors.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// IncrementActiveSolves increments the in-flight solve counter.
func (mp *MetricsProvider) IncrementActiveSolves(ctx context.Context) {
	mp.activeSolves.Add(ctx, 1)
}

// DecrementActiveSolves decrements the in-flight solve counter.
func (mp *MetricsProvider) DecrementActiveSolves(ctx context.Context) {
	mp.activeSolves.Add(ctx, -1)
}

// NoopMetricsProvider is a no-op metrics provider for testing or when
// metrics are disabled.
type NoopMetricsProvider struct{}

// RecordPlanning is a no-op.
func (n *NoopMetricsProvider) RecordPlanning(ctx context.Context, strategy string, found bool, budgetExhausted bool, duration time.Duration, nodesExpanded int64) {
}

// RecordPlan is a no-op.
func (n *NoopMetricsProvider) RecordPlan(ctx context.Context, strategy string, cost, length int) {}

// RecordCacheHit is a no-op.
func (n *NoopMetricsProvider) RecordCacheHit(ctx context.Context, strategy string) {}

// RecordCacheMiss is a no-op.
func (n *NoopMetricsProvider) RecordCacheMiss(ctx context.Context, strategy string) {}

// RecordError is a no-op.
func (n *NoopMetricsProvider) RecordError(ctx context.Context, errorType string, details map[string]string) {
}

// IncrementActiveSolves is a no-op.
func (n *NoopMetricsProvider) IncrementActiveSolves(ctx context.Context) {}

// DecrementActiveSolves is a no-op.
func (n *NoopMetricsProvider) DecrementActiveSolves(ctx context.Context) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	RecordPlanning(ctx context.Context, strategy string, found bool, budgetExhausted bool, duration time.Duration, nodesExpanded int64)
	RecordPlan(ctx context.Context, strategy string, cost, length int)
	RecordCacheHit(ctx context.Context, strategy string)
	RecordCacheMiss(ctx context.Context, strategy string)
	RecordError(ctx context.Context, errorType string, details map[string]string)
	IncrementActiveSolves(ctx context.Context)
	DecrementActiveSolves(ctx context.Context)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = (*NoopMetricsProvider)(nil)
)
