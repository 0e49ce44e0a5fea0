package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/KasumiMercury/primind-power-scheduler/internal/service/allocation"
)

const (
	scheduleMeterName = "scheduler.service"
)

type ScheduleMetrics struct {
	grants        metric.Int64Counter
	grantedWatts  metric.Int64Counter
	clampedGrants metric.Int64Counter
	runs          metric.Int64Counter
	runDuration   metric.Float64Histogram
	plantFetches  metric.Int64Counter
	fetchDuration metric.Float64Histogram
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	return newScheduleMetrics(otel.Meter(scheduleMeterName))
}

func newScheduleMetrics(meter metric.Meter) (*ScheduleMetrics, error) {
	grants, err := meter.Int64Counter(
		"scheduler_grants_total",
		metric.WithDescription("Total number of supply grants made to demands"),
		metric.WithUnit("{grant}"),
	)
	if err != nil {
		return nil, err
	}

	grantedWatts, err := meter.Int64Counter(
		"scheduler_granted_watts_total",
		metric.WithDescription("Total power granted to demands"),
		metric.WithUnit("W"),
	)
	if err != nil {
		return nil, err
	}

	clampedGrants, err := meter.Int64Counter(
		"scheduler_grants_clamped_total",
		metric.WithDescription("Grants reduced below the consumption rate by the capacity ceiling"),
		metric.WithUnit("{grant}"),
	)
	if err != nil {
		return nil, err
	}

	runs, err := meter.Int64Counter(
		"scheduler_runs_total",
		metric.WithDescription("Total number of schedule runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"scheduler_run_duration_seconds",
		metric.WithDescription("Schedule run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	plantFetches, err := meter.Int64Counter(
		"scheduler_plant_fetches_total",
		metric.WithDescription("Total number of plant telemetry lookups"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"scheduler_plant_fetch_duration_seconds",
		metric.WithDescription("Time spent loading plant telemetry"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		grants:        grants,
		grantedWatts:  grantedWatts,
		clampedGrants: clampedGrants,
		runs:          runs,
		runDuration:   runDuration,
		plantFetches:  plantFetches,
		fetchDuration: fetchDuration,
	}, nil
}

// OnGrant implements allocation.Observer.
func (m *ScheduleMetrics) OnGrant(ctx context.Context, grant allocation.Grant) {
	attrs := metric.WithAttributes(
		attribute.String("priority", grant.Priority.String()),
	)

	m.grants.Add(ctx, 1, attrs)
	m.grantedWatts.Add(ctx, grant.Amount, attrs)
	if grant.ClampedByCeiling {
		m.clampedGrants.Add(ctx, 1, attrs)
	}
}

func (m *ScheduleMetrics) RecordRun(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("outcome", outcome),
	)

	m.runs.Add(ctx, 1, attrs)
	m.runDuration.Record(ctx, duration.Seconds(), attrs)
}

func (m *ScheduleMetrics) RecordPlantFetch(ctx context.Context, source, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("outcome", outcome),
	)

	m.plantFetches.Add(ctx, 1, attrs)
	m.fetchDuration.Record(ctx, duration.Seconds(), attrs)
}
