package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-power-scheduler/internal/service/schedule"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartRunSpan(ctx context.Context, runID string, date time.Time) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "scheduler.run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("run.date", date.Format(time.DateOnly)),
		),
	)
}

func StartSupplyCurveSpan(ctx context.Context, plantCount, gridSize int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "scheduler.supply_curve",
		trace.WithAttributes(
			attribute.Int("supply.plant_count", plantCount),
			attribute.Int("supply.grid_size", gridSize),
		),
	)
}

func StartAllocationSpan(ctx context.Context, instantCount, demandCount int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "scheduler.allocation",
		trace.WithAttributes(
			attribute.Int("allocation.instant_count", instantCount),
			attribute.Int("allocation.demand_count", demandCount),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "scheduler.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "scheduler.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordAllocationResult(span trace.Span, totalSupply, totalFulfilled int64, criticalGrants, nonCriticalGrants int, err error) {
	span.SetAttributes(
		attribute.Int64("allocation.total_supply", totalSupply),
		attribute.Int64("allocation.total_fulfilled", totalFulfilled),
		attribute.Int("allocation.critical_grants", criticalGrants),
		attribute.Int("allocation.non_critical_grants", nonCriticalGrants),
	)
	RecordResult(span, err)
}

// RecordResult marks span as failed when err is non-nil.
func RecordResult(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHTTPRequest propagates the span in ctx to an outgoing request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}
