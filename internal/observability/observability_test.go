//go:build !gcloud

package observability

import (
	"context"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/logging"
)

func TestInit_InstallsProvidersWithoutExporter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	ctx := context.Background()
	obs, err := Init(ctx, Config{
		ServiceInfo: logging.ServiceInfo{Name: "scheduler", Version: "test"},
		Environment: logging.EnvDev,
		LogLevel:    slog.LevelDebug,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			t.Errorf("shutdown: %v", err)
		}
	})

	if obs.Logger() == nil {
		t.Fatal("expected logger")
	}

	_, span := otel.Tracer("test").Start(ctx, "probe")
	defer span.End()
	if !span.SpanContext().IsValid() {
		t.Error("expected sdk tracer provider to issue valid span contexts")
	}
}
