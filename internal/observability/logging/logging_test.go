package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNewLogger_ProdWritesJSONWithServiceAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{
		Service:       ServiceInfo{Name: "scheduler", Version: "v1.2.3"},
		Environment:   EnvProd,
		Level:         slog.LevelInfo,
		DefaultModule: Module("power-scheduler"),
	})

	logger.Info("allocation completed", slog.Int("instants", 144))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"msg":      "allocation completed",
		"service":  "scheduler",
		"version":  "v1.2.3",
		"env":      "prod",
		"module":   "power-scheduler",
		"instants": float64(144),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["trace_id"]; ok {
		t.Error("trace_id should be absent without a span")
	}
}

func TestNewLogger_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{
		Service:     ServiceInfo{Name: "scheduler"},
		Environment: EnvProd,
		Level:       slog.LevelDebug,
	})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "grant")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unexpected output %q: %v", buf.String(), err)
	}
	if entry["trace_id"] != traceID.String() {
		t.Errorf("trace_id = %v, want %s", entry["trace_id"], traceID)
	}
	if entry["span_id"] != spanID.String() {
		t.Errorf("span_id = %v, want %s", entry["span_id"], spanID)
	}
}

func TestNewLogger_DevWritesText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Config{
		Service:     ServiceInfo{Name: "scheduler"},
		Environment: EnvDev,
		Level:       slog.LevelWarn,
	}).With(slog.String("component", "allocator"))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "msg=kept") || !strings.Contains(out, "component=allocator") {
		t.Errorf("unexpected text output %q", out)
	}
}
