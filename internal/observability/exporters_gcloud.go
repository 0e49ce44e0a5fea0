//go:build gcloud

package observability

import (
	"context"
	"errors"

	mexporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/metric"
	texporter "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errGCPProjectIDMissing = errors.New("GCP project id is required for Cloud Trace and Cloud Monitoring exporters")

type exporterSet struct {
	span   sdktrace.SpanExporter
	metric sdkmetric.Exporter
}

func newExporters(_ context.Context, cfg Config) (exporterSet, error) {
	if cfg.GCPProjectID == "" {
		return exporterSet{}, errGCPProjectIDMissing
	}

	spanExporter, err := texporter.New(texporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		return exporterSet{}, err
	}

	metricExporter, err := mexporter.New(mexporter.WithProjectID(cfg.GCPProjectID))
	if err != nil {
		return exporterSet{}, err
	}

	return exporterSet{span: spanExporter, metric: metricExporter}, nil
}
