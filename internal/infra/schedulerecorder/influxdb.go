//go:build !gcloud

package schedulerecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

const (
	supplyMeasurement      = "supply_instant"
	consumptionMeasurement = "demand_consumption"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

// Points are stamped with the instant they describe. The run_id tag keeps
// repeated runs over the same day apart.
func (r *influxDBRecorder) RecordSupplyInstants(ctx context.Context, records []domain.SupplyInstantRecord) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, influxdb2.NewPoint(
			supplyMeasurement,
			map[string]string{
				"run_id": runIDOrDefault(record.RunID),
			},
			map[string]any{
				"power_output":              record.PowerOutput,
				"fulfilled_demand":          record.FulfilledDemand,
				"critical_served_count":     record.CriticalServedCount,
				"non_critical_served_count": record.NonCriticalServedCount,
			},
			record.Time,
		))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write supply instants to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordConsumption(ctx context.Context, records []domain.ConsumptionRecordEntry) error {
	if len(records) == 0 {
		return nil
	}

	points := make([]*write.Point, 0, len(records))
	for _, record := range records {
		points = append(points, influxdb2.NewPoint(
			consumptionMeasurement,
			map[string]string{
				"run_id":    runIDOrDefault(record.RunID),
				"demand_id": record.DemandID,
				"priority":  record.Priority,
			},
			map[string]any{
				"consumed": record.Consumed,
				"capacity": record.Capacity,
			},
			record.Time,
		))
	}

	if err := r.writeAPI.WritePoint(ctx, points...); err != nil {
		slog.WarnContext(ctx, "failed to write demand consumption to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func runIDOrDefault(runID string) string {
	if runID == "" {
		return "default"
	}
	return runID
}

