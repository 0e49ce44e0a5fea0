//go:build gcloud

package schedulerecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

type bigQuerySupplyRow struct {
	RecordedAt             time.Time `bigquery:"recorded_at"`
	RunID                  string    `bigquery:"run_id"`
	InstantTime            time.Time `bigquery:"instant_time"`
	PowerOutput            int64     `bigquery:"power_output"`
	FulfilledDemand        int64     `bigquery:"fulfilled_demand"`
	CriticalServedCount    int64     `bigquery:"critical_served_count"`
	NonCriticalServedCount int64     `bigquery:"non_critical_served_count"`
}

type bigQueryConsumptionRow struct {
	RecordedAt  time.Time `bigquery:"recorded_at"`
	RunID       string    `bigquery:"run_id"`
	DemandID    string    `bigquery:"demand_id"`
	Priority    string    `bigquery:"priority"`
	InstantTime time.Time `bigquery:"instant_time"`
	Consumed    int64     `bigquery:"consumed"`
	Capacity    int64     `bigquery:"capacity"`
}

type bigQueryRecorder struct {
	client              *bigquery.Client
	supplyInserter      *bigquery.Inserter
	consumptionInserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleResultRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule result recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule result recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	dataset := client.Dataset(cfg.BigQueryDataset)

	slog.InfoContext(ctx, "schedule result recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("supply_table", cfg.BigQuerySupplyTable),
		slog.String("consumption_table", cfg.BigQueryConsumptionTable),
	)

	return &bigQueryRecorder{
		client:              client,
		supplyInserter:      dataset.Table(cfg.BigQuerySupplyTable).Inserter(),
		consumptionInserter: dataset.Table(cfg.BigQueryConsumptionTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordSupplyInstants(ctx context.Context, records []domain.SupplyInstantRecord) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQuerySupplyRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQuerySupplyRow{
			RecordedAt:             now,
			RunID:                  record.RunID,
			InstantTime:            record.Time,
			PowerOutput:            record.PowerOutput,
			FulfilledDemand:        record.FulfilledDemand,
			CriticalServedCount:    int64(record.CriticalServedCount),
			NonCriticalServedCount: int64(record.NonCriticalServedCount),
		})
	}

	if err := r.supplyInserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert supply instants to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) RecordConsumption(ctx context.Context, records []domain.ConsumptionRecordEntry) error {
	if len(records) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*bigQueryConsumptionRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &bigQueryConsumptionRow{
			RecordedAt:  now,
			RunID:       record.RunID,
			DemandID:    record.DemandID,
			Priority:    record.Priority,
			InstantTime: record.Time,
			Consumed:    record.Consumed,
			Capacity:    record.Capacity,
		})
	}

	if err := r.consumptionInserter.Put(ctx, rows); err != nil {
		slog.WarnContext(ctx, "failed to insert demand consumption to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("record_count", len(records)),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
