package schedulerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ScheduleResultRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordSupplyInstants(_ context.Context, _ []domain.SupplyInstantRecord) error {
	return nil
}

func (n *noopRecorder) RecordConsumption(_ context.Context, _ []domain.ConsumptionRecordEntry) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
