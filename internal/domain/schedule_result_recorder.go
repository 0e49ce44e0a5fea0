package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=schedule_result_recorder.go -destination=schedule_result_recorder_mock.go -package=domain

type SupplyInstantRecord struct {
	RunID                  string
	Time                   time.Time
	PowerOutput            int64
	FulfilledDemand        int64
	CriticalServedCount    int
	NonCriticalServedCount int
}

type ConsumptionRecordEntry struct {
	RunID    string
	DemandID string
	Priority string
	Time     time.Time
	Consumed int64
	Capacity int64
}

type ScheduleResultRecorder interface {
	RecordSupplyInstants(ctx context.Context, records []SupplyInstantRecord) error
	RecordConsumption(ctx context.Context, records []ConsumptionRecordEntry) error
	Close() error
}
