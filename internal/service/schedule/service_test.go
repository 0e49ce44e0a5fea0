package schedule

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-power-scheduler/internal/config"
	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/demand"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/priority"
)

var testDate = time.Date(2020, 7, 3, 0, 0, 0, 0, time.UTC)

func testScheduleConfig() *config.ScheduleConfig {
	return &config.ScheduleConfig{
		Date:               testDate,
		StartHour:          6,
		EndHour:            7,
		Interval:           30 * time.Minute,
		SampleDemandRounds: 2,
	}
}

func testPlant(url string) domain.PlantSamples {
	return domain.PlantSamples{
		SourceURL:    url,
		Name:         "plant",
		LocalTimes:   []string{"6:00AM", "6:30AM"},
		PowerOutputs: []int64{2000, 500},
	}
}

func newTestService(source domain.PlantSource, recorder domain.ScheduleResultRecorder, urls []string) *Service {
	svc := NewService(source, recorder, priority.NewClassifier(), nil, testScheduleConfig(), urls)
	svc.newRunID = func() string { return "run-1" }
	return svc
}

func TestService_Run_InlinePlantsAndDemands(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockPlantSource(ctrl)
	recorder := domain.NewMockScheduleResultRecorder(ctrl)

	var (
		supplyRecords      []domain.SupplyInstantRecord
		consumptionRecords []domain.ConsumptionRecordEntry
	)
	recorder.EXPECT().RecordSupplyInstants(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []domain.SupplyInstantRecord) error {
			supplyRecords = records
			return nil
		})
	recorder.EXPECT().RecordConsumption(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, records []domain.ConsumptionRecordEntry) error {
			consumptionRecords = records
			return nil
		})

	svc := newTestService(source, recorder, nil)

	result, err := svc.Run(context.Background(), Request{
		Plants: []domain.PlantSamples{testPlant("inline")},
		Demands: []demand.Spec{{
			ID:                    "d1",
			CurrentCapacityWatt:   0,
			MaxCapacityWatt:       10000,
			MinTargetCapacityWatt: 5000,
			ConsumptionRate:       1500,
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RunID != "run-1" {
		t.Errorf("run id = %q", result.RunID)
	}
	if !result.Date.Equal(testDate) {
		t.Errorf("date = %v", result.Date)
	}
	if len(result.Instants) != 2 {
		t.Fatalf("expected 2 instants, got %d", len(result.Instants))
	}

	first, second := result.Instants[0], result.Instants[1]
	if first.FulfilledDemand != 1500 || len(first.FulfilledCriticalDemandIDs) != 1 {
		t.Errorf("06:00 expected one critical grant of 1500, got %+v", first)
	}
	if second.FulfilledDemand != 0 {
		t.Errorf("06:30 headroom 500 cannot serve rate 1500, got %d", second.FulfilledDemand)
	}
	if result.Summary.TotalSupply != 2500 || result.Summary.TotalFulfilled != 1500 {
		t.Errorf("summary = %+v", result.Summary)
	}
	if result.Summary.UnservedCriticalInstants != 1 {
		t.Errorf("expected 1 unserved critical instant, got %d", result.Summary.UnservedCriticalInstants)
	}

	if len(supplyRecords) != 2 || supplyRecords[0].RunID != "run-1" || supplyRecords[0].CriticalServedCount != 1 {
		t.Errorf("unexpected supply records %+v", supplyRecords)
	}
	if len(consumptionRecords) != 1 {
		t.Fatalf("expected 1 consumption record, got %d", len(consumptionRecords))
	}
	got := consumptionRecords[0]
	if got.DemandID != "d1" || got.Priority != "critical" || got.Consumed != 1500 || got.Capacity != 1500 {
		t.Errorf("unexpected consumption record %+v", got)
	}
}

func TestService_Run_FetchesConfiguredPlantsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockPlantSource(ctrl)
	recorder := domain.NewMockScheduleResultRecorder(ctrl)

	urls := []string{"https://a.example", "https://b.example"}
	for _, url := range urls {
		plant := testPlant(url)
		source.EXPECT().FetchPlant(gomock.Any(), url).Return(&plant, nil)
	}
	recorder.EXPECT().RecordSupplyInstants(gomock.Any(), gomock.Any()).Return(nil)
	recorder.EXPECT().RecordConsumption(gomock.Any(), gomock.Any()).Return(nil)

	svc := newTestService(source, recorder, urls)

	result, err := svc.Run(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Instants[0].PowerOutput != 4000 || result.Instants[1].PowerOutput != 1000 {
		t.Errorf("expected outputs summed across plants, got %d / %d",
			result.Instants[0].PowerOutput, result.Instants[1].PowerOutput)
	}
	if len(result.Demands) != 6 {
		t.Errorf("expected sample dataset of 6 demands, got %d", len(result.Demands))
	}
}

func TestService_Run_RequestPlantURLsSelectConfiguredSubset(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockPlantSource(ctrl)
	recorder := domain.NewMockScheduleResultRecorder(ctrl)

	plant := testPlant("https://b.example")
	source.EXPECT().FetchPlant(gomock.Any(), "https://b.example").Return(&plant, nil)
	recorder.EXPECT().RecordSupplyInstants(gomock.Any(), gomock.Any()).Return(nil)
	recorder.EXPECT().RecordConsumption(gomock.Any(), gomock.Any()).Return(nil)

	svc := newTestService(source, recorder, []string{"https://a.example", "https://b.example"})

	result, err := svc.Run(context.Background(), Request{
		PlantURLs: []string{"https://b.example"},
		Demands:   []demand.Spec{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Instants[0].PowerOutput != 2000 {
		t.Errorf("expected only the selected plant, got %d", result.Instants[0].PowerOutput)
	}
}

func TestService_Run_Errors(t *testing.T) {
	fetchErr := errors.New("connection refused")

	tests := []struct {
		name    string
		setup   func(source *domain.MockPlantSource)
		req     Request
		wantErr error
	}{
		{
			name: "plant fetch failure aborts run",
			setup: func(source *domain.MockPlantSource) {
				source.EXPECT().FetchPlant(gomock.Any(), "https://a.example").Return(nil, fetchErr)
			},
			req:     Request{},
			wantErr: ErrPlantFetch,
		},
		{
			name:  "unconfigured plant url is never fetched",
			setup: func(source *domain.MockPlantSource) {},
			req: Request{
				PlantURLs: []string{"https://a.example", "http://127.0.0.1:8080/admin"},
			},
			wantErr: ErrPlantNotConfigured,
		},
		{
			name:  "invalid demand record",
			setup: func(source *domain.MockPlantSource) {},
			req: Request{
				Plants:  []domain.PlantSamples{testPlant("inline")},
				Demands: []demand.Spec{{ID: "d", MaxCapacityWatt: 100, MinTargetCapacityWatt: 200}},
			},
			wantErr: domain.ErrMinTargetAboveMax,
		},
		{
			name:  "malformed local time",
			setup: func(source *domain.MockPlantSource) {},
			req: Request{
				Plants: []domain.PlantSamples{{
					Name:         "bad",
					LocalTimes:   []string{"25:00XM"},
					PowerOutputs: []int64{10},
				}},
			},
			wantErr: domain.ErrInvalidLocalTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			source := domain.NewMockPlantSource(ctrl)
			recorder := domain.NewMockScheduleResultRecorder(ctrl)
			tt.setup(source)

			svc := newTestService(source, recorder, []string{"https://a.example"})

			_, err := svc.Run(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestService_Run_FetchErrorNamesURLOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockPlantSource(ctrl)
	source.EXPECT().FetchPlant(gomock.Any(), "https://a.example").
		Return(nil, domain.ErrTelemetryNotFound)

	svc := newTestService(source, domain.NewMockScheduleResultRecorder(ctrl), []string{"https://a.example"})

	_, err := svc.Run(context.Background(), Request{})
	if !errors.Is(err, ErrPlantFetch) {
		t.Fatalf("expected ErrPlantFetch, got %v", err)
	}
	if n := strings.Count(err.Error(), "https://a.example"); n != 1 {
		t.Errorf("expected url once in %q, got %d", err, n)
	}
}

func TestService_Run_RecorderFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockPlantSource(ctrl)
	recorder := domain.NewMockScheduleResultRecorder(ctrl)

	recorder.EXPECT().RecordSupplyInstants(gomock.Any(), gomock.Any()).Return(errors.New("influx down"))
	recorder.EXPECT().RecordConsumption(gomock.Any(), gomock.Any()).Return(errors.New("influx down"))

	svc := newTestService(source, recorder, nil)

	if _, err := svc.Run(context.Background(), Request{
		Plants: []domain.PlantSamples{testPlant("inline")},
	}); err != nil {
		t.Fatalf("recorder failure must not fail the run: %v", err)
	}
}

func TestService_BuildSupply(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := domain.NewMockPlantSource(ctrl)

	svc := newTestService(source, nil, nil)
	requested := time.Date(2021, 1, 15, 13, 45, 0, 0, time.UTC)

	result, err := svc.BuildSupply(context.Background(), Request{
		Date:   requested,
		Plants: []domain.PlantSamples{testPlant("inline")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDate := time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
	if !result.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", result.Date, wantDate)
	}
	if len(result.Instants) != 2 {
		t.Fatalf("expected 2 instants, got %d", len(result.Instants))
	}
	if !result.Instants[0].Time.Equal(wantDate.Add(6 * time.Hour)) {
		t.Errorf("first instant at %v", result.Instants[0].Time)
	}
	for _, instant := range result.Instants {
		if instant.FulfilledDemand != 0 {
			t.Errorf("supply-only curve must not be allocated, got %+v", instant)
		}
	}
}
