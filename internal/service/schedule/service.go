package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-power-scheduler/internal/config"
	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/tracing"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/allocation"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/demand"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/priority"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/supply"
)

var (
	ErrPlantFetch         = errors.New("failed to load plant telemetry")
	ErrPlantNotConfigured = errors.New("plant url is not configured")
)

const maxConcurrentPlantFetches = 4

type Service struct {
	plantSource domain.PlantSource
	recorder    domain.ScheduleResultRecorder
	classifier  *priority.Classifier
	metrics     *metrics.ScheduleMetrics
	schedule    *config.ScheduleConfig
	plantURLs   []string
	newRunID    func() string
}

func NewService(
	plantSource domain.PlantSource,
	recorder domain.ScheduleResultRecorder,
	classifier *priority.Classifier,
	scheduleMetrics *metrics.ScheduleMetrics,
	scheduleConfig *config.ScheduleConfig,
	plantURLs []string,
) *Service {
	return &Service{
		plantSource: plantSource,
		recorder:    recorder,
		classifier:  classifier,
		metrics:     scheduleMetrics,
		schedule:    scheduleConfig,
		plantURLs:   plantURLs,
		newRunID:    uuid.NewString,
	}
}

// Run builds the supply curve for the requested day and allocates it to a
// fresh set of demands.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	runID := s.newRunID()
	date := s.resolveDate(req.Date)

	ctx, span := tracing.StartRunSpan(ctx, runID, date)
	defer span.End()

	result, err := s.run(ctx, runID, date, req)
	tracing.RecordResult(span, err)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if s.metrics != nil {
		s.metrics.RecordRun(ctx, outcome, time.Since(start))
	}

	if err != nil {
		slog.ErrorContext(ctx, "schedule run failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	slog.InfoContext(ctx, "schedule run completed",
		slog.String("run_id", runID),
		slog.String("date", date.Format(time.DateOnly)),
		slog.Int("instants", result.Summary.InstantCount),
		slog.Int("demands", result.Summary.DemandCount),
		slog.Int64("total_supply", result.Summary.TotalSupply),
		slog.Int64("total_fulfilled", result.Summary.TotalFulfilled),
		slog.Duration("duration", time.Since(start)),
	)

	return result, nil
}

func (s *Service) run(ctx context.Context, runID string, date time.Time, req Request) (*Result, error) {
	instants, err := s.buildSupply(ctx, date, req)
	if err != nil {
		return nil, err
	}

	specs := req.Demands
	if specs == nil {
		specs = demand.SampleDataset(s.schedule.SampleDemandRounds)
	}

	registry := demand.NewRegistry()
	if err := registry.RegisterAll(specs); err != nil {
		return nil, err
	}
	demands := registry.Demands()

	var observer allocation.Observer
	if s.metrics != nil {
		observer = s.metrics
	}

	allocCtx, allocSpan := tracing.StartAllocationSpan(ctx, len(instants), len(demands))
	allocated, err := allocation.NewAllocator(s.classifier, observer).Allocate(allocCtx, instants, demands)
	if err != nil {
		tracing.RecordResult(allocSpan, err)
		allocSpan.End()
		return nil, err
	}
	tracing.RecordAllocationResult(allocSpan,
		allocated.Summary.TotalSupply,
		allocated.Summary.TotalFulfilled,
		allocated.Summary.CriticalGrants,
		allocated.Summary.NonCriticalGrants,
		nil,
	)
	allocSpan.End()

	s.recordResults(ctx, runID, allocated)

	return &Result{
		RunID:    runID,
		Date:     date,
		Instants: allocated.Instants,
		Demands:  allocated.Demands,
		Summary:  allocated.Summary,
	}, nil
}

// BuildSupply returns the aggregated supply curve without allocating it.
func (s *Service) BuildSupply(ctx context.Context, req Request) (*SupplyResult, error) {
	date := s.resolveDate(req.Date)

	instants, err := s.buildSupply(ctx, date, req)
	if err != nil {
		return nil, err
	}

	return &SupplyResult{
		Date:     date,
		Instants: instants,
	}, nil
}

func (s *Service) buildSupply(ctx context.Context, date time.Time, req Request) ([]*domain.SupplyInstant, error) {
	plants := req.Plants
	if len(plants) == 0 {
		urls, err := s.selectPlantURLs(req.PlantURLs)
		if err != nil {
			return nil, err
		}

		fetched, err := s.fetchPlants(ctx, urls)
		if err != nil {
			return nil, err
		}
		plants = fetched
	}

	grid, err := supply.NewGrid(date, s.schedule.StartHour, s.schedule.EndHour, s.schedule.Interval)
	if err != nil {
		return nil, err
	}

	_, span := tracing.StartSupplyCurveSpan(ctx, len(plants), len(grid))
	defer span.End()

	instants, err := supply.NewBuilder(date).Build(grid, plants)
	tracing.RecordResult(span, err)
	if err != nil {
		return nil, err
	}

	return instants, nil
}

// selectPlantURLs narrows the configured plants to the requested subset.
// Only configured URLs are ever fetched.
func (s *Service) selectPlantURLs(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return s.plantURLs, nil
	}

	var unknown []error
	for _, url := range requested {
		if !slices.Contains(s.plantURLs, url) {
			unknown = append(unknown, fmt.Errorf("%w: %q", ErrPlantNotConfigured, url))
		}
	}
	if len(unknown) > 0 {
		return nil, errors.Join(unknown...)
	}

	return requested, nil
}

// fetchPlants loads every plant concurrently and returns them in url order.
func (s *Service) fetchPlants(ctx context.Context, urls []string) ([]domain.PlantSamples, error) {
	plants := make([]domain.PlantSamples, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPlantFetches)

	for i, url := range urls {
		g.Go(func() error {
			plant, err := s.plantSource.FetchPlant(gctx, url)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrPlantFetch, url, err)
			}
			plants[i] = *plant
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return plants, nil
}

func (s *Service) resolveDate(date time.Time) time.Time {
	if date.IsZero() {
		return s.schedule.Date
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location())
}

// recordResults persists the annotated curve and consumption histories.
// Failures are logged and never fail the run.
func (s *Service) recordResults(ctx context.Context, runID string, result *allocation.Result) {
	if s.recorder == nil {
		return
	}

	supplyRecords := make([]domain.SupplyInstantRecord, 0, len(result.Instants))
	byTime := make(map[int64]*domain.SupplyInstant, len(result.Instants))
	for _, instant := range result.Instants {
		byTime[instant.Time.UnixNano()] = instant
		supplyRecords = append(supplyRecords, domain.SupplyInstantRecord{
			RunID:                  runID,
			Time:                   instant.Time,
			PowerOutput:            instant.PowerOutput,
			FulfilledDemand:        instant.FulfilledDemand,
			CriticalServedCount:    len(instant.FulfilledCriticalDemandIDs),
			NonCriticalServedCount: len(instant.FulfilledNonCriticalDemandIDs),
		})
	}

	var consumptionRecords []domain.ConsumptionRecordEntry
	for _, d := range result.Demands {
		capacity := d.CurrentCapacityWatt - d.TotalConsumed()
		for _, record := range d.ConsumptionHistory {
			capacity += record.Consumed

			p := domain.PriorityNonCritical
			if instant, ok := byTime[record.Time.UnixNano()]; ok && instant.ServedCritically(d.ID) {
				p = domain.PriorityCritical
			}

			consumptionRecords = append(consumptionRecords, domain.ConsumptionRecordEntry{
				RunID:    runID,
				DemandID: d.ID,
				Priority: p.String(),
				Time:     record.Time,
				Consumed: record.Consumed,
				Capacity: capacity,
			})
		}
	}

	if err := s.recorder.RecordSupplyInstants(ctx, supplyRecords); err != nil {
		slog.WarnContext(ctx, "failed to record supply instants",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.recorder.RecordConsumption(ctx, consumptionRecords); err != nil {
		slog.WarnContext(ctx, "failed to record demand consumption",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}
}
