package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

// FetchRecorder receives the outcome of every plant lookup.
type FetchRecorder interface {
	RecordPlantFetch(ctx context.Context, source, outcome string, duration time.Duration)
}

// CachedPlantSource serves plants from cache and falls back to the upstream
// source on a miss. Cache failures never fail a fetch.
type CachedPlantSource struct {
	cache    domain.PlantCache
	source   domain.PlantSource
	recorder FetchRecorder
}

var _ domain.PlantSource = (*CachedPlantSource)(nil)

func NewCachedPlantSource(cache domain.PlantCache, source domain.PlantSource, recorder FetchRecorder) *CachedPlantSource {
	return &CachedPlantSource{
		cache:    cache,
		source:   source,
		recorder: recorder,
	}
}

func (s *CachedPlantSource) FetchPlant(ctx context.Context, url string) (*domain.PlantSamples, error) {
	start := time.Now()

	plant, err := s.cache.GetPlant(ctx, url)
	switch {
	case err == nil:
		slog.DebugContext(ctx, "plant telemetry cache hit",
			slog.String("url", url),
		)
		s.record(ctx, "cache", "hit", start)
		return plant, nil
	case errors.Is(err, domain.ErrPlantNotCached):
		s.record(ctx, "cache", "miss", start)
	default:
		slog.WarnContext(ctx, "plant telemetry cache read failed",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		s.record(ctx, "cache", "error", start)
	}

	start = time.Now()
	plant, err = s.source.FetchPlant(ctx, url)
	if err != nil {
		s.record(ctx, "remote", "error", start)
		return nil, err
	}
	s.record(ctx, "remote", "success", start)

	if err := s.cache.SavePlant(ctx, plant); err != nil {
		slog.WarnContext(ctx, "failed to cache plant telemetry",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
	}

	return plant, nil
}

func (s *CachedPlantSource) record(ctx context.Context, source, outcome string, start time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordPlantFetch(ctx, source, outcome, time.Since(start))
}
