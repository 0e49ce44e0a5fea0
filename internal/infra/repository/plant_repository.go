package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/tracing"
)

const (
	plantKeyPrefix = "scheduler:plant:"

	defaultPlantTTL = 24 * time.Hour
)

type plantRecord struct {
	SourceURL    string    `json:"source_url"`
	Name         string    `json:"name"`
	TimeZone     string    `json:"time_zone"`
	Latitude     float64   `json:"lat"`
	Longitude    float64   `json:"lng"`
	LocalTimes   []string  `json:"local_times"`
	PowerOutputs []int64   `json:"power_outputs"`
	CachedAt     time.Time `json:"cached_at"`
}

type plantRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlantRepository returns a Redis backed plant telemetry cache. A
// non-positive ttl falls back to one day.
func NewPlantRepository(client *redis.Client, ttl time.Duration) domain.PlantCache {
	if ttl <= 0 {
		ttl = defaultPlantTTL
	}
	return &plantRepository{
		client: client,
		ttl:    ttl,
	}
}

// PlantKey is the cache key of the plant fetched from url.
func PlantKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return plantKeyPrefix + hex.EncodeToString(sum[:])
}

func (r *plantRepository) GetPlant(ctx context.Context, url string) (*domain.PlantSamples, error) {
	key := PlantKey(url)

	ctx, span := tracing.StartRedisOperationSpan(ctx, "get", key)
	defer span.End()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPlantNotCached
		}
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	var record plantRecord
	if err := json.Unmarshal(data, &record); err != nil {
		tracing.RecordResult(span, err)
		return nil, ErrInvalidPlantData
	}

	return &domain.PlantSamples{
		SourceURL:    record.SourceURL,
		Name:         record.Name,
		TimeZone:     record.TimeZone,
		Latitude:     record.Latitude,
		Longitude:    record.Longitude,
		LocalTimes:   record.LocalTimes,
		PowerOutputs: record.PowerOutputs,
	}, nil
}

func (r *plantRepository) SavePlant(ctx context.Context, plant *domain.PlantSamples) error {
	if plant == nil || plant.SourceURL == "" {
		return ErrInvalidPlantData
	}

	key := PlantKey(plant.SourceURL)

	ctx, span := tracing.StartRedisOperationSpan(ctx, "set", key)
	defer span.End()

	record := plantRecord{
		SourceURL:    plant.SourceURL,
		Name:         plant.Name,
		TimeZone:     plant.TimeZone,
		Latitude:     plant.Latitude,
		Longitude:    plant.Longitude,
		LocalTimes:   plant.LocalTimes,
		PowerOutputs: plant.PowerOutputs,
		CachedAt:     time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidPlantData
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		tracing.RecordResult(span, err)
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	return nil
}
