package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

const redisImage = "redis:8-alpine"

// SetupRedisContainer starts a throwaway Redis and skips the test when no
// container runtime is available. The container is torn down on cleanup.
func SetupRedisContainer(ctx context.Context, t *testing.T) *redis.Client {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, redisImage)
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	return client
}

// SamplePlant returns a small plant whose samples straddle noon.
func SamplePlant(url string) *domain.PlantSamples {
	return &domain.PlantSamples{
		SourceURL:    url,
		Name:         "Test Plant",
		TimeZone:     "Australia/Sydney",
		Latitude:     -33.8688,
		Longitude:    151.2093,
		LocalTimes:   []string{"6:00AM", "6:05AM", "12:00PM", "12:05PM"},
		PowerOutputs: []int64{0, 1500, 4200, 4100},
	}
}
