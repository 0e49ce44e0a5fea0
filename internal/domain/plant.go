package domain

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=plant.go -destination=plant_mock.go -package=domain

// PlantSamples is the raw telemetry of one PV plant for a single day.
// LocalTimes use the 12-hour "H:MMAM" form and line up with PowerOutputs.
type PlantSamples struct {
	SourceURL    string   `json:"source_url"`
	Name         string   `json:"name"`
	TimeZone     string   `json:"time_zone"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	LocalTimes   []string `json:"local_times"`
	PowerOutputs []int64  `json:"power_outputs"`
}

func (p *PlantSamples) Validate() error {
	if len(p.LocalTimes) != len(p.PowerOutputs) {
		return fmt.Errorf("plant %q: %d times, %d outputs: %w",
			p.Name, len(p.LocalTimes), len(p.PowerOutputs), ErrSampleLengthMismatch)
	}
	return nil
}

// PlantSource loads the telemetry of one plant.
type PlantSource interface {
	FetchPlant(ctx context.Context, url string) (*PlantSamples, error)
}

// PlantCache stores parsed telemetry so a plant is only fetched once.
type PlantCache interface {
	GetPlant(ctx context.Context, url string) (*PlantSamples, error)
	SavePlant(ctx context.Context, plant *PlantSamples) error
}
