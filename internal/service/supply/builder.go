package supply

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

// Builder merges per-plant samples into one aggregated supply curve.
type Builder struct {
	referenceDate time.Time
}

// NewBuilder creates a Builder that places every sample on referenceDate's calendar day.
func NewBuilder(referenceDate time.Time) *Builder {
	return &Builder{
		referenceDate: referenceDate,
	}
}

// Build seeds every grid point with zero output and adds each plant's
// non-zero samples to the point at the sample's normalised time. Samples off
// the grid get their own point. The result is sorted by ascending time.
func (b *Builder) Build(grid []time.Time, plants []domain.PlantSamples) ([]*domain.SupplyInstant, error) {
	aggregated := make(map[int64]*domain.SupplyInstant, len(grid))
	for _, t := range grid {
		key := t.UnixNano()
		if _, ok := aggregated[key]; !ok {
			aggregated[key] = domain.NewSupplyInstant(t, 0)
		}
	}

	for _, plant := range plants {
		if err := plant.Validate(); err != nil {
			return nil, err
		}

		skipped := 0
		for i, localTime := range plant.LocalTimes {
			output := plant.PowerOutputs[i]
			if output == 0 {
				skipped++
				continue
			}
			if output < 0 {
				return nil, fmt.Errorf("plant %q sample %q output %d: %w",
					plant.Name, localTime, output, domain.ErrNegativeQuantity)
			}

			t, err := ParseLocalTime(b.referenceDate, localTime)
			if err != nil {
				return nil, fmt.Errorf("plant %q: %w", plant.Name, err)
			}

			key := t.UnixNano()
			instant, ok := aggregated[key]
			if !ok {
				instant = domain.NewSupplyInstant(t, 0)
				aggregated[key] = instant
			}
			instant.PowerOutput += output
		}

		slog.Debug("aggregated plant samples",
			slog.String("plant", plant.Name),
			slog.Int("sample_count", len(plant.LocalTimes)),
			slog.Int("zero_skipped", skipped),
		)
	}

	curve := make([]*domain.SupplyInstant, 0, len(aggregated))
	for _, instant := range aggregated {
		curve = append(curve, instant)
	}
	sort.Slice(curve, func(i, j int) bool {
		return curve[i].Time.Before(curve[j].Time)
	})

	return curve, nil
}
