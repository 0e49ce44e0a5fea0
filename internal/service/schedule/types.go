package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/allocation"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/demand"
)

// Request describes one scheduling run. Zero values fall back to the
// configured defaults: the configured date, the configured plant URLs and the
// sample demand dataset. PlantURLs may only select from the configured plants.
type Request struct {
	Date      time.Time
	Plants    []domain.PlantSamples
	PlantURLs []string
	Demands   []demand.Spec
}

type Result struct {
	RunID    string
	Date     time.Time
	Instants []*domain.SupplyInstant
	Demands  []*domain.PowerDemand
	Summary  allocation.Summary
}

type SupplyResult struct {
	Date     time.Time
	Instants []*domain.SupplyInstant
}
