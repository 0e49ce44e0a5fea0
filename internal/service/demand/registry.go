package demand

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

// Spec is the input record for one demand. An empty ID gets a generated uuid.
type Spec struct {
	ID                    string `json:"id,omitempty"`
	CurrentCapacityWatt   int64  `json:"current_capacity_watt"`
	MaxCapacityWatt       int64  `json:"max_capacity_watt"`
	MinTargetCapacityWatt int64  `json:"min_target_capacity_watt"`
	ConsumptionRate       int64  `json:"consumption_rate"`
}

// Registry holds demands in registration order. That order is the
// first-come tie-break used by the allocator.
type Registry struct {
	demands []*domain.PowerDemand
	byID    map[string]*domain.PowerDemand
	newID   func() string
}

func NewRegistry() *Registry {
	return &Registry{
		demands: make([]*domain.PowerDemand, 0),
		byID:    make(map[string]*domain.PowerDemand),
		newID:   func() string { return uuid.NewString() },
	}
}

func (r *Registry) Register(spec Spec) (*domain.PowerDemand, error) {
	id := spec.ID
	if id == "" {
		id = r.newID()
	}

	if _, exists := r.byID[id]; exists {
		return nil, fmt.Errorf("demand %s: %w", id, domain.ErrDuplicateDemandID)
	}

	d, err := domain.NewPowerDemand(
		id,
		spec.CurrentCapacityWatt,
		spec.MaxCapacityWatt,
		spec.MinTargetCapacityWatt,
		spec.ConsumptionRate,
	)
	if err != nil {
		return nil, err
	}

	r.demands = append(r.demands, d)
	r.byID[id] = d

	return d, nil
}

// RegisterAll registers specs in order and stops at the first rejected record.
func (r *Registry) RegisterAll(specs []Spec) error {
	for i, spec := range specs {
		if _, err := r.Register(spec); err != nil {
			return fmt.Errorf("demand record %d: %w", i, err)
		}
	}
	return nil
}

// Demands returns the registered demands in registration order. The
// returned pointers are shared with the registry.
func (r *Registry) Demands() []*domain.PowerDemand {
	return r.demands
}

func (r *Registry) Get(id string) (*domain.PowerDemand, bool) {
	d, ok := r.byID[id]
	return d, ok
}

func (r *Registry) Len() int {
	return len(r.demands)
}
