package domain

import (
	"errors"
	"fmt"
	"time"
)

type ConsumptionRecord struct {
	Time     time.Time `json:"time"`
	Consumed int64     `json:"consumed"`
}

// PowerDemand is a consumer with a stateful stored capacity.
// Only CurrentCapacityWatt and ConsumptionHistory change after construction.
type PowerDemand struct {
	ID                    string              `json:"id"`
	CurrentCapacityWatt   int64               `json:"current_capacity_watt"`
	MaxCapacityWatt       int64               `json:"max_capacity_watt"`
	MinTargetCapacityWatt int64               `json:"min_target_capacity_watt"`
	ConsumptionRate       int64               `json:"consumption_rate"`
	ConsumptionHistory    []ConsumptionRecord `json:"consumption_history"`
}

func NewPowerDemand(id string, current, maxCapacity, minTarget, rate int64) (*PowerDemand, error) {
	if id == "" {
		return nil, ErrEmptyDemandID
	}

	var errs []error
	if current < 0 {
		errs = append(errs, fmt.Errorf("current capacity %d: %w", current, ErrNegativeQuantity))
	}
	if maxCapacity < 0 {
		errs = append(errs, fmt.Errorf("max capacity %d: %w", maxCapacity, ErrNegativeQuantity))
	}
	if minTarget < 0 {
		errs = append(errs, fmt.Errorf("min target capacity %d: %w", minTarget, ErrNegativeQuantity))
	}
	if rate < 0 {
		errs = append(errs, fmt.Errorf("consumption rate %d: %w", rate, ErrNegativeQuantity))
	}
	if minTarget > maxCapacity {
		errs = append(errs, ErrMinTargetAboveMax)
	}
	if current > maxCapacity {
		errs = append(errs, ErrCapacityAboveMax)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("demand %s: %w", id, err)
	}

	return &PowerDemand{
		ID:                    id,
		CurrentCapacityWatt:   current,
		MaxCapacityWatt:       maxCapacity,
		MinTargetCapacityWatt: minTarget,
		ConsumptionRate:       rate,
		ConsumptionHistory:    make([]ConsumptionRecord, 0),
	}, nil
}

// IsCritical reports whether the demand is at or below its safety threshold.
func (d *PowerDemand) IsCritical() bool {
	return d.CurrentCapacityWatt-d.MinTargetCapacityWatt <= 0
}

func (d *PowerDemand) HeadroomToMax() int64 {
	return d.MaxCapacityWatt - d.CurrentCapacityWatt
}

// Consume records an allocation at t and adds it to the stored capacity.
func (d *PowerDemand) Consume(t time.Time, amount int64) {
	d.ConsumptionHistory = append(d.ConsumptionHistory, ConsumptionRecord{
		Time:     t,
		Consumed: amount,
	})
	d.CurrentCapacityWatt += amount
}

func (d *PowerDemand) TotalConsumed() int64 {
	var total int64
	for _, r := range d.ConsumptionHistory {
		total += r.Consumed
	}
	return total
}

func (d *PowerDemand) CheckCapacity() error {
	if d.CurrentCapacityWatt < 0 || d.CurrentCapacityWatt > d.MaxCapacityWatt {
		return fmt.Errorf("demand %s: current %d, max %d: %w",
			d.ID, d.CurrentCapacityWatt, d.MaxCapacityWatt, ErrCapacityExceeded)
	}
	return nil
}
