package domain

import (
	"slices"
	"time"
)

// SupplyInstant is one fixed-interval point of the aggregated supply curve.
type SupplyInstant struct {
	Time                          time.Time `json:"time"`
	PowerOutput                   int64     `json:"power_output"`
	FulfilledDemand               int64     `json:"fulfilled_demand"`
	FulfilledCriticalDemandIDs    []string  `json:"fulfilled_critical_demand_ids"`
	FulfilledNonCriticalDemandIDs []string  `json:"fulfilled_non_critical_demand_ids"`
}

func NewSupplyInstant(t time.Time, powerOutput int64) *SupplyInstant {
	return &SupplyInstant{
		Time:                          t,
		PowerOutput:                   powerOutput,
		FulfilledCriticalDemandIDs:    make([]string, 0),
		FulfilledNonCriticalDemandIDs: make([]string, 0),
	}
}

// Headroom returns the unallocated part of this instant's output.
func (s *SupplyInstant) Headroom() int64 {
	return s.PowerOutput - s.FulfilledDemand
}

// Reset clears the derived fulfilment fields.
func (s *SupplyInstant) Reset() {
	s.FulfilledDemand = 0
	s.FulfilledCriticalDemandIDs = make([]string, 0)
	s.FulfilledNonCriticalDemandIDs = make([]string, 0)
}

// Grant books amount for demandID under the given priority.
func (s *SupplyInstant) Grant(demandID string, amount int64, priority Priority) {
	s.FulfilledDemand += amount
	if priority.IsCritical() {
		s.FulfilledCriticalDemandIDs = append(s.FulfilledCriticalDemandIDs, demandID)
		return
	}
	s.FulfilledNonCriticalDemandIDs = append(s.FulfilledNonCriticalDemandIDs, demandID)
}

func (s *SupplyInstant) ServedCritically(demandID string) bool {
	return slices.Contains(s.FulfilledCriticalDemandIDs, demandID)
}

func (s *SupplyInstant) ServedNonCritically(demandID string) bool {
	return slices.Contains(s.FulfilledNonCriticalDemandIDs, demandID)
}
