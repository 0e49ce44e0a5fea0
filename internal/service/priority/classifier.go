package priority

import (
	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the allocation class of a demand for the current instant.
// A demand exactly at its min target is still critical.
func (c *Classifier) Classify(demand *domain.PowerDemand) domain.Priority {
	if demand.IsCritical() {
		return domain.PriorityCritical
	}

	return domain.PriorityNonCritical
}
