package priority

import (
	"testing"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name         string
		current      int64
		minTarget    int64
		wantPriority domain.Priority
	}{
		{
			name:         "empty store is critical",
			current:      0,
			minTarget:    30000,
			wantPriority: domain.PriorityCritical,
		},
		{
			name:         "half of min target is critical",
			current:      15000,
			minTarget:    30000,
			wantPriority: domain.PriorityCritical,
		},
		{
			name:         "exactly at min target is critical",
			current:      30000,
			minTarget:    30000,
			wantPriority: domain.PriorityCritical,
		},
		{
			name:         "one watt above min target is non-critical",
			current:      30001,
			minTarget:    30000,
			wantPriority: domain.PriorityNonCritical,
		},
		{
			name:         "zero min target with zero capacity is critical",
			current:      0,
			minTarget:    0,
			wantPriority: domain.PriorityCritical,
		},
		{
			name:         "full store is non-critical",
			current:      50000,
			minTarget:    30000,
			wantPriority: domain.PriorityNonCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			demand := &domain.PowerDemand{
				ID:                    "demand-1",
				CurrentCapacityWatt:   tt.current,
				MaxCapacityWatt:       50000,
				MinTargetCapacityWatt: tt.minTarget,
				ConsumptionRate:       1200,
			}

			got := classifier.Classify(demand)
			if got != tt.wantPriority {
				t.Errorf("Classify() = %v, want %v", got, tt.wantPriority)
			}
			if got.IsCritical() != demand.IsCritical() {
				t.Errorf("Classify() = %v disagrees with IsCritical() = %v", got, demand.IsCritical())
			}
		})
	}
}
