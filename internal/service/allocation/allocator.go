package allocation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/priority"
)

// Grant is one allocation made to a demand at an instant.
type Grant struct {
	Time             time.Time
	DemandID         string
	Priority         domain.Priority
	Amount           int64
	CapacityAfter    int64
	InstantHeadroom  int64
	InstantOutput    int64
	RequestedAmount  int64
	ClampedByCeiling bool
}

// Observer is notified of every grant in allocation order.
type Observer interface {
	OnGrant(ctx context.Context, grant Grant)
}

type Summary struct {
	InstantCount             int   `json:"instant_count"`
	DemandCount              int   `json:"demand_count"`
	TotalSupply              int64 `json:"total_supply"`
	TotalFulfilled           int64 `json:"total_fulfilled"`
	CriticalGrants           int   `json:"critical_grants"`
	NonCriticalGrants        int   `json:"non_critical_grants"`
	UnservedCriticalInstants int   `json:"unserved_critical_instants"`
}

type Result struct {
	Instants []*domain.SupplyInstant
	Demands  []*domain.PowerDemand
	Summary  Summary
}

// Allocator is the single-pass greedy demand-fulfillment scheduler.
type Allocator struct {
	classifier *priority.Classifier
	observer   Observer
}

func NewAllocator(classifier *priority.Classifier, observer Observer) *Allocator {
	if classifier == nil {
		classifier = priority.NewClassifier()
	}
	return &Allocator{
		classifier: classifier,
		observer:   observer,
	}
}

// Allocate walks instants in ascending time order. For every instant it
// serves critical demands first with their full consumption rate
// (all-or-nothing), then serves the remaining demands with their rate
// clamped to the headroom left under their ceiling. Within a pass demands
// are visited in slice order and may exhaust the instant before later ones.
//
// instants and demands are mutated in place; the returned Result shares them.
func (a *Allocator) Allocate(
	ctx context.Context,
	instants []*domain.SupplyInstant,
	demands []*domain.PowerDemand,
) (*Result, error) {
	if err := validateCurve(instants); err != nil {
		return nil, err
	}

	result := &Result{
		Instants: instants,
		Demands:  demands,
		Summary: Summary{
			InstantCount: len(instants),
			DemandCount:  len(demands),
		},
	}

	for _, instant := range instants {
		instant.Reset()

		shortfalls := a.criticalPass(ctx, instant, demands, &result.Summary)
		a.nonCriticalPass(ctx, instant, demands, &result.Summary)

		// a critical shortfall may still be covered by a clamped non-critical grant
		for _, id := range shortfalls {
			if !instant.ServedNonCritically(id) {
				result.Summary.UnservedCriticalInstants++
			}
		}

		if err := checkInvariants(instant, demands); err != nil {
			slog.ErrorContext(ctx, "allocation invariant violated",
				slog.Time("instant", instant.Time),
				slog.String("error", err.Error()),
			)
			return nil, err
		}

		result.Summary.TotalSupply += instant.PowerOutput
		result.Summary.TotalFulfilled += instant.FulfilledDemand
	}

	slog.DebugContext(ctx, "allocation completed",
		slog.Int("instants", result.Summary.InstantCount),
		slog.Int("demands", result.Summary.DemandCount),
		slog.Int64("total_supply", result.Summary.TotalSupply),
		slog.Int64("total_fulfilled", result.Summary.TotalFulfilled),
		slog.Int("critical_grants", result.Summary.CriticalGrants),
		slog.Int("non_critical_grants", result.Summary.NonCriticalGrants),
	)

	return result, nil
}

func (a *Allocator) criticalPass(
	ctx context.Context,
	instant *domain.SupplyInstant,
	demands []*domain.PowerDemand,
	summary *Summary,
) []string {
	var shortfalls []string
	for _, d := range demands {
		if a.classifier.Classify(d) != domain.PriorityCritical {
			continue
		}

		if d.ConsumptionRate > instant.Headroom() {
			shortfalls = append(shortfalls, d.ID)
			continue
		}

		a.grant(ctx, instant, d, d.ConsumptionRate, d.ConsumptionRate, domain.PriorityCritical)
		summary.CriticalGrants++
	}
	return shortfalls
}

func (a *Allocator) nonCriticalPass(
	ctx context.Context,
	instant *domain.SupplyInstant,
	demands []*domain.PowerDemand,
	summary *Summary,
) {
	for _, d := range demands {
		if instant.ServedCritically(d.ID) {
			continue
		}

		headroomToMax := d.HeadroomToMax()
		if headroomToMax <= 0 {
			continue
		}

		amount := min(headroomToMax, d.ConsumptionRate)
		if amount > instant.Headroom() {
			continue
		}

		a.grant(ctx, instant, d, amount, d.ConsumptionRate, domain.PriorityNonCritical)
		summary.NonCriticalGrants++
	}
}

func (a *Allocator) grant(
	ctx context.Context,
	instant *domain.SupplyInstant,
	d *domain.PowerDemand,
	amount int64,
	requested int64,
	p domain.Priority,
) {
	headroom := instant.Headroom()

	instant.Grant(d.ID, amount, p)
	d.Consume(instant.Time, amount)

	if a.observer != nil {
		a.observer.OnGrant(ctx, Grant{
			Time:             instant.Time,
			DemandID:         d.ID,
			Priority:         p,
			Amount:           amount,
			CapacityAfter:    d.CurrentCapacityWatt,
			InstantHeadroom:  headroom,
			InstantOutput:    instant.PowerOutput,
			RequestedAmount:  requested,
			ClampedByCeiling: amount < requested,
		})
	}
}

func validateCurve(instants []*domain.SupplyInstant) error {
	for i, instant := range instants {
		if instant == nil {
			return fmt.Errorf("instant %d is nil: %w", i, domain.ErrUnorderedCurve)
		}
		if instant.PowerOutput < 0 {
			return fmt.Errorf("instant %s output %d: %w",
				instant.Time.Format(time.RFC3339), instant.PowerOutput, domain.ErrNegativeQuantity)
		}
		if i > 0 && !instants[i-1].Time.Before(instant.Time) {
			return fmt.Errorf("instant %d at %s not after %s: %w",
				i, instant.Time.Format(time.RFC3339), instants[i-1].Time.Format(time.RFC3339), domain.ErrUnorderedCurve)
		}
	}
	return nil
}

func checkInvariants(instant *domain.SupplyInstant, demands []*domain.PowerDemand) error {
	if instant.FulfilledDemand > instant.PowerOutput {
		return fmt.Errorf("instant %s: fulfilled %d, output %d: %w",
			instant.Time.Format(time.RFC3339), instant.FulfilledDemand, instant.PowerOutput, domain.ErrSupplyOversold)
	}
	for _, d := range demands {
		if err := d.CheckCapacity(); err != nil {
			return fmt.Errorf("instant %s: %w", instant.Time.Format(time.RFC3339), err)
		}
	}
	return nil
}
