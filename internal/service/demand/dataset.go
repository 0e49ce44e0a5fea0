package demand

const DefaultSampleRounds = 5

// SampleDataset returns rounds copies of three reference consumers, all
// starting below a 30 kW safety threshold.
func SampleDataset(rounds int) []Spec {
	if rounds <= 0 {
		return []Spec{}
	}

	specs := make([]Spec, 0, rounds*3)
	for range rounds {
		specs = append(specs,
			Spec{
				CurrentCapacityWatt:   15 * 1000,
				MaxCapacityWatt:       50 * 1000,
				MinTargetCapacityWatt: 30 * 1000,
				ConsumptionRate:       120 * 10,
			},
			Spec{
				CurrentCapacityWatt:   20 * 1000,
				MaxCapacityWatt:       75 * 1000,
				MinTargetCapacityWatt: 30 * 1000,
				ConsumptionRate:       120 * 15,
			},
			Spec{
				CurrentCapacityWatt:   25 * 1000,
				MaxCapacityWatt:       100 * 1000,
				MinTargetCapacityWatt: 30 * 1000,
				ConsumptionRate:       120 * 15,
			},
		)
	}

	return specs
}
