package domain

// Environmental conversion constants. Tree equivalence uses the commonly cited
// 21.77 kg of CO2 absorbed per tree per year.
const (
	co2KgPerLiter       = 0.0003
	energyKwhPerLiter   = 0.002
	groundwaterFraction = 0.7
	co2KgPerTreePerYear = 21.77
)

// EstimateImpact expresses an annual harvest volume as environmental
// equivalents. All outputs are rounded integers floored at zero.
func EstimateImpact(annualHarvestLiters int64) EnvironmentalImpact {
	liters := float64(annualHarvestLiters)
	if liters < 0 {
		liters = 0
	}

	co2 := liters * co2KgPerLiter
	return EnvironmentalImpact{
		WaterSavedLiters:          roundLiters(liters),
		CO2ReductionKg:            roundLiters(co2),
		EnergySavedKwh:            roundLiters(liters * energyKwhPerLiter),
		GroundwaterRechargeLiters: roundLiters(liters * groundwaterFraction),
		EquivalentTrees:           roundLiters(co2 / co2KgPerTreePerYear),
	}
}
