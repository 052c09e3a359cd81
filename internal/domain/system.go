package domain

import "math"

// Tier thresholds. Rules are evaluated in order and a rule fires when either
// the harvest volume or the roof area clears its threshold.
const (
	largeHarvestThreshold  = 150000
	largeAreaThreshold     = 200
	mediumHarvestThreshold = 75000
	mediumAreaThreshold    = 100

	tankCapacitySmall  = 1500
	tankCapacityMedium = 3000
	tankCapacityLarge  = 5000

	// recommendedCoveragePercent is the minimum demand coverage at which a
	// system is worth installing.
	recommendedCoveragePercent = 30
)

// RecommendSystem classifies an assessment into a size tier with tank capacity
// and demand coverage. Zero demand yields 0% coverage rather than an error.
func RecommendSystem(annualHarvestLiters int64, dailyDemandLiters, roofAreaM2 float64) SystemRecommendation {
	rec := SystemRecommendation{Tier: TierSmall, TankCapacityLiters: tankCapacitySmall}

	switch {
	case annualHarvestLiters > largeHarvestThreshold || roofAreaM2 > largeAreaThreshold:
		rec.Tier = TierLarge
		rec.TankCapacityLiters = tankCapacityLarge
	case annualHarvestLiters > mediumHarvestThreshold || roofAreaM2 > mediumAreaThreshold:
		rec.Tier = TierMedium
		rec.TankCapacityLiters = tankCapacityMedium
	}

	coverage := safeRatio(float64(annualHarvestLiters), sanitizeNonNegative(dailyDemandLiters)*daysPerYear)
	rec.DemandCoveragePercent = int64(math.Round(100 * coverage))
	rec.Recommended = rec.DemandCoveragePercent >= recommendedCoveragePercent
	return rec
}
