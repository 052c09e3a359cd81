package domain

import "math"

// Score component caps. The four terms sum to at most 100.
const (
	scoreCapHarvestEfficiency = 40
	scoreCapRoofScale         = 20
	scoreCapDemandCoverage    = 20
	scoreCapEnvironmental     = 20

	// harvestEfficiencyFactor discounts the theoretical maximum yield when
	// judging how much of it the site actually captures.
	harvestEfficiencyFactor = 0.8

	roofScaleDivisorM2         = 1000
	environmentalDivisorLiters = 10000
)

// ScoreSustainability combines harvest efficiency, roof scale, demand coverage,
// and environmental impact into a single integer in [0, 100]. Each term is
// clamped to its own cap before summing and any zero-denominator term
// contributes 0, so all-zero inputs score exactly 0.
func ScoreSustainability(roofAreaM2, waterDemandLPD, averageRainfallMm float64, annualHarvestLiters, waterSavedLiters int64) int {
	harvest := float64(annualHarvestLiters)

	efficiency := clamp(scoreCapHarvestEfficiency*safeRatio(harvest, sanitizeNonNegative(roofAreaM2)*sanitizeNonNegative(averageRainfallMm)*harvestEfficiencyFactor), scoreCapHarvestEfficiency)
	roofScale := clamp(scoreCapRoofScale*sanitizeNonNegative(roofAreaM2)/roofScaleDivisorM2, scoreCapRoofScale)
	coverage := clamp(scoreCapDemandCoverage*safeRatio(harvest, sanitizeNonNegative(waterDemandLPD)*daysPerYear), scoreCapDemandCoverage)
	environmental := clamp(scoreCapEnvironmental*float64(waterSavedLiters)/environmentalDivisorLiters, scoreCapEnvironmental)

	total := efficiency + roofScale + coverage + environmental
	if total > 100 {
		total = 100
	}
	return int(math.Round(total))
}

// clamp bounds v to [0, cap], coercing non-finite values to 0.
func clamp(v, cap float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > cap {
		return cap
	}
	return v
}
