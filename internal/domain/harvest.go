package domain

import "math"

const (
	// firstFlushLossMm is the rainfall depth discarded each month to flush
	// contaminants off the catchment surface.
	firstFlushLossMm = 2.0

	// storageEfficiency accounts for conveyance and overflow losses between
	// roof and tank.
	storageEfficiency = 0.95

	daysPerYear = 365
)

// runoffCoefficients maps roof material to the fraction of rainfall that
// becomes collectible runoff.
var runoffCoefficients = map[RoofType]float64{
	RoofConcrete: 0.85,
	RoofMetal:    0.90,
	RoofTiled:    0.75,
	RoofOther:    0.70,
}

// RunoffCoefficient returns the runoff fraction for a roof material.
// Unknown materials get the conservative "other" coefficient.
func RunoffCoefficient(rt RoofType) float64 {
	if c, ok := runoffCoefficients[rt]; ok {
		return c
	}
	return runoffCoefficients[RoofOther]
}

// ComputeHarvest converts roof geometry and a monthly rainfall profile into
// collectible volumes. Monthly volumes are rounded to whole liters before
// summing, so AnnualLiters is exactly the sum of the twelve monthly values.
// Non-finite or negative inputs are coerced to zero; the function never panics.
func ComputeHarvest(roofAreaM2 float64, roofType RoofType, monthlyRainfallMm [12]float64) HarvestResult {
	area := sanitizeNonNegative(roofAreaM2)
	coeff := RunoffCoefficient(roofType)

	result := HarvestResult{RunoffCoefficient: coeff}
	for i, mm := range monthlyRainfallMm {
		effective := sanitizeNonNegative(mm) - firstFlushLossMm
		if effective < 0 {
			effective = 0
		}
		liters := roundLiters(area * effective * coeff * storageEfficiency)
		result.MonthlyLiters[i] = liters
		result.AnnualLiters += liters
		if liters > result.PeakMonthLiters {
			result.PeakMonthLiters = liters
		}
	}
	result.DailyAverageLiters = roundLiters(float64(result.AnnualLiters) / daysPerYear)
	return result
}

// sanitizeNonNegative coerces NaN, Inf, and negative values to 0.
func sanitizeNonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// roundLiters rounds to the nearest whole liter, guarding non-finite input.
func roundLiters(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.Round(v))
}

// safeRatio returns num/den, or 0 when the denominator is zero or either
// operand is non-finite. Division-by-zero must never leak NaN or Inf out of
// a calculation stage.
func safeRatio(num, den float64) float64 {
	if den == 0 || math.IsNaN(num) || math.IsInf(num, 0) || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
