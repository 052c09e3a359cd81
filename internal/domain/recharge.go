package domain

import (
	"fmt"
	"math"
)

const (
	// pitFootprintM2 is the plan area of one nominal 2m × 2m recharge pit.
	pitFootprintM2 = 4.0

	pitCost  = 15000
	wellCost = 45000

	// smallSiteAreaM2 is the roof area below which a recharge well is not
	// recommended and pits alone are proposed.
	smallSiteAreaM2 = 100
)

// SizeRechargeStructures recommends recharge pits and wells for a site.
// Required pit area is the annual harvest (m³) spread over a year of
// percolation; sites under 100 m² get pits only (minimum one), larger sites
// get one recharge well plus any additional pits.
func SizeRechargeStructures(roofAreaM2, percolationRate float64, annualHarvestLiters int64) RechargeAnalysis {
	harvestM3 := float64(annualHarvestLiters) / 1000
	pitAreaM2 := safeRatio(harvestM3, sanitizeNonNegative(percolationRate)*daysPerYear)
	pitCount := int(math.Ceil(pitAreaM2 / pitFootprintM2))

	analysis := RechargeAnalysis{
		SoilSuitability:        soilSuitability(percolationRate),
		RechargeCapacityLiters: roundLiters(float64(annualHarvestLiters) * groundwaterFraction),
		Recommendation:         rechargeRecommendation(percolationRate),
	}

	if roofAreaM2 < smallSiteAreaM2 {
		if pitCount < 1 {
			pitCount = 1
		}
		analysis.Structures = append(analysis.Structures, pitStructure(pitCount))
		analysis.TotalCost = int64(pitCount) * pitCost
		return analysis
	}

	analysis.Structures = append(analysis.Structures, RechargeStructure{
		Type:        "well",
		Quantity:    1,
		Dimensions:  "15m deep, 0.5m diameter",
		Cost:        wellCost,
		Description: "Bored recharge well returning filtered overflow to the aquifer",
	})
	analysis.TotalCost = wellCost

	if pitCount > 0 {
		analysis.Structures = append(analysis.Structures, pitStructure(pitCount))
		analysis.TotalCost += int64(pitCount) * pitCost
	}
	return analysis
}

func pitStructure(count int) RechargeStructure {
	return RechargeStructure{
		Type:        "pit",
		Quantity:    count,
		Dimensions:  "2m x 2m x 2m",
		Cost:        int64(count) * pitCost,
		Description: fmt.Sprintf("%d percolation pit(s) filled with graded aggregate", count),
	}
}

func soilSuitability(percolationRate float64) string {
	if percolationRate > 0.5 {
		return "Good"
	}
	return "Moderate"
}

func rechargeRecommendation(percolationRate float64) string {
	if percolationRate > 0.6 {
		return "Soil percolates well; direct recharge structures are effective at this site."
	}
	return "Slow-draining soil; pair recharge structures with a silt trap and expect longer percolation times."
}
