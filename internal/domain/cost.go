package domain

import "math"

// Per-tier pricing: a fixed base cost plus a per-square-meter rate, in
// currency-agnostic units.
type tierPricing struct {
	baseCost  float64
	ratePerM2 float64
}

var pricingByTier = map[SizeTier]tierPricing{
	TierSmall:  {baseCost: 25000, ratePerM2: 150},
	TierMedium: {baseCost: 60000, ratePerM2: 200},
	TierLarge:  {baseCost: 120000, ratePerM2: 250},
}

const (
	installationFraction = 0.30
	subsidyFraction      = 0.25

	// savingsPerLiter is the avoided municipal-supply cost per harvested liter.
	savingsPerLiter = 0.015
)

// EstimateCosts derives the cost breakdown for a system tier. Payback is nil
// when annual savings are zero or negative, and ROI is guarded to 0 when the
// net cost is not positive, so Inf and NaN never reach the caller.
func EstimateCosts(tier SizeTier, roofAreaM2 float64, annualHarvestLiters int64) CostBreakdown {
	pricing, ok := pricingByTier[tier]
	if !ok {
		pricing = pricingByTier[TierSmall]
	}

	equipment := pricing.baseCost + pricing.ratePerM2*sanitizeNonNegative(roofAreaM2)
	installation := installationFraction * equipment
	total := equipment + installation
	subsidy := subsidyFraction * total
	net := total - subsidy
	savings := float64(annualHarvestLiters) * savingsPerLiter
	if savings < 0 {
		savings = 0
	}

	breakdown := CostBreakdown{
		EquipmentCost:    roundLiters(equipment),
		InstallationCost: roundLiters(installation),
		TotalCost:        roundLiters(total),
		SubsidyAmount:    roundLiters(subsidy),
		NetCost:          roundLiters(net),
		AnnualSavings:    roundLiters(savings),
	}

	if savings > 0 {
		payback := math.Round(total/savings*10) / 10
		breakdown.PaybackYears = &payback
	}
	if net > 0 {
		breakdown.ROIPercent = int64(math.Round(100 * savings / net))
	}
	return breakdown
}
