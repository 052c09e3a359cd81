package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoofType identifies the roof material, which determines the runoff coefficient.
type RoofType string

const (
	RoofConcrete RoofType = "concrete"
	RoofMetal    RoofType = "metal"
	RoofTiled    RoofType = "tiled"
	RoofOther    RoofType = "other"
)

// Location is a user-supplied position. Coordinates are required; the address
// fields are free text and only feed neighborhood grouping.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Country   string  `json:"country,omitempty"`
}

// AssessmentInput is the ephemeral submission that drives one assessment.
type AssessmentInput struct {
	UserID         string   `json:"user_id,omitempty"`
	UserEmail      string   `json:"user_email,omitempty"`
	Location       Location `json:"location"`
	RoofAreaM2     float64  `json:"roof_area_m2"`
	RoofType       RoofType `json:"roof_type"`
	WaterDemandLPD float64  `json:"water_demand_lpd"` // liters per day
}

// ClimateProfile is the resolved rainfall and soil context for a coordinate.
// Computed once per assessment and immutable afterward.
type ClimateProfile struct {
	AnnualRainfallMm  float64     `json:"annual_rainfall_mm"`
	MonthlyRainfallMm [12]float64 `json:"monthly_rainfall_mm"`
	ZoneLabel         string      `json:"zone_label"`
	Confidence        float64     `json:"confidence"` // 0.0–1.0, by resolution tier
	SoilType          string      `json:"soil_type"`
	PercolationRate   float64     `json:"percolation_rate"`
	Source            string      `json:"source"` // "city", "zone", "default", or "observed"
}

// HarvestResult holds collectible volumes derived from roof geometry and rainfall.
type HarvestResult struct {
	MonthlyLiters      [12]int64 `json:"monthly_liters"`
	AnnualLiters       int64     `json:"annual_liters"`
	DailyAverageLiters int64     `json:"daily_average_liters"`
	PeakMonthLiters    int64     `json:"peak_month_liters"`
	RunoffCoefficient  float64   `json:"runoff_coefficient"`
}

// SizeTier classifies the recommended system scale.
type SizeTier string

const (
	TierSmall  SizeTier = "small"
	TierMedium SizeTier = "medium"
	TierLarge  SizeTier = "large"
)

// SystemRecommendation is the sizing verdict for an assessment.
type SystemRecommendation struct {
	Tier                  SizeTier `json:"tier"`
	TankCapacityLiters    int64    `json:"tank_capacity_liters"`
	DemandCoveragePercent int64    `json:"demand_coverage_percent"`
	Recommended           bool     `json:"recommended"` // coverage ≥ 30%
}

// CostBreakdown covers installation economics in currency-agnostic units.
// PaybackYears is nil when annual savings are zero or negative.
type CostBreakdown struct {
	EquipmentCost     int64    `json:"equipment_cost"`
	InstallationCost  int64    `json:"installation_cost"`
	TotalCost         int64    `json:"total_cost"`
	SubsidyAmount     int64    `json:"subsidy_amount"`
	NetCost           int64    `json:"net_cost"`
	AnnualSavings     int64    `json:"annual_savings"`
	PaybackYears      *float64 `json:"payback_years,omitempty"`
	ROIPercent        int64    `json:"roi_percent"`
}

// EnvironmentalImpact expresses the harvest volume as environmental equivalents.
type EnvironmentalImpact struct {
	WaterSavedLiters          int64 `json:"water_saved_liters"`
	CO2ReductionKg            int64 `json:"co2_reduction_kg"`
	EnergySavedKwh            int64 `json:"energy_saved_kwh"`
	GroundwaterRechargeLiters int64 `json:"groundwater_recharge_liters"`
	EquivalentTrees           int64 `json:"equivalent_trees"`
}

// RechargeStructure is one recommended pit or well.
type RechargeStructure struct {
	Type        string `json:"type"` // "pit" or "well"
	Quantity    int    `json:"quantity"`
	Dimensions  string `json:"dimensions"`
	Cost        int64  `json:"cost"`
	Description string `json:"description"`
}

// RechargeAnalysis recommends groundwater recharge structures for a site.
type RechargeAnalysis struct {
	SoilSuitability        string              `json:"soil_suitability"` // "Good" or "Moderate"
	Structures             []RechargeStructure `json:"structures"`
	TotalCost              int64               `json:"total_cost"`
	RechargeCapacityLiters int64               `json:"recharge_capacity_liters"`
	Recommendation         string              `json:"recommendation"`
}

// Achievement is one badge from the fixed catalog. Earned status is a pure
// function of current totals; EarnedAt carries the evaluation time.
type Achievement struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
	Icon        string     `json:"icon"`
}

// Assessment is the persisted record aggregating the input with every derived
// stage. Records are never mutated in place; a re-submission creates a new one.
type Assessment struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id,omitempty"`
	UserEmail      string               `json:"user_email,omitempty"`
	Location       Location             `json:"location"`
	RoofAreaM2     float64              `json:"roof_area_m2"`
	RoofType       RoofType             `json:"roof_type"`
	WaterDemandLPD float64              `json:"water_demand_lpd"`
	Climate        ClimateProfile       `json:"climate"`
	Harvest        HarvestResult        `json:"harvest"`
	System         SystemRecommendation `json:"system"`
	Costs          CostBreakdown        `json:"costs"`
	Environmental  EnvironmentalImpact  `json:"environmental"`
	Recharge       RechargeAnalysis     `json:"recharge"`
	Score          int                  `json:"score"` // cached; recomputable from stored fields
	Achievements   []Achievement        `json:"achievements"`
	NeighborhoodID string               `json:"neighborhood_id"`
	CreatedAt      time.Time            `json:"created_at"`
}

// NewAssessmentID returns a fresh record identifier.
func NewAssessmentID() string {
	return uuid.NewString()
}
