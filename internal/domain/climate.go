package domain

import (
	"context"
	"log/slog"
	"math"
)

// ClimateObservation is rainfall data returned by an external provider.
type ClimateObservation struct {
	AnnualRainfallMm  float64
	MonthlyRainfallMm [12]float64
	Label             string
	Confidence        float64 // 0.0–1.0 provider confidence
}

// ClimateDataSource provides observed rainfall for a coordinate. Implementations
// may fail; callers treat failure as a signal to use the static tiers.
type ClimateDataSource interface {
	FetchMonthlyRainfall(ctx context.Context, lat, lon float64) (ClimateObservation, error)
}

// cityEntry is a named location with its own match radius. An entry only
// qualifies when the query point lies within that radius.
type cityEntry struct {
	name       string
	lat, lon   float64
	radiusKm   float64
	annualMm   float64
	monthlyPct [12]float64 // fraction of annual rainfall per month, sums to 1
}

// Monthly distribution patterns. Southwest-monsoon regions peak June–September;
// the southeast coast peaks October–December with the retreating monsoon.
var (
	patternSouthwest = [12]float64{0.01, 0.01, 0.01, 0.01, 0.02, 0.18, 0.28, 0.25, 0.15, 0.05, 0.02, 0.01}
	patternNortheast = [12]float64{0.02, 0.01, 0.01, 0.02, 0.04, 0.05, 0.07, 0.09, 0.10, 0.20, 0.28, 0.11}
	patternArid      = [12]float64{0.02, 0.02, 0.02, 0.02, 0.04, 0.10, 0.30, 0.28, 0.12, 0.04, 0.02, 0.02}
	patternModerate  = [12]float64{0.02, 0.02, 0.02, 0.03, 0.05, 0.14, 0.22, 0.21, 0.14, 0.08, 0.04, 0.03}
)

var cityTable = []cityEntry{
	{name: "Mumbai", lat: 19.0760, lon: 72.8777, radiusKm: 50, annualMm: 2200, monthlyPct: patternSouthwest},
	{name: "Pune", lat: 18.5204, lon: 73.8567, radiusKm: 40, annualMm: 720, monthlyPct: patternSouthwest},
	{name: "Delhi", lat: 28.7041, lon: 77.1025, radiusKm: 60, annualMm: 790, monthlyPct: patternArid},
	{name: "Jaipur", lat: 26.9124, lon: 75.7873, radiusKm: 45, annualMm: 650, monthlyPct: patternArid},
	{name: "Chennai", lat: 13.0827, lon: 80.2707, radiusKm: 50, annualMm: 1400, monthlyPct: patternNortheast},
	{name: "Bengaluru", lat: 12.9716, lon: 77.5946, radiusKm: 45, annualMm: 970, monthlyPct: patternModerate},
	{name: "Hyderabad", lat: 17.3850, lon: 78.4867, radiusKm: 50, annualMm: 800, monthlyPct: patternModerate},
	{name: "Kolkata", lat: 22.5726, lon: 88.3639, radiusKm: 50, annualMm: 1760, monthlyPct: patternSouthwest},
	{name: "Kochi", lat: 9.9312, lon: 76.2673, radiusKm: 40, annualMm: 3000, monthlyPct: patternSouthwest},
}

// climateZone is a rectangular latitude/longitude band with a fixed rainfall
// profile. Zones are evaluated in order; first match wins.
type climateZone struct {
	name           string
	minLat, maxLat float64
	minLon, maxLon float64
	annualMm       float64
	monthlyPct     [12]float64
}

var zoneTable = []climateZone{
	{name: "Western Ghats", minLat: 8, maxLat: 21, minLon: 72.5, maxLon: 77.5, annualMm: 2500, monthlyPct: patternSouthwest},
	{name: "Northeast Hills", minLat: 22, maxLat: 29, minLon: 88, maxLon: 97.5, annualMm: 2800, monthlyPct: patternSouthwest},
	{name: "Thar Desert", minLat: 24, maxLat: 30, minLon: 68, maxLon: 76, annualMm: 300, monthlyPct: patternArid},
	{name: "Southeast Coast", minLat: 8, maxLat: 20, minLon: 79, maxLon: 87, annualMm: 1200, monthlyPct: patternNortheast},
	{name: "Konkan Coast", minLat: 8, maxLat: 23, minLon: 69, maxLon: 73.5, annualMm: 2000, monthlyPct: patternSouthwest},
	{name: "Gangetic Plain", minLat: 21, maxLat: 28.5, minLon: 76, maxLon: 88, annualMm: 1000, monthlyPct: patternModerate},
}

// nationalAverageMm is the all-India mean annual rainfall used by the final
// fallback tier.
const nationalAverageMm = 1170

// Confidence by resolution tier.
const (
	confidenceCity    = 0.9
	confidenceZone    = 0.7
	confidenceDefault = 0.6
)

// soilBand maps a latitude/longitude box to one of five soil types with a
// fixed percolation rate. Evaluated in order, first match wins.
type soilBand struct {
	soilType        string
	minLat, maxLat  float64
	minLon, maxLon  float64
	percolationRate float64
}

var soilTable = []soilBand{
	{soilType: "sandy", minLat: 24, maxLat: 30, minLon: 68, maxLon: 76, percolationRate: 0.9},
	{soilType: "black cotton", minLat: 15, maxLat: 22, minLon: 73, maxLon: 80, percolationRate: 0.4},
	{soilType: "laterite", minLat: 0, maxLat: 15, minLon: 70, maxLon: 90, percolationRate: 0.6},
	{soilType: "alluvial", minLat: 21, maxLat: 31, minLon: 73, maxLon: 89, percolationRate: 0.7},
}

const (
	defaultSoilType        = "loamy"
	defaultPercolationRate = 0.5
)

// ResolveClimate produces the full climate profile for a coordinate. When an
// external source is provided its observation pre-empts the static tiers, but
// any error or empty result falls through silently. This function never fails.
func ResolveClimate(ctx context.Context, lat, lon float64, source ClimateDataSource, logger *slog.Logger) ClimateProfile {
	profile := resolveStatic(lat, lon)
	profile.SoilType, profile.PercolationRate = SoilFor(lat, lon)

	if source == nil {
		return profile
	}

	obs, err := source.FetchMonthlyRainfall(ctx, lat, lon)
	if err != nil {
		logger.Warn("climate source failed, using static profile",
			"lat", lat,
			"lon", lon,
			"tier", profile.Source,
			"error", err,
		)
		return profile
	}
	if obs.AnnualRainfallMm <= 0 {
		return profile
	}

	profile.AnnualRainfallMm = obs.AnnualRainfallMm
	profile.MonthlyRainfallMm = obs.MonthlyRainfallMm
	if obs.Label != "" {
		profile.ZoneLabel = obs.Label
	}
	profile.Confidence = obs.Confidence
	if profile.Confidence <= 0 {
		profile.Confidence = confidenceCity
	}
	profile.Source = "observed"
	return profile
}

// resolveStatic runs the three-tier table lookup: city match, zone predicate,
// national default.
func resolveStatic(lat, lon float64) ClimateProfile {
	if city, ok := matchCity(lat, lon); ok {
		return ClimateProfile{
			AnnualRainfallMm:  city.annualMm,
			MonthlyRainfallMm: monthlyFromPattern(city.annualMm, city.monthlyPct),
			ZoneLabel:         city.name,
			Confidence:        confidenceCity,
			Source:            "city",
		}
	}

	for _, zone := range zoneTable {
		if lat >= zone.minLat && lat <= zone.maxLat && lon >= zone.minLon && lon <= zone.maxLon {
			return ClimateProfile{
				AnnualRainfallMm:  zone.annualMm,
				MonthlyRainfallMm: monthlyFromPattern(zone.annualMm, zone.monthlyPct),
				ZoneLabel:         zone.name,
				Confidence:        confidenceZone,
				Source:            "zone",
			}
		}
	}

	return ClimateProfile{
		AnnualRainfallMm:  nationalAverageMm,
		MonthlyRainfallMm: monthlyFromPattern(nationalAverageMm, patternModerate),
		ZoneLabel:         "National Average",
		Confidence:        confidenceDefault,
		Source:            "default",
	}
}

// matchCity returns the nearest city entry whose own radius contains the point.
// An entry outside its declared radius never matches, even if it is globally
// nearest.
func matchCity(lat, lon float64) (cityEntry, bool) {
	var best cityEntry
	bestDist := math.MaxFloat64
	found := false

	for _, city := range cityTable {
		d := haversineKm(lat, lon, city.lat, city.lon)
		if d <= city.radiusKm && d < bestDist {
			best = city
			bestDist = d
			found = true
		}
	}
	return best, found
}

// SoilFor resolves the soil type and percolation rate for a coordinate via
// coarse latitude/longitude banding. It is independent of rainfall resolution
// and never fails.
func SoilFor(lat, lon float64) (string, float64) {
	for _, band := range soilTable {
		if lat >= band.minLat && lat <= band.maxLat && lon >= band.minLon && lon <= band.maxLon {
			return band.soilType, band.percolationRate
		}
	}
	return defaultSoilType, defaultPercolationRate
}

func monthlyFromPattern(annualMm float64, pct [12]float64) [12]float64 {
	var monthly [12]float64
	for i, p := range pct {
		monthly[i] = annualMm * p
	}
	return monthly
}

const earthRadiusKm = 6371

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
