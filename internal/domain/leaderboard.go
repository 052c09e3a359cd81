package domain

import (
	"math"
	"math/rand"
	"sort"
)

// Community-equivalent divisors: what the pooled harvest volume amounts to.
const (
	olympicPoolLiters     = 2500000
	householdAnnualLiters = 150000
	treeWateringLiters    = 1000
)

// RankedEntry is one assessment's position on the leaderboard.
type RankedEntry struct {
	Rank         int    `json:"rank"`
	AssessmentID string `json:"assessment_id"`
	UserID       string `json:"user_id,omitempty"`
	UserEmail    string `json:"user_email,omitempty"`
	City         string `json:"city,omitempty"`
	Score        int    `json:"score"`
	AnnualLiters int64  `json:"annual_liters"`
}

// CommunityEquivalents translates the pooled community harvest into tangible
// comparisons. All values are floored.
type CommunityEquivalents struct {
	OlympicPools   int64 `json:"olympic_pools"`
	Households     int64 `json:"households"`
	TreesWatered   int64 `json:"trees_watered"`
	CarbonOffsetKg int64 `json:"carbon_offset_kg"`
}

// CommunityView is the aggregated leaderboard for one neighborhood. An empty
// assessment list produces a well-defined zero view, not an error.
type CommunityView struct {
	Entries             []RankedEntry        `json:"entries"`
	UserRank            int                  `json:"user_rank"` // 0 when the user has no record
	TotalLiters         int64                `json:"total_liters"`
	MonthlyTotalsLiters [12]int64            `json:"monthly_totals_liters"`
	Equivalents         CommunityEquivalents `json:"equivalents"`
}

// AggregateCommunity ranks assessments by sustainability score and pools their
// monthly harvests. Scores are recomputed from stored fields rather than
// trusting the cached value. The sort is stable, so ties keep the input
// (typically most-recent-first) order, and ranks are always a gapless 1..N.
// The requesting user is located by user id or email; rank 0 means no match.
func AggregateCommunity(assessments []Assessment, requestingUserID string) CommunityView {
	view := CommunityView{Entries: make([]RankedEntry, 0, len(assessments))}

	for _, a := range assessments {
		score := ScoreSustainability(a.RoofAreaM2, a.WaterDemandLPD, a.Climate.AnnualRainfallMm, a.Harvest.AnnualLiters, a.Environmental.WaterSavedLiters)
		view.Entries = append(view.Entries, RankedEntry{
			AssessmentID: a.ID,
			UserID:       a.UserID,
			UserEmail:    a.UserEmail,
			City:         a.Location.City,
			Score:        score,
			AnnualLiters: a.Harvest.AnnualLiters,
		})

		view.TotalLiters += a.Harvest.AnnualLiters
		for i, liters := range a.Harvest.MonthlyLiters {
			view.MonthlyTotalsLiters[i] += liters
		}
	}

	sort.SliceStable(view.Entries, func(i, j int) bool {
		return view.Entries[i].Score > view.Entries[j].Score
	})
	for i := range view.Entries {
		view.Entries[i].Rank = i + 1
		if requestingUserID != "" && view.UserRank == 0 &&
			(view.Entries[i].UserID == requestingUserID || view.Entries[i].UserEmail == requestingUserID) {
			view.UserRank = i + 1
		}
	}

	view.Equivalents = communityEquivalents(view.TotalLiters)
	return view
}

func communityEquivalents(totalLiters int64) CommunityEquivalents {
	if totalLiters < 0 {
		totalLiters = 0
	}
	return CommunityEquivalents{
		OlympicPools:   totalLiters / olympicPoolLiters,
		Households:     totalLiters / householdAnnualLiters,
		TreesWatered:   totalLiters / treeWateringLiters,
		CarbonOffsetKg: int64(math.Floor(float64(totalLiters) * co2KgPerLiter)),
	}
}

// JitterMonthly applies seeded display noise to monthly totals for chart
// variety. It is a presentation decorator only: the same seed always yields
// the same output, the input is never modified, and no core formula calls it.
// Amplitude is the maximum relative deviation, e.g. 0.1 for ±10%.
func JitterMonthly(totals [12]int64, seed int64, amplitude float64) [12]int64 {
	if amplitude <= 0 {
		return totals
	}
	rng := rand.New(rand.NewSource(seed))

	var jittered [12]int64
	for i, v := range totals {
		factor := 1 + amplitude*(2*rng.Float64()-1)
		jittered[i] = int64(math.Round(float64(v) * factor))
		if jittered[i] < 0 {
			jittered[i] = 0
		}
	}
	return jittered
}
