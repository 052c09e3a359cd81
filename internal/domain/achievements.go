package domain

// achievementRule is one badge definition with its earning predicate.
type achievementRule struct {
	id          int
	title       string
	description string
	icon        string
	earned      func(waterSaved int64, score int, roofAreaM2 float64) bool
}

// achievementCatalog is the fixed badge set. Rules are independent; a record
// can earn any combination.
var achievementCatalog = []achievementRule{
	{
		id:          1,
		title:       "Water Warrior",
		description: "Save 10,000 liters of water",
		icon:        "droplet",
		earned: func(waterSaved int64, _ int, _ float64) bool {
			return waterSaved >= 10000
		},
	},
	{
		id:          2,
		title:       "Top Saver",
		description: "Reach a sustainability score of 75",
		icon:        "trophy",
		earned: func(_ int64, score int, _ float64) bool {
			return score >= 75
		},
	},
	{
		id:          3,
		title:       "Consistency",
		description: "Harvest from a roof of 100 m² or more",
		icon:        "calendar",
		earned: func(_ int64, _ int, roofAreaM2 float64) bool {
			return roofAreaM2 >= 100
		},
	},
	{
		id:          4,
		title:       "Community Leader",
		description: "Harvest from a roof of 200 m² or more",
		icon:        "users",
		earned: func(_ int64, _ int, roofAreaM2 float64) bool {
			return roofAreaM2 >= 200
		},
	},
	{
		id:          5,
		title:       "Monsoon Master",
		description: "Save 15,000 liters of water",
		icon:        "cloud-rain",
		earned: func(waterSaved int64, _ int, _ float64) bool {
			return waterSaved >= 15000
		},
	},
}

// EvaluateAchievements checks the fixed badge catalog against current totals.
// Evaluation is idempotent: earning status is a pure function of the inputs,
// not incrementally tracked state. Earned badges carry the evaluation time
// from the injected clock; unearned badges carry a nil timestamp.
func EvaluateAchievements(totalWaterSavedLiters int64, score int, roofAreaM2 float64) []Achievement {
	now := clock.Now()
	achievements := make([]Achievement, 0, len(achievementCatalog))
	for _, rule := range achievementCatalog {
		a := Achievement{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description,
			Icon:        rule.icon,
		}
		if rule.earned(totalWaterSavedLiters, score, roofAreaM2) {
			a.Earned = true
			t := now
			a.EarnedAt = &t
		}
		achievements = append(achievements, a)
	}
	return achievements
}
