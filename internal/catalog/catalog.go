// Package catalog holds the static reference data embedded in every new
// document: the supplement schedule, the sauna protocol, and the
// achievement and challenge definition tables. Catalog entries are pure
// data and carry no behavior.
package catalog

import "github.com/mahavak/rhonda/internal/models"

// Supplements returns the full supplement schedule in slot order.
func Supplements() []models.SupplementDefinition {
	return []models.SupplementDefinition{
		{
			ID:             "creatine",
			Name:           "Creatine",
			Brand:          "Thorne",
			Dose:           "5-20g variable",
			Timing:         models.SlotMorning,
			Category:       "Performance",
			Benefits:       []string{"Cognitive function", "Physical performance", "Brain energy"},
			CostPerMonth:   25,
			ResearchRating: 5,
		},
		{
			ID:             "glutamine",
			Name:           "Glutamine",
			Brand:          "Thorne",
			Dose:           "5g",
			Timing:         models.SlotMorning,
			Category:       "Recovery",
			Benefits:       []string{"Gut health", "Recovery", "Immune support"},
			CostPerMonth:   20,
			ResearchRating: 4,
		},
		{
			ID:             "beetroot",
			Name:           "Beetroot Extract",
			Brand:          "Now Foods",
			Dose:           "1 tablespoon",
			Timing:         models.SlotMorning,
			Category:       "Performance",
			Benefits:       []string{"Nitric oxide boost", "Performance", "Blood flow"},
			CostPerMonth:   15,
			ResearchRating: 4,
		},
		{
			ID:             "fish_oil_am",
			Name:           "Fish Oil",
			Brand:          "Generic",
			Dose:           "~1g",
			Timing:         models.SlotBreakfast,
			Category:       "Essential",
			Benefits:       []string{"Heart health", "Brain function", "Anti-inflammatory"},
			CostPerMonth:   30,
			ResearchRating: 5,
		},
		{
			ID:             "alpha_lipoic_acid",
			Name:           "Alpha Lipoic Acid",
			Brand:          "Generic",
			Dose:           "Standard dose",
			Timing:         models.SlotBreakfast,
			Category:       "Antioxidant",
			Benefits:       []string{"Antioxidant", "Blood sugar support"},
			CostPerMonth:   18,
			ResearchRating: 4,
		},
		{
			ID:             "sulforaphane",
			Name:           "Sulforaphane",
			Brand:          "Avmacol",
			Dose:           "Per package",
			Timing:         models.SlotBreakfast,
			Category:       "Antioxidant",
			Benefits:       []string{"Detoxification", "Cancer prevention", "Nrf2 activation"},
			CostPerMonth:   45,
			ResearchRating: 5,
		},
		{
			ID:             "multivitamin",
			Name:           "Multivitamin O.N.E.",
			Brand:          "Pure Encapsulations",
			Dose:           "1 capsule",
			Timing:         models.SlotLunch,
			Category:       "Essential",
			Benefits:       []string{"Complete micronutrient coverage"},
			CostPerMonth:   28,
			ResearchRating: 4,
		},
		{
			ID:             "pqq",
			Name:           "PQQ",
			Brand:          "Life Extension",
			Dose:           "20mg",
			Timing:         models.SlotLunch,
			Category:       "Mitochondrial",
			Benefits:       []string{"Mitochondrial health", "Cognitive function"},
			CostPerMonth:   35,
			ResearchRating: 4,
		},
		{
			ID:             "cocoavia",
			Name:           "CocoaVia",
			Brand:          "CocoaVia",
			Dose:           "Per package",
			Timing:         models.SlotLunch,
			Category:       "Brain",
			Benefits:       []string{"Brain health", "Heart health", "Blood flow"},
			CostPerMonth:   40,
			ResearchRating: 4,
		},
		{
			ID:             "vitamin_d",
			Name:           "Vitamin D3",
			Brand:          "Generic",
			Dose:           "2,000 IU",
			Timing:         models.SlotEvening,
			Category:       "Essential",
			Benefits:       []string{"Immune health", "Bone health", "Hormone regulation"},
			CostPerMonth:   12,
			ResearchRating: 5,
		},
		{
			ID:             "magnesium",
			Name:           "Magnesium Glycinate",
			Brand:          "Pure Encapsulations",
			Dose:           "~125mg",
			Timing:         models.SlotEvening,
			Category:       "Sleep",
			Benefits:       []string{"Sleep quality", "Muscle relaxation", "Stress reduction"},
			CostPerMonth:   22,
			ResearchRating: 5,
		},
		{
			ID:             "melatonin",
			Name:           "Melatonin",
			Brand:          "Generic",
			Dose:           "3mg",
			Timing:         models.SlotEvening,
			Category:       "Sleep",
			Benefits:       []string{"Sleep regulation", "Antioxidant", "Neuroprotection"},
			CostPerMonth:   8,
			ResearchRating: 5,
		},
		{
			ID:             "ubiquinol",
			Name:           "Ubiquinol (CoQ10)",
			Brand:          "Pure Encapsulations Vesisorb",
			Dose:           "Standard dose",
			Timing:         models.SlotEvening,
			Category:       "Mitochondrial",
			Benefits:       []string{"Mitochondrial energy", "Heart health", "Antioxidant"},
			CostPerMonth:   55,
			ResearchRating: 4,
		},
		{
			ID:             "myoinositol",
			Name:           "Myoinositol",
			Brand:          "Pure Encapsulations",
			Dose:           "1 scoop",
			Timing:         models.SlotEvening,
			Category:       "Sleep",
			Benefits:       []string{"Sleep support", "Metabolic health", "Mood regulation"},
			CostPerMonth:   32,
			ResearchRating: 4,
		},
	}
}

// SaunaProtocol returns the reference sauna protocol.
func SaunaProtocol() models.SaunaProtocol {
	return models.SaunaProtocol{
		TemperatureF:    174,
		OptimalMinutes:  20,
		MinimumMinutes:  11,
		SessionsPerWeek: "4-7x per week",
		HeatShockTempF:  163,
		Notes: []string{
			"Duration matters: 20+ min = 50% mortality reduction vs 8% for 11 min",
			"4-7x = 63% less cardiac death vs 22% for 2-3x/week",
			"Start at 140F and build tolerance",
			"Stay hydrated with electrolytes",
		},
	}
}

// Achievements returns the achievement definition table. Every entry's
// requirement type is one of the derived metrics, so the full table is
// evaluable from a document snapshot alone.
func Achievements() []models.AchievementDefinition {
	return []models.AchievementDefinition{
		{
			ID:          "first_supplement",
			Name:        "First Step",
			Description: "Take your first supplement",
			Category:    "Getting Started",
			Points:      10,
			Requirement: models.Requirement{Type: models.ReqSupplementsTaken, Value: 1},
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "first_week",
			Name:        "Week Warrior",
			Description: "Complete your first week of tracking",
			Category:    "Consistency",
			Points:      50,
			Requirement: models.Requirement{Type: models.ReqDaysTracked, Value: 7},
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "streak_starter",
			Name:        "Streak Starter",
			Description: "Maintain a 7-day supplement streak",
			Category:    "Consistency",
			Points:      100,
			Requirement: models.Requirement{Type: models.ReqStreakDays, Value: 7},
			Rarity:      models.RarityUncommon,
		},
		{
			ID:          "committed_crusader",
			Name:        "Committed Crusader",
			Description: "Maintain a 30-day supplement streak",
			Category:    "Consistency",
			Points:      300,
			Requirement: models.Requirement{Type: models.ReqStreakDays, Value: 30},
			Rarity:      models.RarityRare,
		},
		{
			ID:          "unstoppable_force",
			Name:        "Unstoppable Force",
			Description: "Maintain a 100-day supplement streak",
			Category:    "Consistency",
			Points:      1000,
			Requirement: models.Requirement{Type: models.ReqStreakDays, Value: 100},
			Rarity:      models.RarityLegendary,
		},
		{
			ID:          "supplement_scholar",
			Name:        "Supplement Scholar",
			Description: "Take 100 supplements total",
			Category:    "Mastery",
			Points:      200,
			Requirement: models.Requirement{Type: models.ReqSupplementsTaken, Value: 100},
			Rarity:      models.RarityUncommon,
		},
		{
			ID:          "wellness_guru",
			Name:        "Wellness Guru",
			Description: "Take 500 supplements total",
			Category:    "Mastery",
			Points:      500,
			Requirement: models.Requirement{Type: models.ReqSupplementsTaken, Value: 500},
			Rarity:      models.RarityRare,
		},
		{
			ID:          "supplement_master",
			Name:        "Supplement Master",
			Description: "Take 1000 supplements total",
			Category:    "Mastery",
			Points:      1000,
			Requirement: models.Requirement{Type: models.ReqSupplementsTaken, Value: 1000},
			Rarity:      models.RarityLegendary,
		},
		{
			ID:          "heat_seeker",
			Name:        "Heat Seeker",
			Description: "Complete your first sauna session",
			Category:    "Sauna",
			Points:      50,
			Requirement: models.Requirement{Type: models.ReqSaunaSessions, Value: 1},
			Rarity:      models.RarityCommon,
		},
		{
			ID:          "sauna_warrior",
			Name:        "Sauna Warrior",
			Description: "Complete 50 sauna sessions",
			Category:    "Sauna",
			Points:      300,
			Requirement: models.Requirement{Type: models.ReqSaunaSessions, Value: 50},
			Rarity:      models.RarityRare,
		},
		{
			ID:          "challenge_champion",
			Name:        "Challenge Champion",
			Description: "Complete and claim your first challenge",
			Category:    "Challenges",
			Points:      100,
			Requirement: models.Requirement{Type: models.ReqChallengesCompleted, Value: 1},
			Rarity:      models.RarityUncommon,
		},
	}
}

// Challenges returns the challenge definition table. All challenges start
// inactive; startChallenge is the only way to activate one.
func Challenges() []models.Challenge {
	return []models.Challenge{
		{
			ID:           "weekly_consistency",
			Name:         "Weekly Consistency Challenge",
			Description:  "Take supplements every day this week",
			Type:         models.ChallengeStreak,
			DurationDays: 7,
			Points:       200,
			Target:       7,
		},
		{
			ID:           "complete_routine",
			Name:         "Complete Routine Challenge",
			Description:  "Complete all scheduled supplements in one day",
			Type:         models.ChallengeSupplements,
			DurationDays: 1,
			Points:       300,
			Target:       14,
		},
		{
			ID:           "sauna_dedication",
			Name:         "Sauna Dedication Challenge",
			Description:  "Complete 4 sauna sessions this week",
			Type:         models.ChallengeSauna,
			DurationDays: 7,
			Points:       250,
			Target:       4,
		},
	}
}
