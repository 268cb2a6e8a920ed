// Package gamify implements the achievement and challenge engine. Award
// state only moves forward: achievements unlock once and stay unlocked,
// points are added and never revoked.
package gamify

import (
	"time"

	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/models"
)

// Level derives the user level from total points. Levels are never
// stored; they are recomputed from points on every read.
func Level(totalPoints int) int {
	return totalPoints/constants.LevelStep + 1
}

// EvaluateAchievements unlocks every definition whose requirement metric
// has been reached and is not already unlocked. Each unlock records the
// id and adds its points together, so progress can never hold one
// without the other. Re-evaluating with unchanged metrics unlocks
// nothing new.
func EvaluateAchievements(progress *models.UserProgress, defs []models.AchievementDefinition, metrics map[models.RequirementType]int) []string {
	var unlocked []string
	for _, def := range defs {
		if progress.HasAchievement(def.ID) {
			continue
		}
		if metrics[def.Requirement.Type] < def.Requirement.Value {
			continue
		}
		progress.AchievementsUnlocked = append(progress.AchievementsUnlocked, def.ID)
		progress.TotalPoints += def.Points
		unlocked = append(unlocked, def.ID)
	}
	return unlocked
}

// UpdateStreak advances the daily streak for an activity at now. Same-day
// repeats leave the streak unchanged; a next-day activity extends it; any
// longer gap restarts at 1. The longest streak high-water mark only
// grows.
func UpdateStreak(progress *models.UserProgress, now time.Time) {
	today := now.Format(constants.DateFormat)
	yesterday := now.AddDate(0, 0, -1).Format(constants.DateFormat)

	switch progress.LastActivityDate {
	case today:
		// Already counted today.
	case yesterday:
		progress.StreakCurrent++
	default:
		progress.StreakCurrent = 1
	}

	progress.LastActivityDate = today
	if progress.StreakCurrent > progress.StreakLongest {
		progress.StreakLongest = progress.StreakCurrent
	}
}
