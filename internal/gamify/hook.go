package gamify

import (
	"time"

	"github.com/mahavak/rhonda/internal/analytics"
	"github.com/mahavak/rhonda/internal/logger"
	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/storage"
)

// Hook is the recorder's post-record pipeline stage: it re-derives
// metrics from the fresh snapshot and folds streak, achievement, and
// challenge updates back into the document.
type Hook struct {
	store *storage.DocumentStore
	defs  []models.AchievementDefinition
}

func NewHook(store *storage.DocumentStore, defs []models.AchievementDefinition) *Hook {
	return &Hook{
		store: store,
		defs:  defs,
	}
}

func (h *Hook) AfterRecord(kind models.EventKind, now time.Time) error {
	return h.store.Update(func(doc *models.Document) error {
		UpdateStreak(&doc.Progress, now)

		switch kind {
		case models.EventSupplement:
			UpdateChallengeProgress(doc, models.ChallengeSupplements, 1)
		case models.EventSauna:
			UpdateChallengeProgress(doc, models.ChallengeSauna, 1)
		}
		UpdateChallengeProgress(doc, models.ChallengeStreak, streakDelta(doc))

		metrics := analytics.Metrics(*doc, now)
		metrics[models.ReqStreakDays] = doc.Progress.StreakCurrent

		if unlocked := EvaluateAchievements(&doc.Progress, h.defs, metrics); len(unlocked) > 0 {
			logger.Info("Achievements unlocked", "ids", unlocked)
		}
		return nil
	})
}

// streakDelta reports how far the active streak challenge lags the
// current streak, so the challenge catches up without double counting
// same-day activity.
func streakDelta(doc *models.Document) int {
	active := doc.ActiveChallenge()
	if active == nil || active.Type != models.ChallengeStreak {
		return 0
	}
	return doc.Progress.StreakCurrent - active.Progress
}
