package gamify

import (
	"errors"
	"fmt"
	"time"

	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/models"
)

var (
	// ErrAlreadyClaimed signals a re-claim of an already-claimed
	// challenge. Callers absorb it locally; it is not a user-visible
	// failure.
	ErrAlreadyClaimed = errors.New("challenge reward already claimed")

	// ErrChallengeIncomplete signals a claim before the target is
	// reached.
	ErrChallengeIncomplete = errors.New("challenge target not reached")
)

// StartChallenge activates the named challenge and deactivates every
// other one, so at most one challenge is ever active. Progress restarts
// from zero.
func StartChallenge(doc *models.Document, id string, now time.Time) error {
	target := doc.FindChallenge(id)
	if target == nil {
		return fmt.Errorf("challenge not found: %s", id)
	}

	for i := range doc.Challenges {
		doc.Challenges[i].Active = false
	}
	target.Active = true
	target.Progress = 0
	target.StartDate = now.Format(constants.DateFormat)
	return nil
}

// UpdateChallengeProgress advances the active challenge when its type
// matches the event that occurred. Progress is clamped to [0, target].
// Inactive challenges never move.
func UpdateChallengeProgress(doc *models.Document, eventType models.ChallengeType, amount int) {
	active := doc.ActiveChallenge()
	if active == nil || active.Type != eventType {
		return
	}

	active.Progress += amount
	if active.Progress > active.Target {
		active.Progress = active.Target
	}
	if active.Progress < 0 {
		active.Progress = 0
	}
}

// ClaimReward awards the challenge's points once its target is reached,
// deactivates it, and resets progress so it can be started again later.
// Claiming twice without restarting returns ErrAlreadyClaimed.
func ClaimReward(doc *models.Document, id string) error {
	ch := doc.FindChallenge(id)
	if ch == nil {
		return fmt.Errorf("challenge not found: %s", id)
	}

	if ch.Progress < ch.Target {
		if !ch.Active {
			return ErrAlreadyClaimed
		}
		return ErrChallengeIncomplete
	}

	doc.Progress.TotalPoints += ch.Points
	doc.Progress.ChallengesCompleted++
	ch.Active = false
	ch.Progress = 0
	ch.StartDate = ""
	return nil
}
