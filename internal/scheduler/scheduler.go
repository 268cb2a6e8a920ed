// Package scheduler decides what is due at a point in time: which timing
// slots still have unrecorded supplements, whether a new calendar day has
// started, and which active challenge has run past its duration. Tick is
// pure; callers apply its verdicts to the store.
package scheduler

import (
	"time"

	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/models"
)

// slotStartHour maps each timing slot to the hour its window opens.
var slotStartHour = map[models.TimingSlot]int{
	models.SlotMorning:   6,
	models.SlotBreakfast: 8,
	models.SlotLunch:     12,
	models.SlotEvening:   18,
}

// Tick is the scheduler's verdict for one point in time.
type Tick struct {
	// NewDay is set when now's date differs from the last recorded
	// activity date.
	NewDay bool

	// DueSlots lists timing slots whose window has opened today and
	// which still have supplements without a taken event.
	DueSlots []models.TimingSlot

	// ExpiredChallenges lists active challenges whose duration elapsed
	// before the target was reached.
	ExpiredChallenges []string
}

// Evaluate computes the verdict for the given snapshot and time.
func Evaluate(doc models.Document, now time.Time) Tick {
	today := now.Format(constants.DateFormat)

	tick := Tick{
		NewDay: doc.Progress.LastActivityDate != "" && doc.Progress.LastActivityDate != today,
	}

	takenToday := takenSupplementsOn(doc, today)
	for _, slot := range models.TimingSlots() {
		if now.Hour() < slotStartHour[slot] {
			continue
		}
		if slotPending(doc.SupplementCatalog, slot, takenToday) {
			tick.DueSlots = append(tick.DueSlots, slot)
		}
	}

	for _, ch := range doc.Challenges {
		if !ch.Active || ch.StartDate == "" {
			continue
		}
		start, err := time.ParseInLocation(constants.DateFormat, ch.StartDate, now.Location())
		if err != nil {
			continue
		}
		deadline := start.AddDate(0, 0, ch.DurationDays)
		if !now.Before(deadline) && ch.Progress < ch.Target {
			tick.ExpiredChallenges = append(tick.ExpiredChallenges, ch.ID)
		}
	}

	return tick
}

// ExpireChallenges deactivates the named challenges in place.
func ExpireChallenges(doc *models.Document, ids []string) {
	for _, id := range ids {
		if ch := doc.FindChallenge(id); ch != nil {
			ch.Active = false
			ch.Progress = 0
			ch.StartDate = ""
		}
	}
}

func takenSupplementsOn(doc models.Document, date string) map[string]bool {
	taken := make(map[string]bool)
	for _, e := range doc.ActivityLog.SupplementEvents {
		if e.Taken && e.Date == date {
			taken[e.SupplementID] = true
		}
	}
	return taken
}

func slotPending(catalog []models.SupplementDefinition, slot models.TimingSlot, taken map[string]bool) bool {
	for _, def := range catalog {
		if def.Timing != slot {
			continue
		}
		if !taken[def.ID] {
			return true
		}
	}
	return false
}
