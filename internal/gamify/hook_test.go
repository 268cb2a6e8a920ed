package gamify

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mahavak/rhonda/internal/catalog"
	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/storage"
)

func setupHook(t *testing.T) (*Hook, *storage.DocumentStore) {
	t.Helper()
	store := storage.New(storage.NewFileBackend(filepath.Join(t.TempDir(), "rhonda.json")))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return NewHook(store, catalog.Achievements()), store
}

func recordSupplementAt(t *testing.T, store *storage.DocumentStore, now time.Time) {
	t.Helper()
	err := store.Update(func(doc *models.Document) error {
		doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents, models.SupplementEvent{
			SupplementID: "creatine", Taken: true,
			Date: now.Format("2006-01-02"), Timestamp: now,
		})
		return nil
	})
	if err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
}

func TestHookAfterRecord(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	t.Run("updates streak and unlocks first achievement", func(t *testing.T) {
		hook, store := setupHook(t)
		recordSupplementAt(t, store, now)

		if err := hook.AfterRecord(models.EventSupplement, now); err != nil {
			t.Fatalf("AfterRecord() returned unexpected error: %v", err)
		}

		doc, _ := store.Snapshot()
		if doc.Progress.StreakCurrent != 1 {
			t.Errorf("StreakCurrent = %d, want 1", doc.Progress.StreakCurrent)
		}
		if !doc.Progress.HasAchievement("first_dose") {
			t.Error("first_dose did not unlock after the first recorded dose")
		}
		if doc.Progress.TotalPoints == 0 {
			t.Error("no points awarded for the unlock")
		}
	})

	t.Run("advances a matching active challenge", func(t *testing.T) {
		hook, store := setupHook(t)
		err := store.Update(func(doc *models.Document) error {
			return StartChallenge(doc, "complete_routine", now)
		})
		if err != nil {
			t.Fatalf("failed to start challenge: %v", err)
		}

		recordSupplementAt(t, store, now)
		if err := hook.AfterRecord(models.EventSupplement, now); err != nil {
			t.Fatalf("AfterRecord() returned unexpected error: %v", err)
		}

		doc, _ := store.Snapshot()
		if got := doc.FindChallenge("complete_routine").Progress; got != 1 {
			t.Errorf("challenge progress = %d, want 1", got)
		}
	})

	t.Run("streak challenge catches up to the current streak", func(t *testing.T) {
		hook, store := setupHook(t)

		// Two consecutive days of activity before starting the challenge.
		recordSupplementAt(t, store, now.AddDate(0, 0, -1))
		hook.AfterRecord(models.EventSupplement, now.AddDate(0, 0, -1))
		recordSupplementAt(t, store, now)
		hook.AfterRecord(models.EventSupplement, now)

		err := store.Update(func(doc *models.Document) error {
			return StartChallenge(doc, "weekly_consistency", now)
		})
		if err != nil {
			t.Fatalf("failed to start challenge: %v", err)
		}

		recordSupplementAt(t, store, now.AddDate(0, 0, 1))
		hook.AfterRecord(models.EventSupplement, now.AddDate(0, 0, 1))

		doc, _ := store.Snapshot()
		if doc.Progress.StreakCurrent != 3 {
			t.Fatalf("StreakCurrent = %d, want 3", doc.Progress.StreakCurrent)
		}
		if got := doc.FindChallenge("weekly_consistency").Progress; got != 3 {
			t.Errorf("streak challenge progress = %d, want 3", got)
		}
	})

	t.Run("repeat evaluation awards nothing extra", func(t *testing.T) {
		hook, store := setupHook(t)
		recordSupplementAt(t, store, now)

		hook.AfterRecord(models.EventSupplement, now)
		first, _ := store.Snapshot()

		hook.AfterRecord(models.EventSupplement, now)
		second, _ := store.Snapshot()

		if second.Progress.TotalPoints != first.Progress.TotalPoints {
			t.Errorf("TotalPoints moved from %d to %d without new activity",
				first.Progress.TotalPoints, second.Progress.TotalPoints)
		}
		if second.Progress.StreakCurrent != first.Progress.StreakCurrent {
			t.Error("same-day re-evaluation changed the streak")
		}
	})
}
