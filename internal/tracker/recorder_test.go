package tracker

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/storage"
)

func setupRecorder(t *testing.T) (*Recorder, *storage.DocumentStore) {
	t.Helper()
	store := storage.New(storage.NewFileBackend(filepath.Join(t.TempDir(), "rhonda.json")))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return NewRecorder(store), store
}

func TestRecordSupplement(t *testing.T) {
	t.Run("appends a dated event", func(t *testing.T) {
		recorder, store := setupRecorder(t)
		now := time.Date(2026, 8, 30, 8, 30, 0, 0, time.UTC)
		recorder.SetClock(func() time.Time { return now })

		event, err := recorder.RecordSupplement("creatine", true, "with breakfast")
		if err != nil {
			t.Fatalf("RecordSupplement() returned unexpected error: %v", err)
		}
		if event.Date != "2026-08-30" {
			t.Errorf("event date = %s, want 2026-08-30", event.Date)
		}

		doc, _ := store.Snapshot()
		if len(doc.ActivityLog.SupplementEvents) != 1 {
			t.Fatalf("got %d events, want 1", len(doc.ActivityLog.SupplementEvents))
		}
		got := doc.ActivityLog.SupplementEvents[0]
		if got.SupplementID != "creatine" || !got.Taken || got.Notes != "with breakfast" {
			t.Errorf("persisted event = %+v", got)
		}
	})

	t.Run("rejects empty id", func(t *testing.T) {
		recorder, store := setupRecorder(t)

		_, err := recorder.RecordSupplement("  ", true, "")

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("RecordSupplement() error = %v, want *ValidationError", err)
		}
		doc, _ := store.Snapshot()
		if len(doc.ActivityLog.SupplementEvents) != 0 {
			t.Error("rejected record still appended an event")
		}
	})

	t.Run("rejects id missing from catalog", func(t *testing.T) {
		recorder, store := setupRecorder(t)

		_, err := recorder.RecordSupplement("snake_oil", true, "")

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("RecordSupplement() error = %v, want *ValidationError", err)
		}
		doc, _ := store.Snapshot()
		if len(doc.ActivityLog.SupplementEvents) != 0 {
			t.Error("rejected record still appended an event")
		}
	})

	t.Run("skipped doses are recorded too", func(t *testing.T) {
		recorder, store := setupRecorder(t)

		if _, err := recorder.RecordSupplement("creatine", false, "travel day"); err != nil {
			t.Fatalf("RecordSupplement() returned unexpected error: %v", err)
		}

		doc, _ := store.Snapshot()
		if len(doc.ActivityLog.SupplementEvents) != 1 || doc.ActivityLog.SupplementEvents[0].Taken {
			t.Error("skipped dose was not persisted with taken=false")
		}
	})
}

func TestRecordSauna(t *testing.T) {
	t.Run("appends with generated id", func(t *testing.T) {
		recorder, store := setupRecorder(t)

		event, err := recorder.RecordSauna(20, 174, "")
		if err != nil {
			t.Fatalf("RecordSauna() returned unexpected error: %v", err)
		}
		if event.ID == "" {
			t.Error("event has no id")
		}

		doc, _ := store.Snapshot()
		if len(doc.ActivityLog.SaunaEvents) != 1 {
			t.Fatalf("got %d events, want 1", len(doc.ActivityLog.SaunaEvents))
		}
	})

	t.Run("rejects bad duration", func(t *testing.T) {
		recorder, _ := setupRecorder(t)
		for _, duration := range []int{0, -5} {
			if _, err := recorder.RecordSauna(duration, 174, ""); err == nil {
				t.Errorf("RecordSauna(%d, ...) accepted a non-positive duration", duration)
			}
		}
	})

	t.Run("rejects implausible temperature", func(t *testing.T) {
		recorder, _ := setupRecorder(t)
		for _, temp := range []float64{10, 500} {
			if _, err := recorder.RecordSauna(20, temp, ""); err == nil {
				t.Errorf("RecordSauna(20, %.0f) accepted an implausible temperature", temp)
			}
		}
	})
}

func TestAddNote(t *testing.T) {
	t.Run("appends a note", func(t *testing.T) {
		recorder, store := setupRecorder(t)

		note, err := recorder.AddNote("felt great after sauna")
		if err != nil {
			t.Fatalf("AddNote() returned unexpected error: %v", err)
		}
		if note.ID == "" {
			t.Error("note has no id")
		}

		doc, _ := store.Snapshot()
		if len(doc.UserNotes) != 1 || doc.UserNotes[0].Content != "felt great after sauna" {
			t.Error("note was not persisted")
		}
	})

	t.Run("rejects empty content", func(t *testing.T) {
		recorder, _ := setupRecorder(t)
		if _, err := recorder.AddNote("   "); err == nil {
			t.Error("AddNote() accepted blank content")
		}
	})
}

type captureHook struct {
	kinds []models.EventKind
	err   error
}

func (h *captureHook) AfterRecord(kind models.EventKind, now time.Time) error {
	h.kinds = append(h.kinds, kind)
	return h.err
}

func TestHooks(t *testing.T) {
	t.Run("fire after successful records", func(t *testing.T) {
		recorder, _ := setupRecorder(t)
		hook := &captureHook{}
		recorder.AddHook(hook)

		recorder.RecordSupplement("creatine", true, "")
		recorder.RecordSauna(20, 174, "")

		want := []models.EventKind{models.EventSupplement, models.EventSauna}
		if len(hook.kinds) != len(want) {
			t.Fatalf("hook fired %d times, want %d", len(hook.kinds), len(want))
		}
		for i := range want {
			if hook.kinds[i] != want[i] {
				t.Errorf("hook call %d kind = %s, want %s", i, hook.kinds[i], want[i])
			}
		}
	})

	t.Run("do not fire on rejected records", func(t *testing.T) {
		recorder, _ := setupRecorder(t)
		hook := &captureHook{}
		recorder.AddHook(hook)

		recorder.RecordSupplement("snake_oil", true, "")
		recorder.RecordSauna(-1, 174, "")

		if len(hook.kinds) != 0 {
			t.Errorf("hook fired %d times on rejected records, want 0", len(hook.kinds))
		}
	})

	t.Run("hook failure does not fail the record", func(t *testing.T) {
		recorder, store := setupRecorder(t)
		recorder.AddHook(&captureHook{err: errors.New("pipeline down")})

		if _, err := recorder.RecordSupplement("creatine", true, ""); err != nil {
			t.Errorf("RecordSupplement() surfaced hook error: %v", err)
		}
		doc, _ := store.Snapshot()
		if len(doc.ActivityLog.SupplementEvents) != 1 {
			t.Error("event was not persisted despite hook failure")
		}
	})
}
