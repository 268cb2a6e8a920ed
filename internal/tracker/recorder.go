// Package tracker appends activity events to the document store. The
// recorder validates and records; it holds no metric or award logic.
// Recomputation runs through registered hooks so the award pipeline
// stays swappable.
package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/logger"
	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/storage"
)

// ValidationError reports a rejected record request. Rejected requests
// leave the document untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Hook runs after every successfully recorded event. Hooks may mutate
// the document store themselves (streak updates, achievement checks).
type Hook interface {
	AfterRecord(kind models.EventKind, now time.Time) error
}

// Recorder validates and appends activity events.
type Recorder struct {
	store *storage.DocumentStore
	clock func() time.Time
	hooks []Hook
}

func NewRecorder(store *storage.DocumentStore) *Recorder {
	return &Recorder{
		store: store,
		clock: time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (r *Recorder) SetClock(clock func() time.Time) {
	r.clock = clock
}

// AddHook registers a post-record hook. Hooks run in registration order.
func (r *Recorder) AddHook(h Hook) {
	r.hooks = append(r.hooks, h)
}

// RecordSupplement appends a supplement intake event. The supplement id
// must exist in the document's catalog.
func (r *Recorder) RecordSupplement(supplementID string, taken bool, notes string) (models.SupplementEvent, error) {
	if strings.TrimSpace(supplementID) == "" {
		return models.SupplementEvent{}, &ValidationError{Field: "supplement", Reason: "id cannot be empty"}
	}

	now := r.clock()
	event := models.SupplementEvent{
		SupplementID: supplementID,
		Taken:        taken,
		Date:         now.Format(constants.DateFormat),
		Timestamp:    now,
		Notes:        notes,
	}

	err := r.store.Update(func(doc *models.Document) error {
		if !catalogHas(doc.SupplementCatalog, supplementID) {
			return &ValidationError{Field: "supplement", Reason: fmt.Sprintf("unknown id %q", supplementID)}
		}
		doc.ActivityLog.SupplementEvents = append(doc.ActivityLog.SupplementEvents, event)
		return nil
	})
	if err != nil {
		return models.SupplementEvent{}, err
	}

	r.runHooks(models.EventSupplement, now)
	return event, nil
}

// RecordSauna appends a sauna session event. Duration must be positive
// and temperature plausible for a sauna.
func (r *Recorder) RecordSauna(durationMin int, temperature float64, notes string) (models.SaunaEvent, error) {
	if durationMin <= 0 {
		return models.SaunaEvent{}, &ValidationError{Field: "duration", Reason: "must be a positive number of minutes"}
	}
	if temperature < constants.MinSaunaTemperatureF || temperature > constants.MaxSaunaTemperatureF {
		return models.SaunaEvent{}, &ValidationError{
			Field: "temperature",
			Reason: fmt.Sprintf("must be between %d and %d degrees Fahrenheit",
				constants.MinSaunaTemperatureF, constants.MaxSaunaTemperatureF),
		}
	}

	now := r.clock()
	event := models.SaunaEvent{
		ID:          uuid.NewString(),
		DurationMin: durationMin,
		Temperature: temperature,
		Date:        now.Format(constants.DateFormat),
		Timestamp:   now,
		Notes:       notes,
	}

	err := r.store.Update(func(doc *models.Document) error {
		doc.ActivityLog.SaunaEvents = append(doc.ActivityLog.SaunaEvents, event)
		return nil
	})
	if err != nil {
		return models.SaunaEvent{}, err
	}

	r.runHooks(models.EventSauna, now)
	return event, nil
}

// AddNote appends a free-form user note.
func (r *Recorder) AddNote(content string) (models.UserNote, error) {
	if strings.TrimSpace(content) == "" {
		return models.UserNote{}, &ValidationError{Field: "note", Reason: "content cannot be empty"}
	}

	now := r.clock()
	note := models.UserNote{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: now,
	}

	err := r.store.Update(func(doc *models.Document) error {
		doc.UserNotes = append(doc.UserNotes, note)
		return nil
	})
	if err != nil {
		return models.UserNote{}, err
	}

	return note, nil
}

// runHooks fires the recomputation pipeline. The event is already
// persisted at this point, so a failing hook is logged rather than
// surfaced; the next record attempt re-evaluates from the full log.
func (r *Recorder) runHooks(kind models.EventKind, now time.Time) {
	for _, h := range r.hooks {
		if err := h.AfterRecord(kind, now); err != nil {
			logger.Warn("Post-record hook failed", "kind", kind, "error", err)
		}
	}
}

func catalogHas(defs []models.SupplementDefinition, id string) bool {
	for _, d := range defs {
		if d.ID == id {
			return true
		}
	}
	return false
}
