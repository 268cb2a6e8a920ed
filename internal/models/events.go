package models

import "time"

// EventKind tags the two activity-event variants in the log.
type EventKind string

const (
	EventSupplement EventKind = "supplement"
	EventSauna      EventKind = "sauna"
)

// SupplementEvent records one supplement dose. Events are append-only:
// once written they are never edited or deleted. Date is derived from
// Timestamp at creation time and stays consistent with it.
type SupplementEvent struct {
	SupplementID string    `json:"supplement_id"`
	Taken        bool      `json:"taken"`
	Date         string    `json:"date"` // YYYY-MM-DD format
	Timestamp    time.Time `json:"timestamp"`
	Notes        string    `json:"notes,omitempty"`
}

// SaunaEvent records one sauna session. Same append-only contract as
// SupplementEvent.
type SaunaEvent struct {
	ID          string    `json:"id"`
	DurationMin int       `json:"duration"` // minutes
	Temperature float64   `json:"temperature"`
	Date        string    `json:"date"` // YYYY-MM-DD format
	Timestamp   time.Time `json:"timestamp"`
	Notes       string    `json:"notes,omitempty"`
}

// Activity is the kind-tagged view of either event variant, used by the
// derivation code so it can handle the log exhaustively without caring
// which concrete event produced a data point.
type Activity struct {
	Kind      EventKind
	Date      string
	Timestamp time.Time
}

func (e SupplementEvent) Activity() Activity {
	return Activity{Kind: EventSupplement, Date: e.Date, Timestamp: e.Timestamp}
}

func (e SaunaEvent) Activity() Activity {
	return Activity{Kind: EventSauna, Date: e.Date, Timestamp: e.Timestamp}
}

// ActivityLog holds the full append-only event history.
type ActivityLog struct {
	SupplementEvents []SupplementEvent `json:"supplement_events"`
	SaunaEvents      []SaunaEvent      `json:"sauna_events"`
}

// Activities returns the merged kind-tagged view of the log, in storage
// order (supplement events first, then sauna events).
func (l ActivityLog) Activities() []Activity {
	out := make([]Activity, 0, len(l.SupplementEvents)+len(l.SaunaEvents))
	for _, e := range l.SupplementEvents {
		out = append(out, e.Activity())
	}
	for _, e := range l.SaunaEvents {
		out = append(out, e.Activity())
	}
	return out
}

// UserNote is a free-form note attached to the document.
type UserNote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
