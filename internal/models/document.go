package models

import "time"

// Document is the single versioned blob the whole application state lives
// in. One document per user; the store serializes all writes to it.
type Document struct {
	Version           int                    `json:"version"`
	SupplementCatalog []SupplementDefinition `json:"supplement_catalog"`
	Protocols         ProtocolReference      `json:"protocols"`
	UserNotes         []UserNote             `json:"user_notes"`
	ActivityLog       ActivityLog            `json:"activity_log"`
	Progress          UserProgress           `json:"progress"`
	Challenges        []Challenge            `json:"challenges"`
	LastUpdated       time.Time              `json:"last_updated"`
}

// Clone returns a deep copy of the document. Readers get clones so the
// store's canonical copy is never aliased outside its lock.
func (d Document) Clone() Document {
	out := d

	out.SupplementCatalog = make([]SupplementDefinition, len(d.SupplementCatalog))
	copy(out.SupplementCatalog, d.SupplementCatalog)
	for i, s := range d.SupplementCatalog {
		out.SupplementCatalog[i].Benefits = append([]string(nil), s.Benefits...)
	}
	out.Protocols.Sauna.Notes = append([]string(nil), d.Protocols.Sauna.Notes...)

	out.UserNotes = append([]UserNote(nil), d.UserNotes...)
	out.ActivityLog.SupplementEvents = append([]SupplementEvent(nil), d.ActivityLog.SupplementEvents...)
	out.ActivityLog.SaunaEvents = append([]SaunaEvent(nil), d.ActivityLog.SaunaEvents...)
	out.Progress.AchievementsUnlocked = append([]string(nil), d.Progress.AchievementsUnlocked...)
	out.Challenges = append([]Challenge(nil), d.Challenges...)

	return out
}

// ActiveChallenge returns a pointer into the document's challenge slice
// for the currently active challenge, or nil when none is active.
func (d *Document) ActiveChallenge() *Challenge {
	for i := range d.Challenges {
		if d.Challenges[i].Active {
			return &d.Challenges[i]
		}
	}
	return nil
}

// FindChallenge returns a pointer to the challenge with the given id, or
// nil when the document has no such challenge.
func (d *Document) FindChallenge(id string) *Challenge {
	for i := range d.Challenges {
		if d.Challenges[i].ID == id {
			return &d.Challenges[i]
		}
	}
	return nil
}
