package storage

import (
	"github.com/mahavak/rhonda/internal/catalog"
	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/models"
)

// migrate upgrades a document to the current version. Version 1
// documents predate the gamification layer, so the upgrade seeds the
// challenge table and zeroed progress. Unknown future versions pass
// through untouched.
func migrate(doc models.Document) (models.Document, bool) {
	changed := false

	if doc.Version < constants.DocumentVersion {
		doc.Version = constants.DocumentVersion
		changed = true
	}

	if len(doc.SupplementCatalog) == 0 {
		doc.SupplementCatalog = catalog.Supplements()
		changed = true
	}
	if doc.Protocols.Sauna.TemperatureF == 0 {
		doc.Protocols.Sauna = catalog.SaunaProtocol()
		changed = true
	}
	if len(doc.Challenges) == 0 {
		doc.Challenges = catalog.Challenges()
		changed = true
	}

	// Normalize nil slices so downstream code never branches on them.
	if doc.UserNotes == nil {
		doc.UserNotes = []models.UserNote{}
		changed = true
	}
	if doc.ActivityLog.SupplementEvents == nil {
		doc.ActivityLog.SupplementEvents = []models.SupplementEvent{}
		changed = true
	}
	if doc.ActivityLog.SaunaEvents == nil {
		doc.ActivityLog.SaunaEvents = []models.SaunaEvent{}
		changed = true
	}
	if doc.Progress.AchievementsUnlocked == nil {
		doc.Progress.AchievementsUnlocked = []string{}
		changed = true
	}

	return doc, changed
}
