package analytics

import (
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/models"
)

type cacheKey struct {
	hash uint64
	date string
}

// Cache memoizes Derive results per snapshot. Derivations are pure, so
// a stat set stays valid as long as the activity log, the progress state,
// and the calendar date are unchanged. A hash failure just skips the
// cache; the caller still gets fresh stats.
type Cache struct {
	mu    sync.Mutex
	key   cacheKey
	stats Stats
	valid bool
}

func NewCache() *Cache {
	return &Cache{}
}

// Stats returns the derived stat set for the snapshot, computing it only
// when the snapshot or calendar date changed since the last call.
func (c *Cache) Stats(doc models.Document, now time.Time) Stats {
	key, ok := c.keyFor(doc, now)
	if !ok {
		return Derive(doc, now)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.key == key {
		return c.stats
	}

	c.stats = Derive(doc, now)
	c.key = key
	c.valid = true
	return c.stats
}

// Invalidate drops the memoized entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

func (c *Cache) keyFor(doc models.Document, now time.Time) (cacheKey, bool) {
	input := struct {
		Log      models.ActivityLog
		Progress models.UserProgress
	}{doc.ActivityLog, doc.Progress}

	hash, err := hashstructure.Hash(input, hashstructure.FormatV2, nil)
	if err != nil {
		return cacheKey{}, false
	}
	return cacheKey{hash: hash, date: now.Format(constants.DateFormat)}, true
}
