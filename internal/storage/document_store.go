package storage

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mahavak/rhonda/internal/catalog"
	"github.com/mahavak/rhonda/internal/constants"
	"github.com/mahavak/rhonda/internal/logger"
	"github.com/mahavak/rhonda/internal/models"
)

// DocumentStore serializes all access to the single user document. Every
// mutation runs as a locked read-modify-write against the backend, so
// interleaved writers can never lose updates. Readers get deep-copied
// snapshots and may derive from them concurrently.
type DocumentStore struct {
	mu      sync.Mutex
	backend Backend
	doc     *models.Document
	clock   func() time.Time
}

// New creates a store over the given backend. The backend must already
// be constructed for the right path or connection string.
func New(backend Backend) *DocumentStore {
	return &DocumentStore{
		backend: backend,
		clock:   time.Now,
	}
}

// SetClock overrides the time source, for tests.
func (s *DocumentStore) SetClock(clock func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// NewDocument returns a fresh document with the embedded catalogs, an
// empty activity log, and zeroed progress.
func NewDocument(now time.Time) models.Document {
	return models.Document{
		Version:           constants.DocumentVersion,
		SupplementCatalog: catalog.Supplements(),
		Protocols:         models.ProtocolReference{Sauna: catalog.SaunaProtocol()},
		UserNotes:         []models.UserNote{},
		ActivityLog: models.ActivityLog{
			SupplementEvents: []models.SupplementEvent{},
			SaunaEvents:      []models.SaunaEvent{},
		},
		Progress: models.UserProgress{
			AchievementsUnlocked: []string{},
		},
		Challenges:  catalog.Challenges(),
		LastUpdated: now,
	}
}

// Init initializes the backend and writes the first document.
func (s *DocumentStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Init(); err != nil {
		return err
	}

	doc := NewDocument(s.clock())
	if err := s.write(doc); err != nil {
		return err
	}
	s.doc = &doc
	return nil
}

// Load reads the persisted document into memory, migrating older
// versions in place.
func (s *DocumentStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Read()
	if err != nil {
		return err
	}

	doc := models.Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ParseError{Path: s.backend.Path(), Err: err}
	}

	migrated, changed := migrate(doc)
	if changed {
		logger.Info("Migrated document", "from", doc.Version, "to", migrated.Version)
		if err := s.write(migrated); err != nil {
			return fmt.Errorf("failed to persist migrated document: %w", err)
		}
	}

	s.doc = &migrated
	return nil
}

// Close releases the backend.
func (s *DocumentStore) Close() error {
	return s.backend.Close()
}

// Path returns the backend's storage path or connection string.
func (s *DocumentStore) Path() string {
	return s.backend.Path()
}

// Snapshot returns a deep copy of the current document. Derivations run
// against snapshots so they never observe a half-applied mutation.
func (s *DocumentStore) Snapshot() (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.Document{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Clone(), nil
}

// Update applies fn to the document under the store lock and persists
// the result. LastUpdated only moves forward; a clock that jumps
// backward cannot regress it.
func (s *DocumentStore) Update(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	next := s.doc.Clone()
	if err := fn(&next); err != nil {
		return err
	}

	now := s.clock()
	if now.After(next.LastUpdated) {
		next.LastUpdated = now
	}

	if err := s.write(next); err != nil {
		return err
	}
	s.doc = &next
	return nil
}

// ExportSnapshot returns the document serialized for backup or transfer.
func (s *DocumentStore) ExportSnapshot() ([]byte, error) {
	doc, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ImportSnapshot replaces the whole document with an exported payload.
// The payload is validated and migrated before anything is overwritten.
func (s *DocumentStore) ImportSnapshot(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := models.Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ParseError{Path: "import", Err: err}
	}
	if doc.Version == 0 {
		return &ParseError{Path: "import", Err: fmt.Errorf("missing document version")}
	}

	migrated, _ := migrate(doc)

	now := s.clock()
	if now.After(migrated.LastUpdated) {
		migrated.LastUpdated = now
	}

	if err := s.write(migrated); err != nil {
		return err
	}
	s.doc = &migrated
	return nil
}

// Reset drops all user data and reinitializes to the empty document.
func (s *DocumentStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Reset(); err != nil {
		return err
	}

	doc := NewDocument(s.clock())
	if err := s.write(doc); err != nil {
		return err
	}
	s.doc = &doc
	return nil
}

func (s *DocumentStore) write(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	return s.backend.Write(data)
}
