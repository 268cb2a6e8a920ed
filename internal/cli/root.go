// Package cli implements the rhonda commands. Each command is a kong
// struct with a Run method; shared wiring lives in Context.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mahavak/rhonda/internal/backup"
	"github.com/mahavak/rhonda/internal/logger"
	"github.com/mahavak/rhonda/internal/models"
	"github.com/mahavak/rhonda/internal/storage"
	"github.com/mahavak/rhonda/internal/syncer"
	"github.com/mahavak/rhonda/internal/tracker"
)

type Context struct {
	Store    *storage.DocumentStore
	Recorder *tracker.Recorder
	Queue    *syncer.Queue
	Client   *syncer.Client
	Offline  *syncer.Handler
	Debug    bool
}

// FetchRemote reads a remote action through the offline layer, so a
// recently cached response still answers when the server is down.
func (c *Context) FetchRemote(ctx context.Context, action string) ([]byte, error) {
	resp, err := c.Offline.Handle(ctx, syncer.Request{URL: c.Client.ActionURL(action)})
	if err != nil {
		return nil, err
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, fmt.Errorf("%s request failed with status %d", action, resp.Status)
	}
	return resp.Body, nil
}

// LoadStore loads the persisted document, translating the common
// failure modes into actionable messages.
func (c *Context) LoadStore() error {
	err := c.Store.Load()
	if err == nil {
		return nil
	}

	var parseErr *storage.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w (the stored data was left untouched; restore a backup or run 'rhonda data reset')", err)
	}
	return err
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.Path())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// EnqueueSync records a mutation for later replay against the remote
// API. Queue failures never fail the local operation.
func (c *Context) EnqueueSync(action string, payload any) {
	if c.Queue == nil {
		return
	}
	if _, err := c.Queue.Enqueue(action, payload); err != nil {
		logger.Warn("Failed to enqueue sync entry", "action", action, "error", err)
	}
}

// FindSupplement resolves a supplement by id or case-insensitive name.
func FindSupplement(catalog []models.SupplementDefinition, idOrName string) (models.SupplementDefinition, bool) {
	for _, def := range catalog {
		if def.ID == idOrName {
			return def, true
		}
	}
	needle := strings.ToLower(idOrName)
	for _, def := range catalog {
		if strings.ToLower(def.Name) == needle {
			return def, true
		}
	}
	return models.SupplementDefinition{}, false
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
