package storage

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when a backend is asked to read before
// 'rhonda init' has run against its path.
var ErrNotInitialized = errors.New("storage not initialized, run 'rhonda init' first")

// ParseError wraps a malformed persisted blob. The raw payload stays on
// disk untouched so nothing is lost; callers decide whether to reset.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse document at %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Backend persists a single opaque document blob. Implementations only
// move bytes; all document semantics live in DocumentStore.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Blob I/O
	Read() ([]byte, error)
	Write(data []byte) error

	// Reset removes the persisted blob so the next Init starts fresh.
	Reset() error

	// Utils
	Path() string
}
