package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the document blob in a single-row table. SQLite's
// transactional write replaces the atomic-rename trick the file backend
// needs.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

func NewSQLiteBackend(path string) *SQLiteBackend {
	return &SQLiteBackend{
		path: path,
	}
}

func (b *SQLiteBackend) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := b.open(); err != nil {
		return err
	}

	_, err := b.db.Exec(`CREATE TABLE IF NOT EXISTS document (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		blob TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create document table: %w", err)
	}

	return nil
}

func (b *SQLiteBackend) open() error {
	if b.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	b.db = db
	return nil
}

func (b *SQLiteBackend) Read() ([]byte, error) {
	if _, err := os.Stat(b.path); os.IsNotExist(err) {
		return nil, ErrNotInitialized
	}
	if err := b.open(); err != nil {
		return nil, err
	}

	var blob []byte
	err := b.db.QueryRow(`SELECT blob FROM document WHERE id = 1`).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return blob, nil
}

func (b *SQLiteBackend) Write(data []byte) error {
	if err := b.open(); err != nil {
		return err
	}

	_, err := b.db.Exec(`INSERT INTO document (id, blob) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET blob = excluded.blob`, data)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Reset() error {
	if err := b.open(); err != nil {
		return err
	}
	if _, err := b.db.Exec(`DELETE FROM document WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to reset document: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

func (b *SQLiteBackend) Path() string {
	return b.path
}

// DB exposes the underlying handle for maintenance commands like backup.
func (b *SQLiteBackend) DB() *sql.DB {
	return b.db
}
