package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// PostgresBackend stores the document blob in a single-row table on a
// remote Postgres server. Credentials never ride in the connection
// string; the keyring supplies the password separately.
type PostgresBackend struct {
	connStr string
	db      *sql.DB
}

func NewPostgresBackend(connStr string) *PostgresBackend {
	return &PostgresBackend{
		connStr: connStr,
	}
}

// ValidateConnString checks if a connection string is a valid PostgreSQL
// connection string (URI or DSN) and ensures it does not contain a
// password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		pairs := strings.Fields(connStr)
		for _, pair := range pairs {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

// HasEmbeddedCredentials reports whether the connection string carries a
// password inline.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		if parsedURL, err := url.Parse(connStr); err == nil {
			if _, isSet := parsedURL.User.Password(); isSet {
				return true
			}
		}
		return false
	}
	for _, pair := range strings.Fields(connStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
			return true
		}
	}
	return false
}

func (b *PostgresBackend) Init() error {
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

func (b *PostgresBackend) open() error {
	if b.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", b.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool parameters to avoid connection exhaustion
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	b.db = db
	return nil
}

func (b *PostgresBackend) Read() ([]byte, error) {
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

func (b *PostgresBackend) Write(data []byte) error {
	if err := b.open(); err != nil {
		return err
	}

	_, err := b.db.Exec(`INSERT INTO document (id, blob) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET blob = EXCLUDED.blob`, data)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Reset() error {
	if err := b.open(); err != nil {
		return err
	}
	if _, err := b.db.Exec(`DELETE FROM document WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to reset document: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Close() error {
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

func (b *PostgresBackend) Path() string {
	return b.connStr
}
