// Package db provides the device-local note slot, backed by SQLite.
//
// The local persistence contract is deliberately simple: one string-keyed
// slot per owner holding the JSON-serialized array of all notes, read once at
// subscribe time and rewritten wholesale after every collection mutation.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/yilun-hsu/smartnotes/internal/models"
)

// DB wraps sql.DB with Smart Notes configuration.
type DB struct {
	*sql.DB
}

// Open opens the notes database under dataDir, creating the directory and
// schema as needed. The database is opened with WAL mode and foreign key
// constraints enabled; SQLite allows a single writer, which matches the
// one-mutation-at-a-time model of the collection store.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "smartnotes.db")

	// Pure Go driver, no CGO
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS slots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := sqlDB.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &DB{sqlDB}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

func slotKey(owner string) string {
	return "notes/" + owner
}

// SaveNotes rewrites the owner's slot with the full note array.
func (db *DB) SaveNotes(owner string, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to serialize notes: %w", err)
	}

	_, err = db.Exec(
		"INSERT INTO slots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		slotKey(owner), string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to write notes slot: %w", err)
	}
	return nil
}

// LoadNotes reads the owner's slot. A missing slot is an empty collection,
// not an error.
func (db *DB) LoadNotes(owner string) ([]models.Note, error) {
	var raw string
	err := db.QueryRow("SELECT value FROM slots WHERE key = ?", slotKey(owner)).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read notes slot: %w", err)
	}

	var notes []models.Note
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("failed to deserialize notes: %w", err)
	}
	return notes, nil
}
