package store

import (
	"database/sql"
	"fmt"

	"cudays/internal/schedule"
	"cudays/internal/store/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements schedule.RecordStore on a single SQLite table:
// one row per (key, position) holding one string of the value array.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ schedule.RecordStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the record store at path and
// brings its schema up to date. path can be ":memory:" for an ephemeral
// store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating record store: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with the PRAGMAs
// the store relies on. Exported for tests that need a raw connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Get returns the value array for key, nil if the key is absent.
func (s *SQLiteStore) Get(key string) ([]string, error) {
	rows, err := s.db.Query("SELECT value FROM records WHERE key = ? ORDER BY position", key)
	if err != nil {
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning key %q: %w", key, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading key %q: %w", key, err)
	}
	return values, nil
}

// Set atomically replaces the whole value array for key.
func (s *SQLiteStore) Set(key string, values []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records WHERE key = ?", key); err != nil {
		return fmt.Errorf("clearing key %q: %w", key, err)
	}

	stmt, err := tx.Prepare("INSERT INTO records (key, position, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.Exec(key, i, v); err != nil {
			return fmt.Errorf("writing key %q position %d: %w", key, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing key %q: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
