package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

const schema = `
	CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
`

// SQLite holds a database whose documents table backs SQLiteDocuments.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// SQLiteDocument stores a value as JSON in one row of the documents table.
type SQLiteDocument[T any] struct {
	db   *SQLite
	name string
}

// NewSQLiteDocument returns the document stored under name in db.
func NewSQLiteDocument[T any](db *SQLite, name string) *SQLiteDocument[T] {
	return &SQLiteDocument[T]{db: db, name: name}
}

// Load implements Document.
func (d *SQLiteDocument[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	var body string
	err := d.db.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE name = ?`, d.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return v, false, nil
	}
	if err != nil {
		return v, false, fmt.Errorf("loading %s: %w", d.name, err)
	}
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return v, false, corrupt(d.name, err)
	}
	return v, true, nil
}

// Save implements Document.
func (d *SQLiteDocument[T]) Save(ctx context.Context, v T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", d.name, err)
	}
	_, err = d.db.db.ExecContext(ctx, `
		INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		d.name, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving %s: %w", d.name, err)
	}
	return nil
}
