package source

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// DB is a SQLite-backed contact Source. It plays the role of the
// platform's contact provider: a remote, mutable store the engine only
// ever reads.
type DB struct {
	db *sql.DB
}

// Open creates or opens a contact database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open contact database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to contact database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply contact schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Enumerate implements Source. Row order follows the store's own order;
// callers must not rely on it being stable between passes.
func (d *DB) Enumerate(ctx context.Context, limit int) ([]Record, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, display_name FROM contacts LIMIT ?`, limit)
	if err != nil {
		return nil, unavailable("enumerate contacts", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.DisplayName); err != nil {
			return nil, unavailable("scan contact", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("enumerate contacts", err)
	}
	return records, nil
}

// Count implements Source.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, unavailable("count contacts", err)
	}
	return n, nil
}

// Add inserts or replaces a contact. Used by the seed command and tests;
// the engine itself never writes to a contact store.
func (d *DB) Add(ctx context.Context, r Record) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO contacts (id, display_name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET display_name = excluded.display_name
	`, r.ID, r.DisplayName)
	if err != nil {
		return fmt.Errorf("add contact: %w", err)
	}
	return nil
}

// Rename updates the display name of an existing contact. A count-
// preserving edit, useful for exercising the content staleness scan.
func (d *DB) Rename(ctx context.Context, id, displayName string) error {
	_, err := d.db.ExecContext(ctx,
		`UPDATE contacts SET display_name = ? WHERE id = ?`, displayName, id)
	if err != nil {
		return fmt.Errorf("rename contact: %w", err)
	}
	return nil
}
