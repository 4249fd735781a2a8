package lexicon

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// yieldEvery is the number of insertions between yield hints. It models a
// WAL-checkpoint boundary: after a burst of writes the store prefers the
// caller to give the scheduler a turn before continuing.
const yieldEvery = 256

const lastRecordCountKey = "last_record_count"

// Store is a SQLite-backed implementation of the Lexicon port, plus the
// persisted engine state (record-count baseline). It stands in for the
// platform's binary dictionary when running outside the host IME.
//
// Writes are expected from a single goroutine (the rebuild worker);
// reads may come from anywhere thanks to WAL mode.
type Store struct {
	db     *sql.DB
	writes atomic.Int64 // insertions since the last yield hint
}

// Open creates or opens a lexicon database at the given path.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to lexicon database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply lexicon schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AddWord inserts word or refreshes its frequency if already present.
// The stored frequency never decreases, so re-inserting an existing word
// with the same weight is observably a no-op.
func (s *Store) AddWord(ctx context.Context, word string, frequency int, blacklisted bool) error {
	flag := 0
	if blacklisted {
		flag = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO words (word, frequency, blacklisted)
		VALUES (?, ?, ?)
		ON CONFLICT(word) DO UPDATE SET
			frequency = max(words.frequency, excluded.frequency)
	`, word, frequency, flag)
	if err != nil {
		return fmt.Errorf("add word: %w", err)
	}
	s.writes.Add(1)
	return nil
}

// AddBigram links prev -> word, refreshing the frequency if the edge
// already exists. The primary key on (prev, word) guarantees the edge is
// never duplicated.
func (s *Store) AddBigram(ctx context.Context, prev, word string, frequency int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bigrams (prev, word, frequency)
		VALUES (?, ?, ?)
		ON CONFLICT(prev, word) DO UPDATE SET
			frequency = max(bigrams.frequency, excluded.frequency)
	`, prev, word, frequency)
	if err != nil {
		return fmt.Errorf("add bigram: %w", err)
	}
	s.writes.Add(1)
	return nil
}

// ContainsWord reports whether word is present.
func (s *Store) ContainsWord(ctx context.Context, word string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words WHERE word = ?`, word).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("contains word: %w", err)
	}
	return n > 0, nil
}

// ContainsBigram reports whether the prev -> word edge is present.
func (s *Store) ContainsBigram(ctx context.Context, prev, word string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bigrams WHERE prev = ? AND word = ?`, prev, word).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("contains bigram: %w", err)
	}
	return n > 0, nil
}

// ShouldYield reports true once per yieldEvery insertions. The counter
// resets when the hint fires, so honoring the hint clears it.
func (s *Store) ShouldYield() bool {
	if s.writes.Load() >= yieldEvery {
		s.writes.Store(0)
		return true
	}
	return false
}

// LastRecordCount returns the persisted record-count baseline, or zero if
// none has been stored yet.
func (s *Store) LastRecordCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM meta WHERE key = ?`, lastRecordCountKey).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("last record count: %w", err)
	}
	return n, nil
}

// SetLastRecordCount persists the record-count baseline for the next
// cheap staleness check.
func (s *Store) SetLastRecordCount(ctx context.Context, n int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, lastRecordCountKey, n)
	if err != nil {
		return fmt.Errorf("set last record count: %w", err)
	}
	return nil
}

// Stats returns the number of stored words and bigram edges. Used by the
// CLI check command.
func (s *Store) Stats(ctx context.Context) (words, bigrams int, err error) {
	if err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM words`).Scan(&words); err != nil {
		return 0, 0, fmt.Errorf("word stats: %w", err)
	}
	if err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bigrams`).Scan(&bigrams); err != nil {
		return 0, 0, fmt.Errorf("bigram stats: %w", err)
	}
	return words, bigrams, nil
}
