// Package sqlite implements the domain repositories on an embedded SQLite
// database, the default store for single-athlete installs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Timestamps are stored as fixed-width UTC text so lexicographic order is
// chronological order.
const timeLayout = "2006-01-02 15:04:05.000000000"

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if needed) the database at path, pings, and runs
// migrations.
func Open(path string) (*DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

	s, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Single writer: the driver reports SQLITE_BUSY under concurrent writes
	// even in WAL mode.
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS log_entries (id TEXT PRIMARY KEY, at TEXT NOT NULL, weight REAL NOT NULL, kind TEXT NOT NULL CHECK(kind IN ('morning','pre-practice','post-practice','before-bed','extra-before','extra-after','check-in','weigh-in')), duration_minutes INTEGER, sleep_hours REAL);",
		"CREATE INDEX IF NOT EXISTS idx_log_entries_at ON log_entries(at);",
		"CREATE TABLE IF NOT EXISTS athlete_profile (id INTEGER PRIMARY KEY CHECK(id = 1), weight_class INTEGER NOT NULL, protocol TEXT NOT NULL CHECK(protocol IN ('body-comp','make-weight','hold-weight','build')), weigh_in_at TEXT NOT NULL, as_of TEXT);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t.UTC(), nil
}
