package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements the domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

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
		"CREATE TABLE IF NOT EXISTS log_entries (id TEXT PRIMARY KEY, at TIMESTAMPTZ NOT NULL, weight DOUBLE PRECISION NOT NULL, kind TEXT NOT NULL CHECK(kind IN ('morning','pre-practice','post-practice','before-bed','extra-before','extra-after','check-in','weigh-in')), duration_minutes INTEGER, sleep_hours DOUBLE PRECISION);",
		"CREATE INDEX IF NOT EXISTS idx_log_entries_at ON log_entries(at);",
		"CREATE TABLE IF NOT EXISTS athlete_profile (id SMALLINT PRIMARY KEY CHECK(id = 1), weight_class INTEGER NOT NULL, protocol TEXT NOT NULL CHECK(protocol IN ('body-comp','make-weight','hold-weight','build')), weigh_in_at TIMESTAMPTZ NOT NULL, as_of TIMESTAMPTZ);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
