package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cutplan/internal/domain"
)

const logEntryColumns = "id, at, weight, kind, duration_minutes, sleep_hours"

// AddLogEntry inserts a new log entry.
func (d *DB) AddLogEntry(ctx context.Context, e domain.WeightLogEntry) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO log_entries(id, at, weight, kind, duration_minutes, sleep_hours) VALUES(?, ?, ?, ?, ?, ?);",
		e.ID, encodeTime(e.At), e.Weight, string(e.Kind), e.DurationMinutes, e.SleepHours,
	)
	return err
}

// DeleteLogEntry removes the entry with the given id, reporting whether a row
// was deleted.
func (d *DB) DeleteLogEntry(ctx context.Context, id string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM log_entries WHERE id=?;", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteLatestLogEntry removes the newest entry and returns it, or nil when
// the log is empty.
func (d *DB) DeleteLatestLogEntry(ctx context.Context) (*domain.WeightLogEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+logEntryColumns+" FROM log_entries ORDER BY at DESC LIMIT 1;")

	e, err := scanLogEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if _, err := d.sql.ExecContext(ctx, "DELETE FROM log_entries WHERE id=?;", e.ID); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListLogEntries returns every entry, oldest first.
func (d *DB) ListLogEntries(ctx context.Context) ([]domain.WeightLogEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+logEntryColumns+" FROM log_entries ORDER BY at ASC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogEntries(rows)
}

// ListLogEntriesBetween returns entries with from <= at <= to, oldest first.
func (d *DB) ListLogEntriesBetween(ctx context.Context, from, to time.Time) ([]domain.WeightLogEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+logEntryColumns+" FROM log_entries WHERE at >= ? AND at <= ? ORDER BY at ASC;",
		encodeTime(from), encodeTime(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogEntries(rows)
}

// ListRecentLogEntries returns the newest entries up to limit, newest first.
func (d *DB) ListRecentLogEntries(ctx context.Context, limit int) ([]domain.WeightLogEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+logEntryColumns+" FROM log_entries ORDER BY at DESC LIMIT ?;", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogEntries(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLogEntry(row rowScanner) (domain.WeightLogEntry, error) {
	var (
		e        domain.WeightLogEntry
		at       string
		kind     string
		duration sql.NullInt64
		sleep    sql.NullFloat64
	)
	if err := row.Scan(&e.ID, &at, &e.Weight, &kind, &duration, &sleep); err != nil {
		return domain.WeightLogEntry{}, err
	}
	t, err := decodeTime(at)
	if err != nil {
		return domain.WeightLogEntry{}, err
	}
	e.At = t
	e.Kind = domain.EntryKind(kind)
	if duration.Valid {
		v := int(duration.Int64)
		e.DurationMinutes = &v
	}
	if sleep.Valid {
		v := sleep.Float64
		e.SleepHours = &v
	}
	return e, nil
}

func collectLogEntries(rows *sql.Rows) ([]domain.WeightLogEntry, error) {
	var out []domain.WeightLogEntry
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
