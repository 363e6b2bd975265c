// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cutplan/internal/domain"
)

// DB implements in-memory storage.
type DB struct {
	mu      sync.Mutex
	entries []domain.WeightLogEntry
	profile *domain.AthleteProfile
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.LogRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)

// --- LogRepository ---

// AddLogEntry stores a log entry.
func (db *DB) AddLogEntry(ctx context.Context, e domain.WeightLogEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	e.At = e.At.UTC()
	db.entries = append(db.entries, e)
	return nil
}

// DeleteLogEntry removes the entry with the given id, reporting whether it
// existed.
func (db *DB) DeleteLogEntry(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.entries {
		if e.ID == id {
			db.entries = append(db.entries[:i], db.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// DeleteLatestLogEntry removes and returns the entry with the newest
// timestamp, or nil when the log is empty.
func (db *DB) DeleteLatestLogEntry(ctx context.Context) (*domain.WeightLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.entries) == 0 {
		return nil, nil
	}

	lastIdx := 0
	for i, e := range db.entries {
		if e.At.After(db.entries[lastIdx].At) {
			lastIdx = i
		}
	}

	removed := db.entries[lastIdx]
	db.entries = append(db.entries[:lastIdx], db.entries[lastIdx+1:]...)
	return &removed, nil
}

// ListLogEntries returns every entry, oldest first.
func (db *DB) ListLogEntries(ctx context.Context) ([]domain.WeightLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightLogEntry, len(db.entries))
	copy(result, db.entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].At.Before(result[j].At)
	})
	return result, nil
}

// ListLogEntriesBetween returns entries with from <= At <= to, oldest first.
func (db *DB) ListLogEntriesBetween(ctx context.Context, from, to time.Time) ([]domain.WeightLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WeightLogEntry
	for _, e := range db.entries {
		if !e.At.Before(from) && !e.At.After(to) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].At.Before(result[j].At)
	})
	return result, nil
}

// ListRecentLogEntries returns the newest entries up to limit, newest first.
func (db *DB) ListRecentLogEntries(ctx context.Context, limit int) ([]domain.WeightLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightLogEntry, len(db.entries))
	copy(result, db.entries)
	sort.Slice(result, func(i, j int) bool {
		return result[i].At.After(result[j].At)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- ProfileRepository ---

// GetProfile returns the stored profile, or nil when none has been saved.
func (db *DB) GetProfile(ctx context.Context) (*domain.AthleteProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.profile == nil {
		return nil, nil
	}
	p := *db.profile
	return &p, nil
}

// SaveProfile stores the profile, replacing any previous one.
func (db *DB) SaveProfile(ctx context.Context, p domain.AthleteProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.profile = &p
	return nil
}
