package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cutplan/internal/domain"
)

// RecordInput carries a new weigh-in record before validation. Weight may
// arrive in kg; it is normalised to pounds before anything downstream sees
// it. A zero At means "now".
type RecordInput struct {
	At              time.Time `json:"at"`
	Weight          float64   `json:"weight"`
	Unit            string    `json:"unit"`
	Kind            string    `json:"kind"`
	DurationMinutes *int      `json:"durationMinutes"`
	SleepHours      *float64  `json:"sleepHours"`
}

// LogService encapsulates weight-log use cases.
type LogService struct {
	repo  domain.LogRepository
	clock domain.Clock
	log   zerolog.Logger
}

// NewLogService creates a LogService backed by the given repository.
func NewLogService(repo domain.LogRepository, clock domain.Clock, log zerolog.Logger) *LogService {
	return &LogService{
		repo:  repo,
		clock: clock,
		log:   log.With().Str("service", "log").Logger(),
	}
}

// Record validates and stores a new weigh-in record. Malformed input is
// rejected here so the calculations only ever see well-formed entries.
func (s *LogService) Record(ctx context.Context, in RecordInput) (*domain.WeightLogEntry, error) {
	kind, err := domain.ParseEntryKind(in.Kind)
	if err != nil {
		return nil, err
	}
	weight, err := domain.NormalizeToPounds(in.Weight, in.Unit)
	if err != nil {
		return nil, err
	}
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, errors.New("weight must be a positive number")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes <= 0 {
		return nil, errors.New("durationMinutes must be > 0 when set")
	}
	if in.SleepHours != nil && (*in.SleepHours <= 0 || *in.SleepHours > 24) {
		return nil, errors.New("sleepHours must be in (0, 24] when set")
	}

	at := in.At
	if at.IsZero() {
		at = s.clock.Now()
	}

	entry := domain.WeightLogEntry{
		ID:              uuid.NewString(),
		At:              at.UTC(),
		Weight:          weight,
		Kind:            kind,
		DurationMinutes: in.DurationMinutes,
		SleepHours:      in.SleepHours,
	}
	if err := s.repo.AddLogEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("add log entry: %w", err)
	}

	s.log.Debug().
		Str("kind", string(kind)).
		Float64("weight", weight).
		Time("at", entry.At).
		Msg("log entry recorded")
	return &entry, nil
}

// ListRange returns entries between from and to, oldest first. A reversed
// range is swapped rather than rejected.
func (s *LogService) ListRange(ctx context.Context, from, to time.Time) ([]domain.WeightLogEntry, error) {
	if to.Before(from) {
		from, to = to, from
	}
	return s.repo.ListLogEntriesBetween(ctx, from, to)
}

// ListRecent returns the newest entries up to limit, newest first.
func (s *LogService) ListRecent(ctx context.Context, limit int) ([]domain.WeightLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRecentLogEntries(ctx, limit)
}

// UndoLast removes the most recent entry and returns it, or nil when the
// log is already empty.
func (s *LogService) UndoLast(ctx context.Context) (*domain.WeightLogEntry, error) {
	entry, err := s.repo.DeleteLatestLogEntry(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete latest log entry: %w", err)
	}
	if entry != nil {
		s.log.Debug().Str("id", entry.ID).Msg("last log entry undone")
	}
	return entry, nil
}

// Delete removes an entry by id, reporting whether anything was deleted.
func (s *LogService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, errors.New("id is required")
	}
	return s.repo.DeleteLogEntry(ctx, id)
}
