package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutplan/internal/app"
	"cutplan/internal/domain"
)

func newLogService(repo *mockLogRepo, now time.Time) *app.LogService {
	return app.NewLogService(repo, fixedClock{now: now}, zerolog.Nop())
}

func TestRecord_Validation(t *testing.T) {
	svc := newLogService(&mockLogRepo{}, testMonday)
	badDuration := -10
	badSleep := 25.0

	tests := []struct {
		name string
		in   app.RecordInput
	}{
		{"zero weight", app.RecordInput{Weight: 0, Kind: "morning"}},
		{"negative weight", app.RecordInput{Weight: -150, Kind: "morning"}},
		{"unknown kind", app.RecordInput{Weight: 150, Kind: "lunch"}},
		{"unknown unit", app.RecordInput{Weight: 150, Kind: "morning", Unit: "st"}},
		{"bad duration", app.RecordInput{Weight: 150, Kind: "post-practice", DurationMinutes: &badDuration}},
		{"bad sleep", app.RecordInput{Weight: 150, Kind: "morning", SleepHours: &badSleep}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), tc.in)
			assert.Error(t, err)
		})
	}
}

func TestRecord_Success(t *testing.T) {
	var stored domain.WeightLogEntry
	repo := &mockLogRepo{
		addFn: func(_ context.Context, e domain.WeightLogEntry) error {
			stored = e
			return nil
		},
	}
	at := testMonday.Add(7 * time.Hour)
	sleep := 7.5

	got, err := newLogService(repo, testMonday).Record(context.Background(), app.RecordInput{
		At:         at,
		Weight:     150.0,
		Kind:       "morning",
		SleepHours: &sleep,
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.NotEmpty(t, stored.ID, "an id must be assigned")
	assert.Equal(t, domain.KindMorning, stored.Kind)
	assert.True(t, stored.At.Equal(at))
	assert.Equal(t, time.UTC, stored.At.Location())
	require.NotNil(t, stored.SleepHours)
	assert.InDelta(t, 7.5, *stored.SleepHours, 1e-9)
}

func TestRecord_ZeroTimestampUsesClock(t *testing.T) {
	var stored domain.WeightLogEntry
	repo := &mockLogRepo{
		addFn: func(_ context.Context, e domain.WeightLogEntry) error {
			stored = e
			return nil
		},
	}
	now := testMonday.Add(9 * time.Hour)

	_, err := newLogService(repo, now).Record(context.Background(), app.RecordInput{Weight: 150, Kind: "check-in"})
	require.NoError(t, err)
	assert.True(t, stored.At.Equal(now))
}

func TestRecord_NormalizesKilograms(t *testing.T) {
	var stored domain.WeightLogEntry
	repo := &mockLogRepo{
		addFn: func(_ context.Context, e domain.WeightLogEntry) error {
			stored = e
			return nil
		},
	}

	_, err := newLogService(repo, testMonday).Record(context.Background(), app.RecordInput{
		Weight: 68.0,
		Unit:   "kg",
		Kind:   "morning",
	})
	require.NoError(t, err)
	assert.InDelta(t, 149.91, stored.Weight, 0.01)
}

func TestRecord_RepoError(t *testing.T) {
	repo := &mockLogRepo{
		addFn: func(context.Context, domain.WeightLogEntry) error {
			return errors.New("disk full")
		},
	}
	_, err := newLogService(repo, testMonday).Record(context.Background(), app.RecordInput{Weight: 150, Kind: "morning"})
	assert.ErrorContains(t, err, "disk full")
}

func TestListRange_SwapsReversedBounds(t *testing.T) {
	var gotFrom, gotTo time.Time
	repo := &mockLogRepo{
		listBetweenFn: func(_ context.Context, from, to time.Time) ([]domain.WeightLogEntry, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	from := testMonday
	to := testMonday.AddDate(0, 0, 3)

	_, err := newLogService(repo, testMonday).ListRange(context.Background(), to, from)
	require.NoError(t, err)
	assert.True(t, gotFrom.Equal(from))
	assert.True(t, gotTo.Equal(to))
}

func TestListRecent_DefaultLimit(t *testing.T) {
	var gotLimit int
	repo := &mockLogRepo{
		listRecentFn: func(_ context.Context, limit int) ([]domain.WeightLogEntry, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	_, err := newLogService(repo, testMonday).ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
}

func TestUndoLast_EmptyLog(t *testing.T) {
	got, err := newLogService(&mockLogRepo{}, testMonday).UndoLast(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got, "an empty log is not an error")
}

func TestDelete_RequiresID(t *testing.T) {
	_, err := newLogService(&mockLogRepo{}, testMonday).Delete(context.Background(), "")
	assert.Error(t, err)
}
