package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutplan/internal/domain"
)

func logAt(kind domain.EntryKind, day time.Time, hour, min int, weight float64) domain.WeightLogEntry {
	return domain.WeightLogEntry{
		At:     time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location()),
		Weight: weight,
		Kind:   kind,
	}
}

var (
	monday  = time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
)

func TestExtractDrift_Overnight(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindPostPractice, monday, 17, 0, 151.0),
		logAt(domain.KindMorning, tuesday, 7, 0, 150.0),
	}

	drift := domain.ExtractDrift(logs)
	require.NotNil(t, drift.Overnight)
	assert.InDelta(t, 1.0, *drift.Overnight, 1e-9)
	assert.Nil(t, drift.Session)
}

func TestExtractDrift_OvernightWindowIsOpen(t *testing.T) {
	// Morning anchor is fixed at Tuesday 07:00; the post-practice entry moves.
	tests := []struct {
		name     string
		postDay  time.Time
		postHour int
		postMin  int
		paired   bool
	}{
		{"sixteen hours exactly excluded", monday, 15, 0, false},
		{"just inside the far edge", monday, 15, 1, true},
		{"six hours exactly excluded", tuesday, 1, 0, false},
		{"just inside the near edge", tuesday, 0, 59, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs := []domain.WeightLogEntry{
				logAt(domain.KindPostPractice, tc.postDay, tc.postHour, tc.postMin, 151.0),
				logAt(domain.KindMorning, tuesday, 7, 0, 150.0),
			}
			drift := domain.ExtractDrift(logs)
			if tc.paired {
				assert.NotNil(t, drift.Overnight)
			} else {
				assert.Nil(t, drift.Overnight)
			}
		})
	}
}

func TestExtractDrift_SessionTakesFirstInWindow(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindPrePractice, monday, 16, 0, 152.0),
		logAt(domain.KindPostPractice, monday, 18, 0, 150.0),
		logAt(domain.KindPostPractice, monday, 17, 30, 150.5),
	}

	drift := domain.ExtractDrift(logs)
	require.NotNil(t, drift.Session)
	// 17:30 comes first in time order even though it was logged later.
	assert.InDelta(t, 1.5, *drift.Session, 1e-9)
}

func TestExtractDrift_SessionConsumesPostEntry(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindPrePractice, monday, 16, 0, 152.0),
		logAt(domain.KindPrePractice, monday, 16, 30, 151.8),
		logAt(domain.KindPostPractice, monday, 17, 0, 150.0),
	}

	drift := domain.ExtractDrift(logs)
	require.NotNil(t, drift.Session)
	// Only the 16:00 entry pairs; the shared post entry cannot count twice.
	assert.InDelta(t, 2.0, *drift.Session, 1e-9)
}

func TestExtractDrift_SessionWindowExcludesLongGaps(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindPrePractice, monday, 10, 0, 152.0),
		logAt(domain.KindPostPractice, monday, 14, 0, 150.0),
	}
	drift := domain.ExtractDrift(logs)
	assert.Nil(t, drift.Session, "four hours exactly is outside the open window")
}

func TestExtractDrift_EmptyLog(t *testing.T) {
	drift := domain.ExtractDrift(nil)
	assert.Nil(t, drift.Overnight)
	assert.Nil(t, drift.Session)
}

func TestExtractExtraWorkouts_ClosestMatchWins(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindExtraBefore, monday, 18, 30, 150.8),
		logAt(domain.KindExtraAfter, monday, 19, 0, 150.2),
		logAt(domain.KindExtraAfter, monday, 19, 30, 150.6),
	}

	stats := domain.ExtractExtraWorkouts(logs, monday)
	require.NotNil(t, stats.AvgLoss)
	assert.InDelta(t, 0.6, *stats.AvgLoss, 1e-9, "the 19:00 entry is the closer match")
	assert.Equal(t, 1, stats.Pairs)
}

func TestExtractExtraWorkouts_SameDayOnly(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindExtraBefore, monday, 23, 30, 150.8),
		logAt(domain.KindExtraAfter, tuesday, 0, 30, 150.0),
	}

	stats := domain.ExtractExtraWorkouts(logs, monday)
	assert.Nil(t, stats.AvgLoss)
	assert.Zero(t, stats.Pairs, "a pair cannot straddle midnight")
}

func TestExtractExtraWorkouts_GainCountsAsPairButNotLoss(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindExtraBefore, monday, 10, 0, 150.0),
		logAt(domain.KindExtraAfter, monday, 11, 0, 150.5),
	}

	stats := domain.ExtractExtraWorkouts(logs, monday)
	assert.Nil(t, stats.AvgLoss)
	assert.Equal(t, 1, stats.Pairs)
	assert.Equal(t, 1, stats.TodayWorkouts)
	assert.Zero(t, stats.TodayLoss)
}

func TestExtractExtraWorkouts_TodaySubtotals(t *testing.T) {
	logs := []domain.WeightLogEntry{
		// Yesterday's workout.
		logAt(domain.KindExtraBefore, monday, 18, 0, 151.0),
		logAt(domain.KindExtraAfter, monday, 19, 0, 150.0),
		// Today's two workouts.
		logAt(domain.KindExtraBefore, tuesday, 7, 0, 150.5),
		logAt(domain.KindExtraAfter, tuesday, 8, 0, 150.0),
		logAt(domain.KindExtraBefore, tuesday, 18, 0, 149.8),
		logAt(domain.KindExtraAfter, tuesday, 19, 0, 149.2),
	}

	stats := domain.ExtractExtraWorkouts(logs, tuesday)
	assert.Equal(t, 3, stats.Pairs)
	assert.Equal(t, 2, stats.TodayWorkouts)
	assert.InDelta(t, 1.1, stats.TodayLoss, 1e-9)
	require.NotNil(t, stats.AvgLoss)
	assert.InDelta(t, (1.0+0.5+0.6)/3, *stats.AvgLoss, 1e-9)
}

func TestExtractExtraWorkouts_ConsumesAfterEntries(t *testing.T) {
	logs := []domain.WeightLogEntry{
		logAt(domain.KindExtraBefore, monday, 9, 0, 151.0),
		logAt(domain.KindExtraBefore, monday, 10, 0, 150.5),
		logAt(domain.KindExtraAfter, monday, 10, 30, 150.0),
	}

	stats := domain.ExtractExtraWorkouts(logs, monday)
	assert.Equal(t, 1, stats.Pairs, "one after entry can close only one workout")
}
