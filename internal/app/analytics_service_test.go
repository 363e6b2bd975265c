package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutplan/internal/app"
	"cutplan/internal/domain"
)

func newAnalyticsService(logs *mockLogRepo, profiles *mockProfileRepo, now time.Time, cache *app.DashboardCache) *app.AnalyticsService {
	return app.NewAnalyticsService(logs, profiles, fixedClock{now: now}, cache, zerolog.Nop())
}

func logsWith(entries []domain.WeightLogEntry) *mockLogRepo {
	return &mockLogRepo{
		listFn: func(context.Context) ([]domain.WeightLogEntry, error) {
			return entries, nil
		},
	}
}

func TestDrift_ExtractsRates(t *testing.T) {
	now := testMonday.AddDate(0, 0, 3).Add(9 * time.Hour) // Thursday
	svc := newAnalyticsService(logsWith(cutWeekLogs()), &mockProfileRepo{}, now, nil)

	report, err := svc.Drift(context.Background(), nil)
	require.NoError(t, err)

	// Overnight: 149.5->149.0 and 148.6->148.2 give +0.5 and +0.4.
	require.NotNil(t, report.Drift.Overnight)
	assert.InDelta(t, 0.45, *report.Drift.Overnight, 1e-9)
	// Sessions: 1.5 and 1.4.
	require.NotNil(t, report.Drift.Session)
	assert.InDelta(t, 1.45, *report.Drift.Session, 1e-9)
	// One extra workout, 0.6 lost.
	require.NotNil(t, report.Extra.AvgLoss)
	assert.InDelta(t, 0.6, *report.Extra.AvgLoss, 1e-9)
	assert.Equal(t, 1, report.Extra.Pairs)
}

func TestDrift_EmptyLogYieldsNils(t *testing.T) {
	svc := newAnalyticsService(&mockLogRepo{}, &mockProfileRepo{}, testMonday, nil)

	report, err := svc.Drift(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, report.Drift.Overnight)
	assert.Nil(t, report.Drift.Session)
	assert.Nil(t, report.Extra.AvgLoss)
}

func TestDescent_RequiresProfile(t *testing.T) {
	svc := newAnalyticsService(&mockLogRepo{}, &mockProfileRepo{}, testMonday, nil)
	_, err := svc.Descent(context.Background(), nil)
	assert.ErrorIs(t, err, app.ErrProfileNotSet)
}

func TestDescent_Snapshot(t *testing.T) {
	now := testMonday.AddDate(0, 0, 3).Add(9 * time.Hour) // Thursday
	svc := newAnalyticsService(logsWith(cutWeekLogs()), profileRepoWith(testProfile), now, nil)

	snap, err := svc.Descent(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, snap.Samples, 4)
	require.NotNil(t, snap.TotalLost)
	assert.InDelta(t, 2.6, *snap.TotalLost, 1e-9)
	require.NotNil(t, snap.DailyAvgLoss)
	assert.InDelta(t, 2.6/3, *snap.DailyAvgLoss, 1e-9)
}

func TestDashboard_FullRollup(t *testing.T) {
	now := testMonday.AddDate(0, 0, 3).Add(9 * time.Hour) // Thursday, two days out
	svc := newAnalyticsService(logsWith(cutWeekLogs()), profileRepoWith(testProfile), now, nil)

	d, err := svc.Dashboard(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, d.DaysUntil)
	assert.Equal(t, 145, d.Target)
	require.NotNil(t, d.Descent.CurrentWeight)
	assert.InDelta(t, 147.4, *d.Descent.CurrentWeight, 1e-9)
	require.NotNil(t, d.TrendWeight)

	// Projection: 147.4 - 2*(0.45 + 1.45 + 0.6) = 142.4.
	require.NotNil(t, d.Projection.Weight)
	assert.InDelta(t, 142.4, *d.Projection.Weight, 1e-9)
	assert.Equal(t, domain.PaceBehind, d.Projection.Pace)
	assert.Equal(t, "142-144 lbs", d.Checkpoints.Critical)
}

func TestDashboard_NoLogs(t *testing.T) {
	svc := newAnalyticsService(&mockLogRepo{}, profileRepoWith(testProfile), testMonday.Add(8*time.Hour), nil)

	d, err := svc.Dashboard(context.Background(), nil)
	require.NoError(t, err)

	assert.Nil(t, d.Drift.Overnight)
	assert.Nil(t, d.Descent.CurrentWeight)
	assert.Nil(t, d.TrendWeight)
	assert.Nil(t, d.Projection.Weight)
	assert.Equal(t, domain.PaceUnknown, d.Projection.Pace)
}

func TestDashboard_MemoizedEqualsComputed(t *testing.T) {
	now := testMonday.AddDate(0, 0, 3).Add(9 * time.Hour)
	cache := app.NewDashboardCache(1<<20, time.Minute)
	cached := newAnalyticsService(logsWith(cutWeekLogs()), profileRepoWith(testProfile), now, cache)
	uncached := newAnalyticsService(logsWith(cutWeekLogs()), profileRepoWith(testProfile), now, nil)

	first, err := cached.Dashboard(context.Background(), nil)
	require.NoError(t, err)
	second, err := cached.Dashboard(context.Background(), nil)
	require.NoError(t, err)
	direct, err := uncached.Dashboard(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, direct, first)
	assert.Equal(t, direct, second, "a cache hit must be indistinguishable from a recompute")
}
