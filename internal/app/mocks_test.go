package app_test

import (
	"context"
	"time"

	"cutplan/internal/domain"
)

type mockLogRepo struct {
	addFn         func(ctx context.Context, e domain.WeightLogEntry) error
	deleteFn      func(ctx context.Context, id string) (bool, error)
	deleteLastFn  func(ctx context.Context) (*domain.WeightLogEntry, error)
	listFn        func(ctx context.Context) ([]domain.WeightLogEntry, error)
	listBetweenFn func(ctx context.Context, from, to time.Time) ([]domain.WeightLogEntry, error)
	listRecentFn  func(ctx context.Context, limit int) ([]domain.WeightLogEntry, error)
}

func (m *mockLogRepo) AddLogEntry(ctx context.Context, e domain.WeightLogEntry) error {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return nil
}

func (m *mockLogRepo) DeleteLogEntry(ctx context.Context, id string) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return false, nil
}

func (m *mockLogRepo) DeleteLatestLogEntry(ctx context.Context) (*domain.WeightLogEntry, error) {
	if m.deleteLastFn != nil {
		return m.deleteLastFn(ctx)
	}
	return nil, nil
}

func (m *mockLogRepo) ListLogEntries(ctx context.Context) ([]domain.WeightLogEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockLogRepo) ListLogEntriesBetween(ctx context.Context, from, to time.Time) ([]domain.WeightLogEntry, error) {
	if m.listBetweenFn != nil {
		return m.listBetweenFn(ctx, from, to)
	}
	return nil, nil
}

func (m *mockLogRepo) ListRecentLogEntries(ctx context.Context, limit int) ([]domain.WeightLogEntry, error) {
	if m.listRecentFn != nil {
		return m.listRecentFn(ctx, limit)
	}
	return nil, nil
}

type mockProfileRepo struct {
	getFn  func(ctx context.Context) (*domain.AthleteProfile, error)
	saveFn func(ctx context.Context, p domain.AthleteProfile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context) (*domain.AthleteProfile, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, nil
}

func (m *mockProfileRepo) SaveProfile(ctx context.Context, p domain.AthleteProfile) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// The shared fixture: a 141-class make-weight athlete five days from a
// Saturday-morning weigh-in.
var (
	testWeighIn = time.Date(2025, 12, 13, 8, 0, 0, 0, time.UTC)
	testMonday  = time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)
	testProfile = domain.AthleteProfile{
		WeightClass: 141,
		Protocol:    domain.ProtocolMakeWeight,
		WeighInAt:   testWeighIn,
	}
)

func profileRepoWith(p domain.AthleteProfile) *mockProfileRepo {
	return &mockProfileRepo{
		getFn: func(context.Context) (*domain.AthleteProfile, error) {
			cp := p
			return &cp, nil
		},
	}
}

func entry(kind domain.EntryKind, at time.Time, weight float64) domain.WeightLogEntry {
	return domain.WeightLogEntry{ID: at.Format(time.RFC3339) + string(kind), At: at, Weight: weight, Kind: kind}
}

// cutWeekLogs builds a plausible Monday-to-Thursday descent with practice
// pairs and one extra workout.
func cutWeekLogs() []domain.WeightLogEntry {
	day := func(offset int, hour, min int) time.Time {
		return testMonday.AddDate(0, 0, offset).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}
	return []domain.WeightLogEntry{
		entry(domain.KindMorning, day(0, 7, 0), 150.0),
		entry(domain.KindPrePractice, day(0, 16, 0), 151.0),
		entry(domain.KindPostPractice, day(0, 18, 0), 149.5),
		entry(domain.KindMorning, day(1, 7, 0), 149.0),
		entry(domain.KindPrePractice, day(1, 16, 0), 150.0),
		entry(domain.KindPostPractice, day(1, 18, 0), 148.6),
		entry(domain.KindMorning, day(2, 7, 0), 148.2),
		entry(domain.KindExtraBefore, day(2, 20, 0), 148.8),
		entry(domain.KindExtraAfter, day(2, 21, 0), 148.2),
		entry(domain.KindMorning, day(3, 7, 0), 147.4),
	}
}
