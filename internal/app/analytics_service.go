package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"cutplan/internal/domain"
)

// Dashboard is the analytics rollup the client renders above the day view:
// extracted rates, the week's descent, the smoothed trend, and the weigh-in
// projection.
type Dashboard struct {
	AsOf        time.Time                `json:"asOf"`
	DaysUntil   int                      `json:"daysUntil"`
	Target      int                      `json:"target"`
	Band        domain.TargetBand        `json:"band"`
	Drift       domain.DriftMetrics      `json:"drift"`
	Extra       domain.ExtraWorkoutStats `json:"extra"`
	Descent     domain.DescentSnapshot   `json:"descent"`
	TrendWeight *float64                 `json:"trendWeight"`
	Projection  domain.Projection        `json:"projection"`
	Checkpoints domain.Checkpoints       `json:"checkpoints"`
}

// DriftReport bundles the pairing extractors' output.
type DriftReport struct {
	AsOf  time.Time                `json:"asOf"`
	Drift domain.DriftMetrics      `json:"drift"`
	Extra domain.ExtraWorkoutStats `json:"extra"`
}

// AnalyticsService mines the log for drift, descent, and projections.
type AnalyticsService struct {
	logs     domain.LogRepository
	profiles domain.ProfileRepository
	clock    domain.Clock
	cache    *DashboardCache
	log      zerolog.Logger
}

// NewAnalyticsService creates an AnalyticsService. cache may be nil to
// disable memoization.
func NewAnalyticsService(logs domain.LogRepository, profiles domain.ProfileRepository, clock domain.Clock, cache *DashboardCache, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		logs:     logs,
		profiles: profiles,
		clock:    clock,
		cache:    cache,
		log:      log.With().Str("service", "analytics").Logger(),
	}
}

// Drift extracts overnight/session rates and extra-workout stats from the
// whole log. Works without a profile; the profile only pins review mode.
func (s *AnalyticsService) Drift(ctx context.Context, asOf *time.Time) (*DriftReport, error) {
	at, err := s.resolveAsOf(ctx, asOf)
	if err != nil {
		return nil, err
	}
	entries, err := s.logs.ListLogEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	return &DriftReport{
		AsOf:  at,
		Drift: domain.ExtractDrift(entries),
		Extra: domain.ExtractExtraWorkouts(entries, at),
	}, nil
}

// Descent aggregates the cut week's morning weights.
func (s *AnalyticsService) Descent(ctx context.Context, asOf *time.Time) (*domain.DescentSnapshot, error) {
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotSet
	}
	at := resolveAsOf(*profile, asOf, s.clock)

	entries, err := s.logs.ListLogEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}
	snap := domain.WeeklyDescent(entries, profile.WeighInAt, at)
	return &snap, nil
}

// Dashboard computes the full rollup, memoized on the exact inputs when a
// cache is wired.
func (s *AnalyticsService) Dashboard(ctx context.Context, asOf *time.Time) (*Dashboard, error) {
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotSet
	}
	at := resolveAsOf(*profile, asOf, s.clock)

	entries, err := s.logs.ListLogEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list log entries: %w", err)
	}

	var key []byte
	if s.cache != nil {
		key = dashboardKey(*profile, at, entries)
		if d, ok := s.cache.Get(key); ok {
			s.log.Debug().Msg("dashboard cache hit")
			d.AsOf = at
			return d, nil
		}
	}

	d := buildDashboard(*profile, entries, at)
	if s.cache != nil {
		s.cache.Set(key, d)
	}
	return d, nil
}

func (s *AnalyticsService) resolveAsOf(ctx context.Context, explicit *time.Time) (time.Time, error) {
	if explicit != nil {
		return *explicit, nil
	}
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("load profile: %w", err)
	}
	if profile != nil && profile.AsOf != nil {
		return *profile.AsOf, nil
	}
	return s.clock.Now(), nil
}

func buildDashboard(p domain.AthleteProfile, entries []domain.WeightLogEntry, at time.Time) *Dashboard {
	days := p.DaysUntilWeighIn(at)
	drift := domain.ExtractDrift(entries)
	extra := domain.ExtractExtraWorkouts(entries, at)
	descent := domain.WeeklyDescent(entries, p.WeighInAt, at)

	// Trend smooths the descent week's mornings, newest first.
	trendSeries := make([]float64, 0, len(descent.Samples))
	for i := len(descent.Samples) - 1; i >= 0; i-- {
		trendSeries = append(trendSeries, descent.Samples[i].Weight)
	}
	trend := domain.ComputeEMA(trendSeries)

	projected := domain.ProjectWeighIn(descent.CurrentWeight, drift, extra, days)

	return &Dashboard{
		AsOf:        at,
		DaysUntil:   days,
		Target:      domain.CalculateTarget(p, at),
		Band:        domain.TargetBandFor(p, at),
		Drift:       drift,
		Extra:       extra,
		Descent:     descent,
		TrendWeight: trend,
		Projection: domain.Projection{
			Weight: projected,
			Pace:   domain.ClassifyPace(projected, p.WeightClass),
		},
		Checkpoints: domain.BuildCheckpoints(p, at),
	}
}
