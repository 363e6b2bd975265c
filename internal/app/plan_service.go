package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"cutplan/internal/domain"
)

// DayPlan is the day's full prescription: where the weight should be and
// what goes in the bottle and on the plate.
type DayPlan struct {
	AsOf         time.Time              `json:"asOf"`
	DaysUntil    int                    `json:"daysUntil"`
	Target       int                    `json:"target"`
	Band         domain.TargetBand      `json:"band"`
	WaterLoading bool                   `json:"waterLoading"`
	Water        domain.HydrationTarget `json:"water"`
	Sodium       domain.SodiumTarget    `json:"sodium"`
	Checkpoints  domain.Checkpoints     `json:"checkpoints"`
}

// RehydrationResult pairs the recovery plan with the loss it was scaled by.
type RehydrationResult struct {
	PoundsLost float64                `json:"poundsLost"`
	Plan       domain.RehydrationPlan `json:"plan"`
}

// PlanService derives day plans and rehydration plans from the profile and
// the log.
type PlanService struct {
	logs     domain.LogRepository
	profiles domain.ProfileRepository
	clock    domain.Clock
	log      zerolog.Logger
}

// NewPlanService creates a PlanService over the given repositories.
func NewPlanService(logs domain.LogRepository, profiles domain.ProfileRepository, clock domain.Clock, log zerolog.Logger) *PlanService {
	return &PlanService{
		logs:     logs,
		profiles: profiles,
		clock:    clock,
		log:      log.With().Str("service", "plan").Logger(),
	}
}

// resolveAsOf picks the effective instant: an explicit override beats the
// profile's review-mode pin, which beats the clock.
func resolveAsOf(p domain.AthleteProfile, explicit *time.Time, clock domain.Clock) time.Time {
	if explicit != nil {
		return *explicit
	}
	if p.AsOf != nil {
		return *p.AsOf
	}
	return clock.Now()
}

// DayPlan computes the prescription for the effective day.
func (s *PlanService) DayPlan(ctx context.Context, asOf *time.Time) (*DayPlan, error) {
	profile, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotSet
	}
	at := resolveAsOf(*profile, asOf, s.clock)
	days := profile.DaysUntilWeighIn(at)

	weight, err := s.referenceWeight(ctx, *profile)
	if err != nil {
		return nil, err
	}

	return &DayPlan{
		AsOf:         at,
		DaysUntil:    days,
		Target:       domain.CalculateTarget(*profile, at),
		Band:         domain.TargetBandFor(*profile, at),
		WaterLoading: domain.IsWaterLoadingDay(days, profile.Protocol),
		Water:        domain.WaterTarget(days, weight),
		Sodium:       domain.SodiumTargetFor(days),
		Checkpoints:  domain.BuildCheckpoints(*profile, at),
	}, nil
}

// Rehydration scales the recovery plan by the week's total loss. With no
// descent data yet the plan comes back at zero rather than failing.
func (s *PlanService) Rehydration(ctx context.Context, asOf *time.Time) (*RehydrationResult, error) {
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

	var lost float64
	if snap.TotalLost != nil && *snap.TotalLost > 0 {
		lost = *snap.TotalLost
	}
	return &RehydrationResult{
		PoundsLost: lost,
		Plan:       domain.BuildRehydrationPlan(lost),
	}, nil
}

// referenceWeight is the body weight hydration scales from: the latest
// logged weight, or the class itself before any entry exists.
func (s *PlanService) referenceWeight(ctx context.Context, p domain.AthleteProfile) (float64, error) {
	recent, err := s.logs.ListRecentLogEntries(ctx, 1)
	if err != nil {
		return 0, fmt.Errorf("list recent log entries: %w", err)
	}
	if len(recent) == 0 {
		return float64(p.WeightClass), nil
	}
	return recent[0].Weight, nil
}
