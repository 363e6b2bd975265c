package domain

import (
	"fmt"
	"time"
)

// Pace classifies the projected weigh-in weight against the class limit.
type Pace string

const (
	PaceAhead   Pace = "ahead"
	PaceOnTrack Pace = "on-track"
	PaceBehind  Pace = "behind"
	PaceUnknown Pace = "unknown"
)

// Checkpoints are the cut week's reference ranges rendered for display.
// WaterLoadNote is empty outside the loading window.
type Checkpoints struct {
	WalkAround    string `json:"walkAround"`
	MidWeek       string `json:"midWeek"`
	Critical      string `json:"critical"`
	WaterLoadNote string `json:"waterLoadNote,omitempty"`
}

// Projection is the estimated weigh-in-day weight and its pace read.
type Projection struct {
	Weight *float64 `json:"weight"`
	Pace   Pace     `json:"pace"`
}

// ProjectWeighIn extrapolates the current weight to weigh-in day using the
// extracted daily rates: one overnight drop and one practice per remaining
// day, plus the average extra-workout loss. Returns nil when there is no
// current weight or no rate to extrapolate with.
func ProjectWeighIn(current *float64, drift DriftMetrics, extra ExtraWorkoutStats, daysUntil int) *float64 {
	if current == nil {
		return nil
	}
	days := daysUntil
	if days < 0 {
		days = 0
	}

	var rate float64
	found := false
	for _, r := range []*float64{drift.Overnight, drift.Session, extra.AvgLoss} {
		if r != nil {
			rate += *r
			found = true
		}
	}
	if !found {
		return nil
	}

	projected := *current - float64(days)*rate
	return &projected
}

// ClassifyPace reads a projection against the class limit. Ahead means a
// pound or more under; within half a pound over still counts as on track.
func ClassifyPace(projected *float64, weightClass int) Pace {
	if projected == nil {
		return PaceUnknown
	}
	diff := *projected - float64(weightClass)
	switch {
	case diff <= -1:
		return PaceAhead
	case diff <= 0.5:
		return PaceOnTrack
	default:
		return PaceBehind
	}
}

// BuildCheckpoints renders the week's reference ranges for the profile:
// walk-around from the day 5/4 targets, mid-week from day 3/2, and the
// critical window between the day-1 target and 2% over the class.
func BuildCheckpoints(p AthleteProfile, asOf time.Time) Checkpoints {
	c := Checkpoints{
		WalkAround: rangeString(
			scalarTarget(p.WeightClass, p.Protocol, 4),
			scalarTarget(p.WeightClass, p.Protocol, 5),
		),
		MidWeek: rangeString(
			scalarTarget(p.WeightClass, p.Protocol, 2),
			scalarTarget(p.WeightClass, p.Protocol, 3),
		),
		Critical: rangeString(
			scalarTarget(p.WeightClass, p.Protocol, 1),
			roundInt(float64(p.WeightClass)*criticalMultiplier),
		),
	}
	if IsWaterLoadingDay(p.DaysUntilWeighIn(asOf), p.Protocol) {
		c.WaterLoadNote = "Water loading day: push fluids now, taper begins 2 days out."
	}
	return c
}

func rangeString(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d lbs", a, b)
}
