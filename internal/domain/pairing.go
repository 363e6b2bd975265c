package domain

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DriftMetrics are the averaged weight deltas mined from paired log entries:
// Overnight is weight dropped while sleeping, Session is weight dropped
// across a practice. Nil means no usable pair exists yet.
type DriftMetrics struct {
	Overnight *float64 `json:"overnight"`
	Session   *float64 `json:"session"`
}

// ExtraWorkoutStats summarises extra-workout pairs: the all-time average
// loss (positive losses only), the number of paired workouts, and today's
// count and loss subtotal.
type ExtraWorkoutStats struct {
	AvgLoss       *float64 `json:"avgLoss"`
	Pairs         int      `json:"pairs"`
	TodayWorkouts int      `json:"todayWorkouts"`
	TodayLoss     float64  `json:"todayLoss"`
}

// joinSpec configures one interval-pairing pass over the log. Anchors are
// scanned oldest-first; each anchor takes the first candidate whose gap
// falls strictly inside (minGap, maxGap), or the closest such candidate
// when closest is set. With consume set, a candidate pairs at most once.
type joinSpec struct {
	anchorKind    EntryKind
	candidateKind EntryKind
	lookback      bool // candidate precedes the anchor
	minGap        time.Duration
	maxGap        time.Duration
	sameDay       bool // candidate must share the anchor's calendar day
	closest       bool
	consume       bool
}

type entryPair struct {
	anchor    WeightLogEntry
	candidate WeightLogEntry
}

func matchIntervals(logs []WeightLogEntry, spec joinSpec) []entryPair {
	anchors := entriesOfKind(logs, spec.anchorKind)
	candidates := entriesOfKind(logs, spec.candidateKind)

	used := make(map[int]bool, len(candidates))
	var pairs []entryPair
	for _, a := range anchors {
		best := -1
		var bestGap time.Duration
		for i, c := range candidates {
			if spec.consume && used[i] {
				continue
			}
			gap := c.At.Sub(a.At)
			if spec.lookback {
				gap = a.At.Sub(c.At)
			}
			if gap <= spec.minGap || gap >= spec.maxGap {
				continue
			}
			if spec.sameDay && !sameCalendarDay(c.At, a.At) {
				continue
			}
			if !spec.closest {
				best = i
				break
			}
			if best == -1 || gap < bestGap {
				best = i
				bestGap = gap
			}
		}
		if best == -1 {
			continue
		}
		if spec.consume {
			used[best] = true
		}
		pairs = append(pairs, entryPair{anchor: a, candidate: candidates[best]})
	}
	return pairs
}

func entriesOfKind(logs []WeightLogEntry, kind EntryKind) []WeightLogEntry {
	var out []WeightLogEntry
	for _, e := range logs {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].At.Before(out[j].At) })
	return out
}

// ExtractDrift mines overnight and session weight-loss rates from the log.
//
// Overnight pairs each morning entry with the first post-practice entry 6-16
// hours before it: the previous evening's last weigh-out against the next
// wake-up. Session pairs each pre-practice entry with the first post-practice
// entry within 4 hours after it, consuming the post entry so back-to-back
// practices cannot share one.
func ExtractDrift(logs []WeightLogEntry) DriftMetrics {
	var m DriftMetrics

	overnight := matchIntervals(logs, joinSpec{
		anchorKind:    KindMorning,
		candidateKind: KindPostPractice,
		lookback:      true,
		minGap:        6 * time.Hour,
		maxGap:        16 * time.Hour,
	})
	if deltas := pairDeltas(overnight, func(p entryPair) float64 {
		return p.candidate.Weight - p.anchor.Weight
	}); len(deltas) > 0 {
		avg := stat.Mean(deltas, nil)
		m.Overnight = &avg
	}

	session := matchIntervals(logs, joinSpec{
		anchorKind:    KindPrePractice,
		candidateKind: KindPostPractice,
		maxGap:        4 * time.Hour,
		consume:       true,
	})
	if deltas := pairDeltas(session, func(p entryPair) float64 {
		return p.anchor.Weight - p.candidate.Weight
	}); len(deltas) > 0 {
		avg := stat.Mean(deltas, nil)
		m.Session = &avg
	}

	return m
}

// ExtractExtraWorkouts mines extra-workout losses: each extra-before entry
// pairs with the closest same-day extra-after entry within 3 hours. Gains
// and flat workouts stay out of the average pool but still count as paired
// workouts. Today is judged against asOf.
func ExtractExtraWorkouts(logs []WeightLogEntry, asOf time.Time) ExtraWorkoutStats {
	pairs := matchIntervals(logs, joinSpec{
		anchorKind:    KindExtraBefore,
		candidateKind: KindExtraAfter,
		maxGap:        3 * time.Hour,
		sameDay:       true,
		closest:       true,
		consume:       true,
	})

	stats := ExtraWorkoutStats{Pairs: len(pairs)}
	var pool []float64
	for _, p := range pairs {
		loss := p.anchor.Weight - p.candidate.Weight
		if loss > 0 {
			pool = append(pool, loss)
		}
		if sameCalendarDay(p.anchor.At, asOf) {
			stats.TodayWorkouts++
			if loss > 0 {
				stats.TodayLoss += loss
			}
		}
	}
	if len(pool) > 0 {
		avg := stat.Mean(pool, nil)
		stats.AvgLoss = &avg
	}
	return stats
}

func pairDeltas(pairs []entryPair, delta func(entryPair) float64) []float64 {
	out := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, delta(p))
	}
	return out
}
