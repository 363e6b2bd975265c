// Command cutstress sweeps the planning calculators across every weight
// class, protocol, and day offset around a weigh-in, feeding them synthetic
// athletes and log weeks. It prints every violated invariant and exits
// non-zero if any check failed.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"cutplan/internal/domain"
	"cutplan/internal/logging"
)

var allProtocols = []domain.Protocol{
	domain.ProtocolBodyComp,
	domain.ProtocolMakeWeight,
	domain.ProtocolHoldWeight,
	domain.ProtocolBuild,
}

type runner struct {
	faker      *gofakeit.Faker
	weighIn    time.Time
	violations []string
}

func (r *runner) failf(format string, args ...any) {
	r.violations = append(r.violations, fmt.Sprintf(format, args...))
}

func (r *runner) profile(wc int, protocol domain.Protocol) domain.AthleteProfile {
	return domain.AthleteProfile{
		WeightClass: wc,
		Protocol:    protocol,
		WeighInAt:   r.weighIn,
	}
}

func main() {
	seed := flag.Int64("seed", 1, "seed for synthetic athletes and logs")
	flag.Parse()

	log := logging.New(logging.Config{Level: "info", Pretty: true})

	r := &runner{
		faker:   gofakeit.New(*seed),
		weighIn: time.Date(2025, time.December, 13, 8, 0, 0, 0, time.UTC),
	}

	combos := 0
	for _, wc := range domain.WeightClasses() {
		for _, protocol := range allProtocols {
			r.checkDescentMonotonic(wc, protocol)
			r.checkSyntheticWeek(wc, protocol)
			for daysUntil := -5; daysUntil <= 10; daysUntil++ {
				combos++
				r.checkTargets(wc, protocol, daysUntil)
				r.checkHydration(wc, daysUntil)
			}
		}
	}
	r.checkPairingRules()
	r.checkProjectionRules()
	r.checkEMA()
	r.checkRehydration()
	r.checkReferenceScenario()

	for _, v := range r.violations {
		log.Error().Msg(v)
	}
	log.Info().
		Int("combos", combos).
		Int("violations", len(r.violations)).
		Msg("stress sweep done")
	if len(r.violations) > 0 {
		os.Exit(1)
	}
}

func (r *runner) checkTargets(wc int, protocol domain.Protocol, daysUntil int) {
	p := r.profile(wc, protocol)
	asOf := r.weighIn.AddDate(0, 0, -daysUntil)

	if got := p.DaysUntilWeighIn(asOf); got != daysUntil {
		r.failf("daysUntil off: want %d got %d (wc=%d %s)", daysUntil, got, wc, protocol)
		return
	}

	target := domain.CalculateTarget(p, asOf)
	band := domain.TargetBandFor(p, asOf)
	if target <= 0 || band.Base <= 0 {
		r.failf("non-positive target %d/%d (wc=%d %s days=%d)", target, band.Base, wc, protocol, daysUntil)
	}

	switch protocol {
	case domain.ProtocolBuild:
		if target != wc {
			r.failf("build target %d drifted off class %d (days=%d)", target, wc, daysUntil)
		}
	case domain.ProtocolHoldWeight:
		ceiling := int(math.Round(float64(wc) * 1.05))
		if target < wc || target > ceiling {
			r.failf("hold target %d outside [%d,%d] (days=%d)", target, wc, ceiling, daysUntil)
		}
		if daysUntil == 0 && target != wc {
			r.failf("hold target %d must equal class %d on weigh-in day", target, wc)
		}
	default:
		loading := domain.IsWaterLoadingDay(daysUntil, protocol)
		if loading != (daysUntil >= 3 && daysUntil <= 5) {
			r.failf("loading window wrong at days=%d (%s)", daysUntil, protocol)
		}
		if loading {
			if band.WithWaterLoad == nil || band.Range == nil {
				r.failf("loading day missing band (wc=%d %s days=%d)", wc, protocol, daysUntil)
				return
			}
			bonus := *band.WithWaterLoad - band.Base
			if bonus < 2 || bonus > 4 {
				r.failf("loading bonus %d outside [2,4] (wc=%d days=%d)", bonus, wc, daysUntil)
			}
			if band.Range.Min != band.Base+2 || band.Range.Max != band.Base+4 {
				r.failf("loading range %+v off base %d (wc=%d days=%d)", *band.Range, band.Base, wc, daysUntil)
			}
			if target != *band.WithWaterLoad {
				r.failf("headline %d != loaded %d (wc=%d days=%d)", target, *band.WithWaterLoad, wc, daysUntil)
			}
		} else if band.WithWaterLoad != nil || band.Range != nil {
			r.failf("band set outside loading window (wc=%d %s days=%d)", wc, protocol, daysUntil)
		}
	}
}

// checkDescentMonotonic verifies the cut-week headline never rises as the
// weigh-in approaches.
func (r *runner) checkDescentMonotonic(wc int, protocol domain.Protocol) {
	if !protocol.IsCutting() {
		return
	}
	p := r.profile(wc, protocol)
	prev := domain.CalculateTarget(p, r.weighIn.AddDate(0, 0, -5))
	for days := 4; days >= 0; days-- {
		t := domain.CalculateTarget(p, r.weighIn.AddDate(0, 0, -days))
		if t > prev {
			r.failf("target rose %d->%d approaching weigh-in (wc=%d %s days=%d)", prev, t, wc, protocol, days)
		}
		prev = t
	}
}

func (r *runner) checkHydration(wc, daysUntil int) {
	weight := r.faker.Float64Range(float64(wc), float64(wc)*1.1)

	oz := domain.WaterTargetOunces(daysUntil, weight)
	if oz < 0 {
		r.failf("negative water %d oz (wc=%d days=%d)", oz, wc, daysUntil)
	}
	if daysUntil == 0 && oz != 0 {
		r.failf("water %d oz on weigh-in day (wc=%d)", oz, wc)
	}
	day := daysUntil
	if day > 5 {
		day = 5
	}
	if day < -1 {
		day = -1
	}
	if (day >= 3 || day == -1) && oz > 320 {
		r.failf("loading water %d oz over cap (wc=%d days=%d)", oz, wc, daysUntil)
	}

	label := domain.WaterTargetLabel(daysUntil, weight)
	if label == "" {
		r.failf("empty water label (wc=%d days=%d)", wc, daysUntil)
	}
	if daysUntil == 0 && label != "Rehydrate" {
		r.failf("weigh-in day label %q (wc=%d)", label, wc)
	}

	wantMg := 3000
	switch {
	case day >= 3:
		wantMg = 5000
	case day == 2:
		wantMg = 2500
	case day == 1:
		wantMg = 1000
	case day == 0:
		wantMg = 0
	}
	if got := domain.SodiumTargetFor(daysUntil).Milligrams; got != wantMg {
		r.failf("sodium %dmg want %dmg (days=%d)", got, wantMg, daysUntil)
	}
}

// checkSyntheticWeek builds a plausible descending week of logs and checks
// that the extractors mine it the way the shape dictates.
func (r *runner) checkSyntheticWeek(wc int, protocol domain.Protocol) {
	monday := domain.MondayOf(r.weighIn)
	at := func(day, hour, min int) time.Time {
		return monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}

	var logs []domain.WeightLogEntry
	add := func(t time.Time, kind domain.EntryKind, w float64) {
		logs = append(logs, domain.WeightLogEntry{
			ID:     strconv.Itoa(len(logs) + 1),
			At:     t,
			Weight: w,
			Kind:   kind,
		})
	}

	var mornings []float64
	weight := float64(wc) * 1.07
	for day := 0; day < 5; day++ {
		mornings = append(mornings, weight)
		add(at(day, 7, 0), domain.KindMorning, weight)
		pre := weight + r.faker.Float64Range(0.2, 1.0)
		add(at(day, 17, 0), domain.KindPrePractice, pre)
		post := pre - r.faker.Float64Range(1.0, 3.0)
		add(at(day, 19, 0), domain.KindPostPractice, post)
		weight = post - r.faker.Float64Range(0.5, 1.5)
	}
	extraLoss := r.faker.Float64Range(0.5, 1.5)
	add(at(2, 12, 0), domain.KindExtraBefore, mornings[2]+0.4)
	add(at(2, 13, 30), domain.KindExtraAfter, mornings[2]+0.4-extraLoss)

	drift := domain.ExtractDrift(logs)
	if drift.Overnight == nil {
		r.failf("overnight nil for paired week (wc=%d %s)", wc, protocol)
	} else if *drift.Overnight < 0.5 || *drift.Overnight > 1.5 {
		r.failf("overnight %.3f outside synthesized [0.5,1.5] (wc=%d)", *drift.Overnight, wc)
	}
	if drift.Session == nil {
		r.failf("session nil for paired week (wc=%d %s)", wc, protocol)
	} else if *drift.Session < 1.0 || *drift.Session > 3.0 {
		r.failf("session %.3f outside synthesized [1,3] (wc=%d)", *drift.Session, wc)
	}

	extra := domain.ExtractExtraWorkouts(logs, at(2, 14, 0))
	if extra.Pairs != 1 || extra.TodayWorkouts != 1 {
		r.failf("extra pairs=%d today=%d want 1/1 (wc=%d)", extra.Pairs, extra.TodayWorkouts, wc)
	}
	if extra.AvgLoss == nil || math.Abs(*extra.AvgLoss-extraLoss) > 1e-6 {
		r.failf("extra avg loss %v want %.3f (wc=%d)", extra.AvgLoss, extraLoss, wc)
	}

	snap := domain.WeeklyDescent(logs, r.weighIn, at(4, 20, 0))
	if len(snap.Samples) != 5 {
		r.failf("descent samples %d want 5 (wc=%d)", len(snap.Samples), wc)
		return
	}
	if snap.StartWeight == nil || snap.CurrentWeight == nil || snap.TotalLost == nil || snap.DailyAvgLoss == nil {
		r.failf("descent fields nil with samples present (wc=%d)", wc)
		return
	}
	lost := mornings[0] - mornings[4]
	if math.Abs(*snap.TotalLost-lost) > 1e-6 || *snap.TotalLost <= 0 {
		r.failf("descent lost %.3f want %.3f (wc=%d)", *snap.TotalLost, lost, wc)
	}
	if math.Abs(*snap.DailyAvgLoss-lost/4) > 1e-6 {
		r.failf("descent daily avg %.3f want %.3f (wc=%d)", *snap.DailyAvgLoss, lost/4, wc)
	}

	proj := domain.ProjectWeighIn(snap.CurrentWeight, drift, extra, 1)
	if proj == nil {
		r.failf("projection nil with rates present (wc=%d)", wc)
	} else {
		if *proj >= *snap.CurrentWeight {
			r.failf("projection %.3f not below current %.3f (wc=%d)", *proj, *snap.CurrentWeight, wc)
		}
		if domain.ClassifyPace(proj, wc) == domain.PaceUnknown {
			r.failf("pace unknown for non-nil projection (wc=%d)", wc)
		}
	}
}

// checkPairingRules pins the matching windows and consumption rules with
// hand-built log shapes.
func (r *runner) checkPairingRules() {
	day0 := time.Date(2025, time.December, 8, 0, 0, 0, 0, time.UTC)
	at := func(day, hour, min int) time.Time {
		return day0.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	}
	entry := func(id string, t time.Time, kind domain.EntryKind, w float64) domain.WeightLogEntry {
		return domain.WeightLogEntry{ID: id, At: t, Weight: w, Kind: kind}
	}

	// Evening 17:00 to morning 07:00 is a 14h gap inside (6h, 16h).
	drift := domain.ExtractDrift([]domain.WeightLogEntry{
		entry("p", at(0, 17, 0), domain.KindPostPractice, 152.8),
		entry("m", at(1, 7, 0), domain.KindMorning, 151.8),
	})
	if drift.Overnight == nil || math.Abs(*drift.Overnight-1.0) > 1e-9 {
		r.failf("overnight 17:00->07:00 pair: got %v want 1.0", drift.Overnight)
	}
	if drift.Session != nil {
		r.failf("session %v without pre-practice entries", *drift.Session)
	}

	// One evening entry may serve several mornings; overnight does not consume.
	drift = domain.ExtractDrift([]domain.WeightLogEntry{
		entry("p", at(0, 17, 0), domain.KindPostPractice, 152.8),
		entry("m1", at(1, 7, 0), domain.KindMorning, 151.8),
		entry("m2", at(1, 8, 0), domain.KindMorning, 152.3),
	})
	if drift.Overnight == nil || math.Abs(*drift.Overnight-0.75) > 1e-9 {
		r.failf("shared overnight candidate: got %v want 0.75", drift.Overnight)
	}

	// Both window edges are exclusive: 6h and 16h gaps must not pair.
	drift = domain.ExtractDrift([]domain.WeightLogEntry{
		entry("p", at(0, 17, 0), domain.KindPostPractice, 152.8),
		entry("m1", at(0, 23, 0), domain.KindMorning, 151.8),
		entry("m2", at(1, 9, 0), domain.KindMorning, 151.8),
	})
	if drift.Overnight != nil {
		r.failf("overnight paired on an excluded window edge: %v", *drift.Overnight)
	}

	// A post-practice entry pairs with at most one pre-practice anchor.
	drift = domain.ExtractDrift([]domain.WeightLogEntry{
		entry("pre1", at(0, 16, 30), domain.KindPrePractice, 180),
		entry("pre2", at(0, 17, 0), domain.KindPrePractice, 178),
		entry("post", at(0, 18, 0), domain.KindPostPractice, 175),
	})
	if drift.Session == nil || math.Abs(*drift.Session-5.0) > 1e-9 {
		r.failf("session consumed twice: got %v want 5.0", drift.Session)
	}

	// Closest same-day extra-after wins: 19:00 over 19:30.
	extra := domain.ExtractExtraWorkouts([]domain.WeightLogEntry{
		entry("b", at(0, 18, 0), domain.KindExtraBefore, 150),
		entry("a1", at(0, 19, 0), domain.KindExtraAfter, 148),
		entry("a2", at(0, 19, 30), domain.KindExtraAfter, 149),
	}, at(0, 20, 0))
	if extra.Pairs != 1 || extra.AvgLoss == nil || math.Abs(*extra.AvgLoss-2.0) > 1e-9 {
		r.failf("extra closest match: pairs=%d loss=%v want 1/2.0", extra.Pairs, extra.AvgLoss)
	}
	if extra.TodayWorkouts != 1 || math.Abs(extra.TodayLoss-2.0) > 1e-9 {
		r.failf("extra today: workouts=%d loss=%.3f want 1/2.0", extra.TodayWorkouts, extra.TodayLoss)
	}

	// Extras never pair across midnight even inside the 3h window.
	extra = domain.ExtractExtraWorkouts([]domain.WeightLogEntry{
		entry("b", at(0, 23, 0), domain.KindExtraBefore, 150),
		entry("a", at(1, 0, 30), domain.KindExtraAfter, 148),
	}, at(1, 1, 0))
	if extra.Pairs != 0 {
		r.failf("extra paired across midnight: pairs=%d", extra.Pairs)
	}

	// A gain still counts as a workout but stays out of the loss pool.
	extra = domain.ExtractExtraWorkouts([]domain.WeightLogEntry{
		entry("b", at(0, 12, 0), domain.KindExtraBefore, 150),
		entry("a", at(0, 13, 0), domain.KindExtraAfter, 150.5),
	}, at(0, 14, 0))
	if extra.Pairs != 1 || extra.AvgLoss != nil || extra.TodayLoss != 0 {
		r.failf("extra gain handling: pairs=%d loss=%v today=%.3f", extra.Pairs, extra.AvgLoss, extra.TodayLoss)
	}
}

func (r *runner) checkProjectionRules() {
	current := 150.0
	overnight, session, extraAvg := 1.0, 2.0, 0.5
	drift := domain.DriftMetrics{Overnight: &overnight, Session: &session}
	extra := domain.ExtraWorkoutStats{AvgLoss: &extraAvg}

	if p := domain.ProjectWeighIn(&current, drift, extra, 3); p == nil || math.Abs(*p-139.5) > 1e-9 {
		r.failf("projection 3 days out: got %v want 139.5", p)
	}
	if p := domain.ProjectWeighIn(&current, drift, extra, -2); p == nil || *p != current {
		r.failf("post-weigh-in projection should hold current: got %v", p)
	}
	if p := domain.ProjectWeighIn(nil, drift, extra, 3); p != nil {
		r.failf("projection without current weight: got %.3f", *p)
	}
	if p := domain.ProjectWeighIn(&current, domain.DriftMetrics{}, domain.ExtraWorkoutStats{}, 3); p != nil {
		r.failf("projection without rates: got %.3f", *p)
	}

	ahead, onTrack, behind := 140.0, 141.5, 141.6
	if got := domain.ClassifyPace(&ahead, 141); got != domain.PaceAhead {
		r.failf("pace at 140 vs 141: %s", got)
	}
	if got := domain.ClassifyPace(&onTrack, 141); got != domain.PaceOnTrack {
		r.failf("pace at 141.5 vs 141: %s", got)
	}
	if got := domain.ClassifyPace(&behind, 141); got != domain.PaceBehind {
		r.failf("pace at 141.6 vs 141: %s", got)
	}
	if got := domain.ClassifyPace(nil, 141); got != domain.PaceUnknown {
		r.failf("pace without projection: %s", got)
	}
}

func (r *runner) checkEMA() {
	if got := domain.ComputeEMA(nil); got != nil {
		r.failf("EMA of empty series: got %.3f", *got)
	}
	if got := domain.ComputeEMA([]float64{7.25}); got == nil || *got != 7.25 {
		r.failf("EMA of single value: got %v want 7.25", got)
	}
	if got := domain.ComputeEMA([]float64{1, 2, 3}); got == nil || math.Abs(*got-1.96) > 0.001 {
		r.failf("EMA of [1,2,3]: got %v want 1.96", got)
	}
}

func (r *runner) checkRehydration() {
	zero := domain.BuildRehydrationPlan(0)
	if zero.FluidOz != "0-0 oz" || zero.SodiumMg != "0-0mg" {
		r.failf("zero-loss rehydration: %q / %q", zero.FluidOz, zero.SodiumMg)
	}
	if neg := domain.BuildRehydrationPlan(-3); neg != zero {
		r.failf("negative loss should clamp to the zero plan: %+v", neg)
	}
	plan := domain.BuildRehydrationPlan(2.5)
	if plan.FluidOz != "40-60 oz" || plan.SodiumMg != "1250-1750mg" {
		r.failf("2.5 lb rehydration: %q / %q", plan.FluidOz, plan.SodiumMg)
	}
}

// checkReferenceScenario pins the 141-class cut week end to end.
func (r *runner) checkReferenceScenario() {
	p := r.profile(141, domain.ProtocolMakeWeight)

	asOf := r.weighIn.AddDate(0, 0, -5)
	band := domain.TargetBandFor(p, asOf)
	if band.Base != 151 {
		r.failf("141 day-5 base: got %d want 151", band.Base)
	}
	if band.Range == nil || band.Range.Min != 153 || band.Range.Max != 155 {
		r.failf("141 day-5 range: got %+v want {153 155}", band.Range)
	}
	if band.WithWaterLoad == nil || *band.WithWaterLoad != 155 {
		r.failf("141 day-5 loaded: got %v want 155", band.WithWaterLoad)
	}
	if oz := domain.WaterTargetOunces(5, 150); oz != 180 {
		r.failf("water at day 5 for 150 lbs: got %d want 180", oz)
	}
	if mg := domain.SodiumTargetFor(5).Milligrams; mg != 5000 {
		r.failf("sodium at day 5: got %d want 5000", mg)
	}

	if target := domain.CalculateTarget(p, r.weighIn); target != 141 {
		r.failf("weigh-in day target: got %d want 141", target)
	}
	if oz := domain.WaterTargetOunces(0, 141.8); oz != 0 {
		r.failf("weigh-in day water: got %d want 0", oz)
	}
	if mg := domain.SodiumTargetFor(0).Milligrams; mg != 0 {
		r.failf("weigh-in day sodium: got %d want 0", mg)
	}
}
