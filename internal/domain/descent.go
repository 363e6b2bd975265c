package domain

import (
	"math"
	"time"
)

// DescentSample is one morning weigh-in on the descent toward the weigh-in.
type DescentSample struct {
	Day    string    `json:"day"`
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// DescentSnapshot aggregates the cut week's morning weights. All pointer
// fields are nil until at least one sample exists.
type DescentSnapshot struct {
	Samples       []DescentSample `json:"samples"`
	StartWeight   *float64        `json:"startWeight"`
	CurrentWeight *float64        `json:"currentWeight"`
	TotalLost     *float64        `json:"totalLost"`
	DailyAvgLoss  *float64        `json:"dailyAvgLoss"`
}

// MondayOf returns midnight of the Monday starting t's ISO week.
func MondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return startOfDay(t).AddDate(0, 0, -(weekday - 1))
}

// WeeklyDescent walks the weigh-in's ISO week Monday through Sunday,
// collecting the first morning entry of each day up to and including asOf's
// day. Missing days are skipped, not zero-filled. The daily average divides
// total loss by the days actually elapsed between the first and last sample,
// never less than one.
func WeeklyDescent(logs []WeightLogEntry, weighInAt, asOf time.Time) DescentSnapshot {
	monday := MondayOf(weighInAt.In(asOf.Location()))
	today := startOfDay(asOf)

	var samples []DescentSample
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		if day.After(today) {
			break
		}
		if e := firstMorningOn(logs, day); e != nil {
			samples = append(samples, DescentSample{
				Day:    day.Weekday().String(),
				Date:   day,
				Weight: e.Weight,
			})
		}
	}

	snap := DescentSnapshot{Samples: samples}
	if len(samples) == 0 {
		return snap
	}

	start := samples[0].Weight
	current := samples[len(samples)-1].Weight
	lost := start - current
	elapsed := int(math.Round(samples[len(samples)-1].Date.Sub(samples[0].Date).Hours() / 24))
	if elapsed < 1 {
		elapsed = 1
	}
	avg := lost / float64(elapsed)

	snap.StartWeight = &start
	snap.CurrentWeight = &current
	snap.TotalLost = &lost
	snap.DailyAvgLoss = &avg
	return snap
}

func firstMorningOn(logs []WeightLogEntry, day time.Time) *WeightLogEntry {
	var first *WeightLogEntry
	for i := range logs {
		e := &logs[i]
		if e.Kind != KindMorning || !sameCalendarDay(e.At, day) {
			continue
		}
		if first == nil || e.At.Before(first.At) {
			first = e
		}
	}
	return first
}
