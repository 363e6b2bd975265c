package domain

import (
	"context"
	"fmt"
	"time"
)

// EntryKind identifies when in the day a weight was logged. Pairing and
// aggregation decisions key off the kind, so the set is closed.
type EntryKind string

const (
	KindMorning      EntryKind = "morning"
	KindPrePractice  EntryKind = "pre-practice"
	KindPostPractice EntryKind = "post-practice"
	KindBeforeBed    EntryKind = "before-bed"
	KindExtraBefore  EntryKind = "extra-before"
	KindExtraAfter   EntryKind = "extra-after"
	KindCheckIn      EntryKind = "check-in"
	KindWeighIn      EntryKind = "weigh-in"
)

var entryKinds = map[EntryKind]bool{
	KindMorning:      true,
	KindPrePractice:  true,
	KindPostPractice: true,
	KindBeforeBed:    true,
	KindExtraBefore:  true,
	KindExtraAfter:   true,
	KindCheckIn:      true,
	KindWeighIn:      true,
}

// ParseEntryKind converts a wire string into an EntryKind.
func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown entry kind %q", s)
	}
	return k, nil
}

// Valid reports whether k is one of the known entry kinds.
func (k EntryKind) Valid() bool {
	return entryKinds[k]
}

// WeightLogEntry is a single timestamped weigh-in record, always in pounds.
// DurationMinutes is only meaningful on post-practice and extra-after entries,
// SleepHours only on morning entries; both ride along as context.
type WeightLogEntry struct {
	ID              string    `json:"id"`
	At              time.Time `json:"at"`
	Weight          float64   `json:"weight"`
	Kind            EntryKind `json:"kind"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	SleepHours      *float64  `json:"sleepHours,omitempty"`
}

// LogRepository is the port for weight-log persistence. Listing methods
// return entries ordered by timestamp ascending unless stated otherwise.
type LogRepository interface {
	AddLogEntry(ctx context.Context, e WeightLogEntry) error
	DeleteLogEntry(ctx context.Context, id string) (bool, error)
	DeleteLatestLogEntry(ctx context.Context) (*WeightLogEntry, error)
	ListLogEntries(ctx context.Context) ([]WeightLogEntry, error)
	ListLogEntriesBetween(ctx context.Context, from, to time.Time) ([]WeightLogEntry, error)
	ListRecentLogEntries(ctx context.Context, limit int) ([]WeightLogEntry, error)
}
