package domain

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Protocol is the cut strategy the athlete is running toward the next
// weigh-in.
type Protocol string

const (
	// ProtocolBodyComp is an aggressive cut aimed at body-composition change.
	ProtocolBodyComp Protocol = "body-comp"
	// ProtocolMakeWeight is a rapid cut to the class limit.
	ProtocolMakeWeight Protocol = "make-weight"
	// ProtocolHoldWeight keeps the athlete near the class between cuts.
	ProtocolHoldWeight Protocol = "hold-weight"
	// ProtocolBuild is off-season building with no descent.
	ProtocolBuild Protocol = "build"
)

var protocols = map[Protocol]bool{
	ProtocolBodyComp:   true,
	ProtocolMakeWeight: true,
	ProtocolHoldWeight: true,
	ProtocolBuild:      true,
}

// ParseProtocol converts a wire string into a Protocol.
func ParseProtocol(s string) (Protocol, error) {
	p := Protocol(s)
	if !p.Valid() {
		return "", fmt.Errorf("unknown protocol %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the known protocols.
func (p Protocol) Valid() bool {
	return protocols[p]
}

// IsCutting reports whether the protocol descends toward the class limit.
// Only cutting protocols water-load.
func (p Protocol) IsCutting() bool {
	return p == ProtocolBodyComp || p == ProtocolMakeWeight
}

// AthleteProfile holds the settings every calculation keys off: the weight
// class in pounds, the active protocol, and the next weigh-in instant.
// AsOf, when set, pins the effective "today" for reviewing past weeks;
// nil means the caller's clock decides.
type AthleteProfile struct {
	WeightClass int        `json:"weightClass"`
	Protocol    Protocol   `json:"protocol"`
	WeighInAt   time.Time  `json:"weighInAt"`
	AsOf        *time.Time `json:"asOf,omitempty"`
}

// DaysUntilWeighIn returns whole calendar days from asOf to the weigh-in,
// negative once the weigh-in has passed.
func (p AthleteProfile) DaysUntilWeighIn(asOf time.Time) int {
	from := startOfDay(asOf)
	to := startOfDay(p.WeighInAt.In(asOf.Location()))
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// ProfileRepository is the port for athlete-profile persistence. GetProfile
// returns nil when no profile has been saved yet.
type ProfileRepository interface {
	GetProfile(ctx context.Context) (*AthleteProfile, error)
	SaveProfile(ctx context.Context, p AthleteProfile) error
}

// WeightClasses returns the collegiate weight classes in pounds. The engine
// accepts any positive class; this list drives pickers and the stress
// harness.
func WeightClasses() []int {
	return []int{125, 133, 141, 149, 157, 165, 174, 184, 197, 285}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameCalendarDay reports whether a falls on the same calendar day as ref,
// evaluated in ref's location.
func sameCalendarDay(a, ref time.Time) bool {
	ay, am, ad := a.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ay == ry && am == rm && ad == rd
}
