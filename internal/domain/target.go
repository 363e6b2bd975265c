package domain

import (
	"math"
	"time"
)

// Cut-week multipliers over the class limit, indexed by days until weigh-in.
// Day 5 and beyond sit at the walk-around ceiling; weigh-in day is the class
// itself. Negative days (post weigh-in recovery) reuse the day-5 value.
var cutMultipliers = []float64{1.00, 1.01, 1.03, 1.05, 1.06, 1.07}

const (
	// holdCeiling bounds hold-weight targets above the class.
	holdCeiling = 1.05
	// criticalMultiplier marks the top of the final-descent window.
	criticalMultiplier = 1.02
	// waterLoadMin/Max widen a loading-day base target into its band.
	waterLoadMin = 2
	waterLoadMax = 4
)

// BandRange is an inclusive low/high pair of target weights in pounds.
type BandRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// TargetBand is a day's target weight. Range and WithWaterLoad are set only
// on water-loading days; the headline number is then the loaded weight.
type TargetBand struct {
	Base          int        `json:"base"`
	WithWaterLoad *int       `json:"withWaterLoad,omitempty"`
	Range         *BandRange `json:"range,omitempty"`
}

func weightMultiplier(daysUntil int) float64 {
	if daysUntil < 0 || daysUntil >= len(cutMultipliers) {
		return cutMultipliers[len(cutMultipliers)-1]
	}
	return cutMultipliers[daysUntil]
}

func holdTarget(weightClass, daysUntil int) int {
	switch {
	case daysUntil == 0:
		return weightClass
	case daysUntil == 1:
		return roundInt(float64(weightClass) * 1.03)
	case daysUntil == 2:
		return roundInt(float64(weightClass) * 1.04)
	default: // 3+ days out, or recovery
		return roundInt(float64(weightClass) * holdCeiling)
	}
}

// IsWaterLoadingDay reports whether daysUntil falls in the loading window.
// Only cutting protocols load.
func IsWaterLoadingDay(daysUntil int, protocol Protocol) bool {
	return protocol.IsCutting() && daysUntil >= 3 && daysUntil <= 5
}

// CalculateTargetWeight computes the cut-week target band for a class.
// On loading days the base widens into {base+2, base+4} and the headline
// target is the water-loaded top of the band.
func CalculateTargetWeight(weightClass, daysUntil int, protocol Protocol) TargetBand {
	base := roundInt(float64(weightClass) * weightMultiplier(daysUntil))
	band := TargetBand{Base: base}
	if IsWaterLoadingDay(daysUntil, protocol) {
		loaded := base + waterLoadMax
		band.WithWaterLoad = &loaded
		band.Range = &BandRange{Min: base + waterLoadMin, Max: base + waterLoadMax}
	}
	return band
}

func scalarTarget(weightClass int, protocol Protocol, daysUntil int) int {
	switch protocol {
	case ProtocolBuild:
		return weightClass
	case ProtocolHoldWeight:
		return holdTarget(weightClass, daysUntil)
	default:
		band := CalculateTargetWeight(weightClass, daysUntil, protocol)
		if band.WithWaterLoad != nil {
			return *band.WithWaterLoad
		}
		return band.Base
	}
}

// TargetBandFor resolves the profile's target band for the given instant.
// Build holds the class year-round; hold-weight floats a few percent above
// it; the cutting protocols descend along the cut-week table.
func TargetBandFor(p AthleteProfile, asOf time.Time) TargetBand {
	daysUntil := p.DaysUntilWeighIn(asOf)
	switch p.Protocol {
	case ProtocolBuild:
		return TargetBand{Base: p.WeightClass}
	case ProtocolHoldWeight:
		return TargetBand{Base: holdTarget(p.WeightClass, daysUntil)}
	default:
		return CalculateTargetWeight(p.WeightClass, daysUntil, p.Protocol)
	}
}

// CalculateTarget returns the single headline target for the given instant.
func CalculateTarget(p AthleteProfile, asOf time.Time) int {
	return scalarTarget(p.WeightClass, p.Protocol, p.DaysUntilWeighIn(asOf))
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
