package domain

import "strconv"

// Ounces of water per pound of body weight, indexed by days until weigh-in.
// Loading ramps up through day 3, then the taper collapses intake ahead of
// the weigh-in. Key -1 is the post-weigh-in recovery factor.
var waterFactors = map[int]float64{
	5:  1.2,
	4:  1.35,
	3:  1.5,
	2:  0.3,
	1:  0.08,
	0:  0,
	-1: 0.75,
}

const (
	// maxLoadingOunces caps loading-day intake regardless of body weight.
	maxLoadingOunces = 320
	ouncesPerGallon  = 128
	sipsOnlyFactor   = 0.1
)

// HydrationTarget is a day's water prescription with its display label.
type HydrationTarget struct {
	Ounces int    `json:"ounces"`
	Label  string `json:"label"`
}

// SodiumTarget is a day's sodium prescription with its display label.
type SodiumTarget struct {
	Milligrams int    `json:"milligrams"`
	Label      string `json:"label"`
}

func clampDays(daysUntil int) int {
	if daysUntil < -1 {
		return -1
	}
	if daysUntil > 5 {
		return 5
	}
	return daysUntil
}

func waterFactor(daysUntil int) float64 {
	return waterFactors[clampDays(daysUntil)]
}

// WaterTargetOunces returns the day's water intake in ounces for the given
// body weight. Weigh-in day is zero; loading days are capped at 320 oz.
func WaterTargetOunces(daysUntil int, weightLbs float64) int {
	factor := waterFactor(daysUntil)
	oz := roundInt(factor * weightLbs)
	if factor > 0.5 && oz > maxLoadingOunces {
		oz = maxLoadingOunces
	}
	if oz < 0 {
		oz = 0
	}
	return oz
}

// WaterTargetLabel renders the day's intake as guidance: "Rehydrate" on
// weigh-in day, "Sips only" deep in the taper, otherwise gallons rounded to
// the nearest quarter.
func WaterTargetLabel(daysUntil int, weightLbs float64) string {
	day := clampDays(daysUntil)
	if day == 0 {
		return "Rehydrate"
	}
	if waterFactor(daysUntil) <= sipsOnlyFactor {
		return "Sips only"
	}

	oz := WaterTargetOunces(daysUntil, weightLbs)
	gallons := float64(roundInt(float64(oz)/ouncesPerGallon*4)) / 4
	unit := "gallons"
	if gallons == 1 {
		unit = "gallon"
	}
	return strconv.FormatFloat(gallons, 'f', -1, 64) + " " + unit
}

// WaterTarget bundles ounces and label for the given day and body weight.
func WaterTarget(daysUntil int, weightLbs float64) HydrationTarget {
	return HydrationTarget{
		Ounces: WaterTargetOunces(daysUntil, weightLbs),
		Label:  WaterTargetLabel(daysUntil, weightLbs),
	}
}

// SodiumTargetFor returns the day's sodium prescription. Salt load mirrors
// the water load, tapers with it, and flips to replenishment after the
// weigh-in.
func SodiumTargetFor(daysUntil int) SodiumTarget {
	switch clampDays(daysUntil) {
	case 5, 4, 3:
		return SodiumTarget{Milligrams: 5000, Label: "High — salt-load"}
	case 2:
		return SodiumTarget{Milligrams: 2500, Label: "Taper"}
	case 1:
		return SodiumTarget{Milligrams: 1000, Label: "Low"}
	case 0:
		return SodiumTarget{Milligrams: 0, Label: "None until after weigh-in"}
	default:
		return SodiumTarget{Milligrams: 3000, Label: "Replenish"}
	}
}
