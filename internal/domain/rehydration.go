package domain

import "fmt"

// Fluid and sodium replacement per pound lost during the cut.
const (
	rehydrateOzPerLbMin = 16
	rehydrateOzPerLbMax = 24
	rehydrateMgPerLbMin = 500
	rehydrateMgPerLbMax = 700
)

// RehydrationPlan is the post-weigh-in recovery prescription, rendered as
// display ranges.
type RehydrationPlan struct {
	FluidOz  string `json:"fluidOz"`
	SodiumMg string `json:"sodiumMg"`
	Glycogen string `json:"glycogen"`
}

// BuildRehydrationPlan scales recovery targets by the weight lost during the
// cut. Negative input clamps to zero, which yields the explicit zero ranges
// rather than an error.
func BuildRehydrationPlan(poundsLost float64) RehydrationPlan {
	if poundsLost < 0 {
		poundsLost = 0
	}
	return RehydrationPlan{
		FluidOz: fmt.Sprintf("%d-%d oz",
			roundInt(poundsLost*rehydrateOzPerLbMin),
			roundInt(poundsLost*rehydrateOzPerLbMax)),
		SodiumMg: fmt.Sprintf("%d-%dmg",
			roundInt(poundsLost*rehydrateMgPerLbMin),
			roundInt(poundsLost*rehydrateMgPerLbMax)),
		Glycogen: "Fast carbs right after stepping off the scale, then 25-50g every hour until competition.",
	}
}
