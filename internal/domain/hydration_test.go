package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cutplan/internal/domain"
)

func TestWaterTargetOunces(t *testing.T) {
	tests := []struct {
		name      string
		daysUntil int
		weight    float64
		want      int
	}{
		{"five out", 5, 150, 180},
		{"four out", 4, 150, 203},
		{"three out", 3, 150, 225},
		{"two out taper", 2, 150, 45},
		{"one out", 1, 150, 12},
		{"weigh-in day", 0, 150, 0},
		{"recovery", -1, 150, 113},
		{"deep recovery clamps", -4, 150, 113},
		{"far out clamps to day five", 9, 150, 180},
		{"heavyweight hits the cap", 3, 285, 320},
		{"taper ignores the cap", 2, 285, 86},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.WaterTargetOunces(tc.daysUntil, tc.weight))
		})
	}
}

func TestWaterTargetOunces_NeverNegativeAndCapped(t *testing.T) {
	for days := -5; days <= 10; days++ {
		for _, w := range []float64{100, 150, 197, 285, 400} {
			oz := domain.WaterTargetOunces(days, w)
			assert.GreaterOrEqual(t, oz, 0, "days=%d weight=%v", days, w)
			assert.LessOrEqual(t, oz, 320, "days=%d weight=%v", days, w)
		}
	}
}

func TestWaterTargetLabel(t *testing.T) {
	tests := []struct {
		name      string
		daysUntil int
		weight    float64
		want      string
	}{
		{"weigh-in day", 0, 150, "Rehydrate"},
		{"one out", 1, 150, "Sips only"},
		{"five out", 5, 150, "1.5 gallons"},
		{"three out", 3, 150, "1.75 gallons"},
		{"two out", 2, 150, "0.25 gallons"},
		{"recovery singular", -1, 150, "1 gallon"},
		{"capped heavyweight", 3, 285, "2.5 gallons"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.WaterTargetLabel(tc.daysUntil, tc.weight))
		})
	}
}

func TestSodiumTargetFor(t *testing.T) {
	tests := []struct {
		name      string
		daysUntil int
		wantMg    int
		wantLabel string
	}{
		{"five out", 5, 5000, "High — salt-load"},
		{"four out", 4, 5000, "High — salt-load"},
		{"three out", 3, 5000, "High — salt-load"},
		{"two out", 2, 2500, "Taper"},
		{"one out", 1, 1000, "Low"},
		{"weigh-in day", 0, 0, "None until after weigh-in"},
		{"recovery", -1, 3000, "Replenish"},
		{"deep recovery clamps", -6, 3000, "Replenish"},
		{"far out clamps to day five", 12, 5000, "High — salt-load"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.SodiumTargetFor(tc.daysUntil)
			assert.Equal(t, tc.wantMg, got.Milligrams)
			assert.Equal(t, tc.wantLabel, got.Label)
		})
	}
}

func TestWaterTarget_Bundle(t *testing.T) {
	got := domain.WaterTarget(5, 150)
	assert.Equal(t, 180, got.Ounces)
	assert.Equal(t, "1.5 gallons", got.Label)
}
