package domain

// emaAlpha weights each newer observation over the running average.
const emaAlpha = 0.4

// ComputeEMA returns the exponential moving average of values ordered most
// recent first. The fold seeds with the oldest value and works toward the
// newest so recent observations dominate. Nil on an empty series.
func ComputeEMA(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	acc := values[len(values)-1]
	for i := len(values) - 2; i >= 0; i-- {
		acc = emaAlpha*values[i] + (1-emaAlpha)*acc
	}
	return &acc
}
