package domain

import "fmt"

const kgToLb = 2.2046226218

// NormalizeToPounds converts a logged weight into pounds, the unit every
// calculation runs in. Unrecognised units are rejected so a bad client
// cannot slip an unconverted value into the log.
func NormalizeToPounds(v float64, unit string) (float64, error) {
	switch unit {
	case "", "lb":
		return v, nil
	case "kg":
		return v * kgToLb, nil
	default:
		return 0, fmt.Errorf("unknown weight unit %q", unit)
	}
}
