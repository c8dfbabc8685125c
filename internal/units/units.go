// Package units holds the pure validation and conversion rules for
// profile and draft numeric fields. Everything here is stateless and
// returns booleans; callers gate commits on these before touching the
// store.
package units

import (
	"strings"

	"github.com/claude/liftlog/internal/models"
)

const (
	cmPerInch = 2.54
	lbsPerKg  = 2.2046226218
)

// ValidAge reports whether an age in whole years is plausible.
func ValidAge(v int) bool {
	return v > 0 && v < 150
}

// ValidHeight checks a height magnitude against the range of its unit.
// Bounds are exclusive on both ends.
func ValidHeight(v float64, unit models.HeightUnit) bool {
	switch unit {
	case models.HeightCm:
		return v > 0 && v < 300
	case models.HeightIn:
		return v > 0 && v < 120
	default:
		return false
	}
}

// ValidWeight checks a weight magnitude against the range of its unit.
func ValidWeight(v float64, unit models.WeightUnit) bool {
	switch unit {
	case models.WeightKg:
		return v > 0 && v < 500
	case models.WeightLbs:
		return v > 0 && v < 1100
	default:
		return false
	}
}

// ValidName reports whether a name is non-empty after trimming.
func ValidName(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidBulkCount bounds the number of identical sets added in one
// draft operation.
func ValidBulkCount(n int) bool {
	return n >= 1 && n <= 20
}

// ConvertHeight converts a height magnitude between cm and inches.
func ConvertHeight(v float64, from, to models.HeightUnit) float64 {
	if from == to {
		return v
	}
	if from == models.HeightCm && to == models.HeightIn {
		return v / cmPerInch
	}
	return v * cmPerInch
}

// ConvertWeight converts a weight magnitude between kg and lbs.
func ConvertWeight(v float64, from, to models.WeightUnit) float64 {
	if from == to {
		return v
	}
	if from == models.WeightKg && to == models.WeightLbs {
		return v * lbsPerKg
	}
	return v / lbsPerKg
}
