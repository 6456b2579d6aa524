package model

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumeric converts a raw cell to a float64 under the project-wide
// coercion policy: missing, non-numeric, NaN, and infinite values all
// become 0.0. Data-quality problems in competency cells are never
// errors; they contribute nothing to a sum.
func ParseNumeric(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
