package services

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds v to the given number of decimal places, half away from zero,
// working on the shortest decimal representation of v so binary noise such
// as 1.0080000000000002 does not leak into displayed figures.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func roundPtr(v float64, places int32) *float64 {
	r := Round(v, places)
	return &r
}
