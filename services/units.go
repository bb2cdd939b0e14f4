package services

import (
	"fmt"
	"strings"
)

// WidthUnit is the unit a fabric width was measured in.
type WidthUnit string

const (
	WidthCM WidthUnit = "CM"
	WidthIN WidthUnit = "IN"
	WidthM  WidthUnit = "M"
)

// MetersPerInch is the exact international inch.
const MetersPerInch = 0.0254

// WidthUnitOptions lists the accepted width units in display order.
var WidthUnitOptions = []WidthUnit{WidthCM, WidthIN, WidthM}

// ParseWidthUnit accepts a unit in any letter case.
func ParseWidthUnit(s string) (WidthUnit, error) {
	switch WidthUnit(strings.ToUpper(strings.TrimSpace(s))) {
	case WidthCM:
		return WidthCM, nil
	case WidthIN:
		return WidthIN, nil
	case WidthM:
		return WidthM, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWidthUnit, s)
}

// WidthToMeters converts a width to meters.
func WidthToMeters(width float64, unit WidthUnit) float64 {
	switch unit {
	case WidthCM:
		return width / 100
	case WidthIN:
		return width * MetersPerInch
	default:
		return width
	}
}

// MetersToWidth is the inverse of WidthToMeters.
func MetersToWidth(meters float64, unit WidthUnit) float64 {
	switch unit {
	case WidthCM:
		return meters * 100
	case WidthIN:
		return meters / MetersPerInch
	default:
		return meters
	}
}

// WeightType describes how a fabric weight was specified.
type WeightType string

const (
	// WeightGSMGrams is area density in grams per square meter.
	WeightGSMGrams WeightType = "GSM_GRAMS_PER_M2"
	// WeightGSMKg is area density in kilograms per square meter.
	WeightGSMKg WeightType = "GSM_KG_PER_M2"
	// WeightGLMGrams is linear density in grams per running meter.
	WeightGLMGrams WeightType = "GLM_GRAMS_PER_M"
)

// WeightTypeOptions lists the accepted weight types in display order.
var WeightTypeOptions = []WeightType{WeightGSMGrams, WeightGSMKg, WeightGLMGrams}

var weightTypeLabels = map[WeightType]string{
	WeightGSMGrams: "GSM (g/m²)",
	WeightGSMKg:    "GSM (kg/m²)",
	WeightGLMGrams: "GLM (g/m)",
}

// Label returns the form label used on summaries, e.g. "GSM (g/m²)".
func (t WeightType) Label() string {
	if l, ok := weightTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParseWeightType accepts either the canonical name or the display label.
func ParseWeightType(s string) (WeightType, error) {
	norm := strings.TrimSpace(s)
	for _, t := range WeightTypeOptions {
		if strings.EqualFold(norm, string(t)) || norm == t.Label() {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWeightType, s)
}

// Measurement is a line item's weight and width in canonical units.
type Measurement struct {
	WidthMeters float64
	// GSMKg is area density in kg/m².
	GSMKg float64
	// ConvertedGSM is the derived area density in g/m²; only set for GLM input.
	ConvertedGSM float64
	DerivedGSM   bool
	// WeightPerMeterKg is the linear mass density in kg per running meter.
	WeightPerMeterKg float64
}

// Normalize converts a weight specification and width into kilograms per
// running meter. A GLM weight on a zero width yields zero rather than an error.
func Normalize(weightValue float64, weightType WeightType, width float64, unit WidthUnit) Measurement {
	m := Measurement{WidthMeters: WidthToMeters(width, unit)}

	switch weightType {
	case WeightGSMKg:
		m.GSMKg = weightValue
	case WeightGLMGrams:
		var gsmGrams float64
		if m.WidthMeters > 0 {
			gsmGrams = weightValue / m.WidthMeters
		}
		m.GSMKg = gsmGrams / 1000
		m.ConvertedGSM = gsmGrams
		m.DerivedGSM = true
	default:
		m.GSMKg = weightValue / 1000
	}

	m.WeightPerMeterKg = m.GSMKg * m.WidthMeters
	return m
}
