package services

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-12

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestWidthToMeters(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		unit  WidthUnit
		want  float64
	}{
		{"centimeters", 160, WidthCM, 1.6},
		{"inches", 60, WidthIN, 1.524},
		{"meters", 1.5, WidthM, 1.5},
		{"zero", 0, WidthCM, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WidthToMeters(tt.width, tt.unit)
			if !approxEqual(got, tt.want) {
				t.Errorf("WidthToMeters(%v, %s) = %v, want %v", tt.width, tt.unit, got, tt.want)
			}
		})
	}
}

func TestWidthRoundTrip(t *testing.T) {
	for _, unit := range WidthUnitOptions {
		for _, m := range []float64{0, 0.01, 1, 1.37, 2.8, 1000} {
			got := WidthToMeters(MetersToWidth(m, unit), unit)
			if !approxEqual(got, m) {
				t.Errorf("round trip through %s: %v -> %v", unit, m, got)
			}
		}
	}
}

func TestParseWidthUnit(t *testing.T) {
	for _, in := range []string{"cm", "CM", " In ", "m"} {
		if _, err := ParseWidthUnit(in); err != nil {
			t.Errorf("ParseWidthUnit(%q) error = %v", in, err)
		}
	}
	_, err := ParseWidthUnit("yd")
	if !errors.Is(err, ErrInvalidWidthUnit) {
		t.Errorf("ParseWidthUnit(yd) error = %v, want ErrInvalidWidthUnit", err)
	}
}

func TestParseWeightType(t *testing.T) {
	tests := []struct {
		in   string
		want WeightType
	}{
		{"GSM_GRAMS_PER_M2", WeightGSMGrams},
		{"gsm_kg_per_m2", WeightGSMKg},
		{"GLM (g/m)", WeightGLMGrams},
		{"GSM (g/m²)", WeightGSMGrams},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeightType(tt.in)
			if err != nil {
				t.Fatalf("ParseWeightType(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseWeightType(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseWeightType("oz/yd"); !errors.Is(err, ErrInvalidWeightType) {
		t.Errorf("expected ErrInvalidWeightType, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		weight      float64
		weightType  WeightType
		width       float64
		unit        WidthUnit
		wantPerM    float64
		wantGSM     float64
		wantDerived bool
	}{
		{"gsm grams", 150, WeightGSMGrams, 160, WidthCM, 0.24, 0, false},
		{"gsm kg", 0.2, WeightGSMKg, 1.5, WidthM, 0.3, 0, false},
		{"glm grams", 300, WeightGLMGrams, 1.5, WidthM, 0.3, 200, true},
		{"glm zero width", 100, WeightGLMGrams, 0, WidthM, 0, 0, true},
		{"zero weight", 0, WeightGSMGrams, 150, WidthCM, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Normalize(tt.weight, tt.weightType, tt.width, tt.unit)
			if !approxEqual(m.WeightPerMeterKg, tt.wantPerM) {
				t.Errorf("WeightPerMeterKg = %v, want %v", m.WeightPerMeterKg, tt.wantPerM)
			}
			if m.DerivedGSM != tt.wantDerived {
				t.Errorf("DerivedGSM = %v, want %v", m.DerivedGSM, tt.wantDerived)
			}
			if tt.wantDerived && !approxEqual(m.ConvertedGSM, tt.wantGSM) {
				t.Errorf("ConvertedGSM = %v, want %v", m.ConvertedGSM, tt.wantGSM)
			}
		})
	}
}

func TestNormalize_NonNegative(t *testing.T) {
	for _, wt := range WeightTypeOptions {
		for _, unit := range WidthUnitOptions {
			for _, weight := range []float64{0, 0.5, 150, 1e6} {
				for _, width := range []float64{0, 0.1, 60, 160} {
					m := Normalize(weight, wt, width, unit)
					if m.WeightPerMeterKg < 0 || math.IsNaN(m.WeightPerMeterKg) {
						t.Errorf("Normalize(%v, %s, %v, %s) = %v", weight, wt, width, unit, m.WeightPerMeterKg)
					}
				}
			}
		}
	}
}

func TestNormalize_GLMMatchesDerivedGSM(t *testing.T) {
	for _, width := range []float64{0.5, 1.37, 1.6, 2.8} {
		for _, glm := range []float64{80, 200, 333.3} {
			direct := Normalize(glm, WeightGLMGrams, width, WidthM)
			viaGSM := Normalize(direct.ConvertedGSM, WeightGSMGrams, width, WidthM)
			if !approxEqual(direct.WeightPerMeterKg, viaGSM.WeightPerMeterKg) {
				t.Errorf("glm=%v width=%v: direct %v != via gsm %v",
					glm, width, direct.WeightPerMeterKg, viaGSM.WeightPerMeterKg)
			}
			if !approxEqual(direct.WeightPerMeterKg, glm/1000) {
				t.Errorf("glm=%v width=%v: %v kg/m, want %v", glm, width, direct.WeightPerMeterKg, glm/1000)
			}
		}
	}
}

func TestWeightTypeLabel(t *testing.T) {
	if got := WeightGLMGrams.Label(); got != "GLM (g/m)" {
		t.Errorf("Label() = %q", got)
	}
	if got := WeightType("OTHER").Label(); got != "OTHER" {
		t.Errorf("unknown Label() = %q", got)
	}
}
