package services

import (
	"fmt"
	"math"
	"strings"
)

// Role controls which figures a viewer sees on a quote.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleBusiness Role = "Business"
)

// ParseRole accepts "Admin" or "Business" in any letter case.
func ParseRole(s string) (Role, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)):
		return RoleAdmin, nil
	case strings.EqualFold(strings.TrimSpace(s), string(RoleBusiness)):
		return RoleBusiness, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (r Role) valid() bool { return r == RoleAdmin || r == RoleBusiness }

// LineItemInput is one requested shipment line.
type LineItemInput struct {
	Supplier    string     `json:"supplier"`
	Reference   string     `json:"reference"`
	Country     string     `json:"country"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination,omitempty"`
	WeightValue float64    `json:"weight_value"`
	WeightType  WeightType `json:"weight_type"`
	Width       float64    `json:"width"`
	WidthUnit   WidthUnit  `json:"width_unit"`
}

// QuoteResult is the role-gated quote for one line item. Pointer fields are
// absent (nil) when the figure is withheld from the viewer or the route is
// not served.
type QuoteResult struct {
	// Index is the position of the originating item in the batch.
	Index int `json:"index"`
	LineItemInput

	AirAvailable bool `json:"air_available"`
	SeaAvailable bool `json:"sea_available"`

	FinalAirRate *float64 `json:"final_air_rate,omitempty"`
	FinalSeaRate *float64 `json:"final_sea_rate,omitempty"`

	// Admin only.
	WidthMeters        *float64 `json:"width_meters,omitempty"`
	ConvertedGSM       *float64 `json:"converted_gsm,omitempty"`
	WeightPerMeterKg   *float64 `json:"weight_per_meter_kg,omitempty"`
	AirRate            *float64 `json:"air_rate,omitempty"`
	AirFreightPerMeter *float64 `json:"air_freight_per_meter,omitempty"`
	AirMarkup          *float64 `json:"air_markup,omitempty"`
	SeaRate            *float64 `json:"sea_rate,omitempty"`
	CBMPerMeter        *float64 `json:"cbm_per_meter,omitempty"`
	SeaFreightPerMeter *float64 `json:"sea_freight_per_meter,omitempty"`
	SeaMarkup          *float64 `json:"sea_markup,omitempty"`
}

// Label returns the 1-based display label, e.g. "Item 1".
func (r QuoteResult) Label() string {
	return fmt.Sprintf("Item %d", r.Index+1)
}

// lineQuote is the full-precision evaluation of one item before role gating.
type lineQuote struct {
	input       LineItemInput
	measurement Measurement
	air         *AirFreightCalc
	sea         *SeaFreightCalc
}

func quoteLine(item LineItemInput, table *RateTable) lineQuote {
	q := lineQuote{
		input:       item,
		measurement: Normalize(item.WeightValue, item.WeightType, item.Width, item.WidthUnit),
	}
	if rate, ok := table.Lookup(ModeAir, item.Country, item.Origin, item.Destination); ok {
		calc := CalcAirFreight(rate, q.measurement.WeightPerMeterKg)
		q.air = &calc
	}
	if rate, ok := table.Lookup(ModeSea, item.Country, item.Origin, item.Destination); ok {
		calc := CalcSeaFreight(rate, q.measurement.WeightPerMeterKg)
		q.sea = &calc
	}
	return q
}

// finite reports whether every computed figure is a finite number.
func (q lineQuote) finite() bool {
	vals := []float64{q.measurement.WidthMeters, q.measurement.ConvertedGSM, q.measurement.WeightPerMeterKg}
	if q.air != nil {
		vals = append(vals, q.air.FreightPerMeter, q.air.FinalRate)
	}
	if q.sea != nil {
		vals = append(vals, q.sea.CBMPerMeter, q.sea.FreightPerMeter, q.sea.FinalRate)
	}
	for _, v := range vals {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// shape applies display rounding and the role's field visibility.
func (q lineQuote) shape(index int, role Role) QuoteResult {
	res := QuoteResult{
		Index:         index,
		LineItemInput: q.input,
		AirAvailable:  q.air != nil,
		SeaAvailable:  q.sea != nil,
	}
	if q.air != nil {
		res.FinalAirRate = roundPtr(q.air.FinalRate, 4)
	}
	if q.sea != nil {
		res.FinalSeaRate = roundPtr(q.sea.FinalRate, 4)
	}
	if role != RoleAdmin {
		return res
	}

	m := q.measurement
	res.WidthMeters = roundPtr(m.WidthMeters, 4)
	res.WeightPerMeterKg = roundPtr(m.WeightPerMeterKg, 6)
	if m.DerivedGSM {
		res.ConvertedGSM = roundPtr(m.ConvertedGSM, 2)
	}
	if q.air != nil {
		res.AirRate = roundPtr(q.air.BaseRate, 2)
		res.AirFreightPerMeter = roundPtr(q.air.FreightPerMeter, 6)
		markup := AirMarkup
		res.AirMarkup = &markup
	}
	if q.sea != nil {
		res.SeaRate = roundPtr(q.sea.BaseRate, 2)
		res.CBMPerMeter = roundPtr(q.sea.CBMPerMeter, 8)
		res.SeaFreightPerMeter = roundPtr(q.sea.FreightPerMeter, 6)
		markup := SeaMarkup
		res.SeaMarkup = &markup
	}
	return res
}

// Evaluate validates a batch and quotes each item independently, returning
// one result per item in input order. Business problems such as unserved
// routes or a zero width never fail the batch; only malformed input does.
func Evaluate(role Role, table *RateTable, items []LineItemInput) ([]QuoteResult, error) {
	prepared, err := ValidateBatch(role, table, items)
	if err != nil {
		return nil, err
	}
	results := make([]QuoteResult, len(prepared))
	for i, item := range prepared {
		results[i] = quoteLine(item, table).shape(i, role)
	}
	return results, nil
}

// ValidateBatch rejects malformed input before it reaches the engine and
// returns a copy of the items with weight types and width units in canonical
// form.
func ValidateBatch(role Role, table *RateTable, items []LineItemInput) ([]LineItemInput, error) {
	if !role.valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if table == nil {
		return nil, ErrNoRateTable
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	prepared := make([]LineItemInput, len(items))
	var errs []ValidationError
	for i, item := range items {
		row := i + 1
		before := len(errs)
		if wt, err := ParseWeightType(string(item.WeightType)); err != nil {
			errs = append(errs, ValidationError{Row: row, Field: "weight_type", Message: err.Error()})
		} else {
			item.WeightType = wt
		}
		if wu, err := ParseWidthUnit(string(item.WidthUnit)); err != nil {
			errs = append(errs, ValidationError{Row: row, Field: "width_unit", Message: err.Error()})
		} else {
			item.WidthUnit = wu
		}
		if !nonNegative(item.WeightValue) {
			errs = append(errs, ValidationError{Row: row, Field: "weight_value", Message: "weight must be a non-negative number"})
		}
		if !nonNegative(item.Width) {
			errs = append(errs, ValidationError{Row: row, Field: "width", Message: "width must be a non-negative number"})
		}
		item.Country = strings.TrimSpace(item.Country)
		item.Origin = strings.TrimSpace(item.Origin)
		item.Destination = strings.TrimSpace(item.Destination)
		prepared[i] = item

		if len(errs) == before && !quoteLine(item, table).finite() {
			errs = append(errs, ValidationError{Row: row, Field: "weight_value", Message: "weight and width are too large to quote"})
		}
	}
	if len(errs) > 0 {
		return nil, &BatchError{Errors: errs}
	}
	return prepared, nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
