// Package services provides freight pricing, rate table and summary functions.
package services

const (
	// AirMarkup is applied to air freight per running meter.
	AirMarkup = 1.2
	// SeaMarkup is applied to sea freight per running meter.
	SeaMarkup = 1.3
	// KgPerCBM is the volumetric factor converting kilograms to cubic meters.
	KgPerCBM = 166.0
)

// AirFreightCalc holds the air freight figures for one line item.
type AirFreightCalc struct {
	BaseRate        float64 // currency per kg
	FreightPerMeter float64 // BaseRate * kg per meter
	FinalRate       float64 // FreightPerMeter * AirMarkup
}

// SeaFreightCalc holds the sea freight figures for one line item.
type SeaFreightCalc struct {
	BaseRate        float64 // currency per CBM
	CBMPerMeter     float64 // kg per meter / KgPerCBM
	FreightPerMeter float64 // BaseRate * CBMPerMeter
	FinalRate       float64 // FreightPerMeter * SeaMarkup
}

// CalcAirFreight prices one running meter by air.
func CalcAirFreight(baseRate, weightPerMeterKg float64) AirFreightCalc {
	freight := baseRate * weightPerMeterKg
	return AirFreightCalc{
		BaseRate:        baseRate,
		FreightPerMeter: freight,
		FinalRate:       freight * AirMarkup,
	}
}

// CBMPerMeter converts kilograms per running meter to cubic meters per running meter.
func CBMPerMeter(weightPerMeterKg float64) float64 {
	return weightPerMeterKg / KgPerCBM
}

// CalcSeaFreight prices one running meter by sea.
func CalcSeaFreight(baseRate, weightPerMeterKg float64) SeaFreightCalc {
	cbm := CBMPerMeter(weightPerMeterKg)
	freight := baseRate * cbm
	return SeaFreightCalc{
		BaseRate:        baseRate,
		CBMPerMeter:     cbm,
		FreightPerMeter: freight,
		FinalRate:       freight * SeaMarkup,
	}
}
