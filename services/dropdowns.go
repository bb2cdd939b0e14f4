package services

import "time"

// Option is one choice in a form select.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RateOptions lists the selectable values for a quote form.
type RateOptions struct {
	Countries    []string            `json:"countries"`
	Origins      map[string][]string `json:"origins"`
	Destinations []string            `json:"destinations"`
	WeightTypes  []Option            `json:"weight_types"`
	WidthUnits   []Option            `json:"width_units"`
	Source       string              `json:"source,omitempty"`
	LoadedAt     time.Time           `json:"loaded_at"`
}

// BuildRateOptions derives form choices from the active rate table. Origins
// are keyed by country; destinations are empty for tables that are not
// destination-aware.
func BuildRateOptions(table *RateTable) RateOptions {
	opts := RateOptions{
		Countries:    []string{},
		Origins:      map[string][]string{},
		Destinations: []string{},
	}
	for _, t := range WeightTypeOptions {
		opts.WeightTypes = append(opts.WeightTypes, Option{Value: string(t), Label: t.Label()})
	}
	for _, u := range WidthUnitOptions {
		opts.WidthUnits = append(opts.WidthUnits, Option{Value: string(u), Label: string(u)})
	}
	if table == nil {
		return opts
	}

	opts.Source = table.Source
	opts.LoadedAt = table.LoadedAt
	opts.Countries = table.Countries()
	for _, c := range opts.Countries {
		opts.Origins[c] = table.Origins(c)
	}
	if d := table.Destinations(); len(d) > 0 {
		opts.Destinations = d
	}
	return opts
}
