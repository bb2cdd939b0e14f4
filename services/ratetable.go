package services

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Mode is a freight transport mode.
type Mode string

const (
	ModeAir Mode = "air"
	ModeSea Mode = "sea"
)

// Modes lists every transport mode in display order.
var Modes = []Mode{ModeAir, ModeSea}

// Label returns "Air" or "Sea".
func (m Mode) Label() string {
	switch m {
	case ModeAir:
		return "Air"
	case ModeSea:
		return "Sea"
	}
	return string(m)
}

// Route identifies a served lane. Destination is empty in tables that are not
// destination-keyed.
type Route struct {
	Country     string `json:"country"`
	Origin      string `json:"origin"`
	Destination string `json:"destination,omitempty"`
}

// RateEntry is one base rate for one mode on one route.
type RateEntry struct {
	Mode Mode `json:"mode"`
	Route
	Rate float64 `json:"rate"`
}

// routeRates is country -> origin -> destination -> rate.
type routeRates map[string]map[string]map[string]float64

// RateTable maps routes to base freight rates, independently for air
// (currency per kg) and sea (currency per CBM). A table is never mutated
// after NewRateTable returns it.
type RateTable struct {
	air routeRates
	sea routeRates
	// byDestination is set per mode; air and sea sheets are keyed
	// independently.
	byDestination map[Mode]bool

	// Source names where the table came from, e.g. a workbook URL.
	Source   string
	LoadedAt time.Time
}

// NewRateTable builds a table from entries. Entries with a non-positive or
// non-finite rate are dropped since they describe a route that is not served.
// Later duplicates replace earlier ones.
func NewRateTable(entries []RateEntry, source string, loadedAt time.Time) *RateTable {
	t := &RateTable{
		air:           routeRates{},
		sea:           routeRates{},
		byDestination: map[Mode]bool{},
		Source:        source,
		LoadedAt:      loadedAt,
	}
	for _, e := range entries {
		if e.Rate <= 0 || math.IsNaN(e.Rate) || math.IsInf(e.Rate, 0) {
			continue
		}
		routes := t.routes(e.Mode)
		if routes == nil {
			continue
		}
		country := strings.TrimSpace(e.Country)
		origin := strings.TrimSpace(e.Origin)
		dest := strings.TrimSpace(e.Destination)
		if country == "" || origin == "" {
			continue
		}
		if routes[country] == nil {
			routes[country] = map[string]map[string]float64{}
		}
		if routes[country][origin] == nil {
			routes[country][origin] = map[string]float64{}
		}
		routes[country][origin][dest] = e.Rate
		if dest != "" {
			t.byDestination[e.Mode] = true
		}
	}
	return t
}

func (t *RateTable) routes(mode Mode) routeRates {
	switch mode {
	case ModeAir:
		return t.air
	case ModeSea:
		return t.sea
	}
	return nil
}

// DestinationAware reports whether either mode keys its routes by
// destination.
func (t *RateTable) DestinationAware() bool {
	return t.ModeDestinationAware(ModeAir) || t.ModeDestinationAware(ModeSea)
}

// ModeDestinationAware reports whether the mode's routes are keyed by
// destination.
func (t *RateTable) ModeDestinationAware(mode Mode) bool {
	return t != nil && t.byDestination[mode]
}

// Lookup returns the base rate for a route. A missing key at any level means
// the route is not served and yields ok == false. Destination is ignored when
// the mode is not destination-aware.
func (t *RateTable) Lookup(mode Mode, country, origin, destination string) (rate float64, ok bool) {
	if t == nil {
		return 0, false
	}
	origins, ok := t.routes(mode)[strings.TrimSpace(country)]
	if !ok {
		return 0, false
	}
	dests, ok := origins[strings.TrimSpace(origin)]
	if !ok {
		return 0, false
	}
	if !t.byDestination[mode] {
		destination = ""
	}
	rate, ok = dests[strings.TrimSpace(destination)]
	return rate, ok
}

// RouteCount returns how many routes the mode serves.
func (t *RateTable) RouteCount(mode Mode) int {
	if t == nil {
		return 0
	}
	n := 0
	for _, origins := range t.routes(mode) {
		for _, dests := range origins {
			n += len(dests)
		}
	}
	return n
}

// Empty reports whether neither mode serves any route.
func (t *RateTable) Empty() bool {
	return t.RouteCount(ModeAir) == 0 && t.RouteCount(ModeSea) == 0
}

// Countries returns the sorted union of countries across both modes.
func (t *RateTable) Countries() []string {
	if t == nil {
		return nil
	}
	set := map[string]bool{}
	for _, mode := range Modes {
		for c := range t.routes(mode) {
			set[c] = true
		}
	}
	return sortedKeys(set)
}

// Origins returns the sorted union of origins for a country across both modes.
func (t *RateTable) Origins(country string) []string {
	if t == nil {
		return nil
	}
	set := map[string]bool{}
	for _, mode := range Modes {
		for o := range t.routes(mode)[country] {
			set[o] = true
		}
	}
	return sortedKeys(set)
}

// Destinations returns the sorted union of destinations. It is empty for a
// table that is not destination-aware.
func (t *RateTable) Destinations() []string {
	if t == nil {
		return nil
	}
	set := map[string]bool{}
	for _, mode := range Modes {
		for _, origins := range t.routes(mode) {
			for _, dests := range origins {
				for d := range dests {
					if d != "" {
						set[d] = true
					}
				}
			}
		}
	}
	return sortedKeys(set)
}

// Entries flattens the table in a stable order (mode, country, origin,
// destination).
func (t *RateTable) Entries() []RateEntry {
	if t == nil {
		return nil
	}
	var out []RateEntry
	for _, mode := range Modes {
		routes := t.routes(mode)
		for _, c := range sortedKeys(routes) {
			for _, o := range sortedKeys(routes[c]) {
				for _, d := range sortedKeys(routes[c][o]) {
					out = append(out, RateEntry{
						Mode:  mode,
						Route: Route{Country: c, Origin: o, Destination: d},
						Rate:  routes[c][o][d],
					})
				}
			}
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
