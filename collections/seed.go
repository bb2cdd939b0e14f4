package collections

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// DemoRateSource labels the seeded demo rates.
const DemoRateSource = "demo"

type rateDef struct {
	mode        string
	country     string
	origin      string
	destination string
	rate        float64
}

// demoRates is a small destination-less table, enough to quote from a fresh
// install before a real rate workbook is configured.
var demoRates = []rateDef{
	{"air", "China", "Shanghai", "", 3.5},
	{"air", "China", "Shenzhen", "", 3.8},
	{"air", "India", "Mumbai", "", 4.2},
	{"air", "Turkey", "Istanbul", "", 2.9},
	{"sea", "China", "Shanghai", "", 72},
	{"sea", "India", "Mumbai", "", 85},
	{"sea", "Turkey", "Istanbul", "", 110},
}

// SeedDemoRates inserts the demo rate table when freight_rates is empty.
// It returns the number of records inserted.
func SeedDemoRates(app core.App) (int, error) {
	ratesCol, err := app.FindCollectionByNameOrId("freight_rates")
	if err != nil {
		return 0, fmt.Errorf("seed: could not find freight_rates collection: %w", err)
	}

	// ── idempotency: skip if any rate is already stored ────────────
	total, err := app.CountRecords(ratesCol)
	if err != nil {
		return 0, fmt.Errorf("seed: could not count freight_rates: %w", err)
	}
	if total > 0 {
		return 0, nil
	}

	zap.L().Info("seed: freight_rates is empty, inserting demo rates", zap.Int("routes", len(demoRates)))

	loadedAt := time.Now().UTC()
	err = app.RunInTransaction(func(txApp core.App) error {
		for _, d := range demoRates {
			r := core.NewRecord(ratesCol)
			r.Set("mode", d.mode)
			r.Set("country", d.country)
			r.Set("origin", d.origin)
			r.Set("destination", d.destination)
			r.Set("rate", d.rate)
			r.Set("source", DemoRateSource)
			r.Set("loaded_at", loadedAt)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: %s rate %s/%s: %w", d.mode, d.country, d.origin, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(demoRates), nil
}
