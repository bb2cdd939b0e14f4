package collections_test

import (
	"testing"

	"freightcalc/collections"
	"freightcalc/testhelpers"
)

func TestSeedDemoRates_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	n, err := collections.SeedDemoRates(app)
	if err != nil {
		t.Fatalf("SeedDemoRates() error: %v", err)
	}
	if n == 0 {
		t.Fatal("expected demo rates to be inserted")
	}

	records, err := app.FindAllRecords("freight_rates")
	if err != nil {
		t.Fatalf("query freight_rates error: %v", err)
	}
	if len(records) != n {
		t.Errorf("stored %d records, SeedDemoRates reported %d", len(records), n)
	}

	var air, sea int
	for _, r := range records {
		switch r.GetString("mode") {
		case "air":
			air++
		case "sea":
			sea++
		default:
			t.Errorf("unexpected mode %q", r.GetString("mode"))
		}
		if r.GetFloat("rate") <= 0 {
			t.Errorf("%s/%s: rate %v should be positive", r.GetString("country"), r.GetString("origin"), r.GetFloat("rate"))
		}
		if r.GetString("source") != collections.DemoRateSource {
			t.Errorf("source = %q, want %q", r.GetString("source"), collections.DemoRateSource)
		}
		if r.GetDateTime("loaded_at").IsZero() {
			t.Error("loaded_at should be set")
		}
	}
	if air == 0 || sea == 0 {
		t.Errorf("expected both modes, got air=%d sea=%d", air, sea)
	}
}

func TestSeedDemoRates_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	first, err := collections.SeedDemoRates(app)
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := collections.SeedDemoRates(app)
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}
	if second != 0 {
		t.Errorf("second run inserted %d records, want 0", second)
	}

	total, _ := app.CountRecords("freight_rates")
	if int(total) != first {
		t.Errorf("expected %d records after two runs, got %d", first, total)
	}
}
