package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// RatesCollection stores the last successfully loaded rate table, one record
// per mode and route.
const RatesCollection = "freight_rates"

// RecordStore persists rate table snapshots in PocketBase so quotes keep
// working when the upstream workbook is unreachable.
type RecordStore struct {
	App core.App
}

func (s *RecordStore) Name() string { return "snapshot" }

// Fetch loads the stored snapshot. It returns ErrNoRateTable when nothing has
// been stored yet.
func (s *RecordStore) Fetch(ctx context.Context) (*RateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := s.App.FindAllRecords(RatesCollection)
	if err != nil {
		return nil, fmt.Errorf("load rate snapshot: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoRateTable
	}

	entries := make([]RateEntry, 0, len(records))
	var source string
	var loadedAt time.Time
	for _, rec := range records {
		entries = append(entries, RateEntry{
			Mode: Mode(rec.GetString("mode")),
			Route: Route{
				Country:     rec.GetString("country"),
				Origin:      rec.GetString("origin"),
				Destination: rec.GetString("destination"),
			},
			Rate: rec.GetFloat("rate"),
		})
		if t := rec.GetDateTime("loaded_at").Time(); t.After(loadedAt) {
			loadedAt = t
			source = rec.GetString("source")
		}
	}
	return NewRateTable(entries, source, loadedAt), nil
}

// Save replaces the stored snapshot with table in a single transaction.
func (s *RecordStore) Save(ctx context.Context, table *RateTable) error {
	col, err := s.App.FindCollectionByNameOrId(RatesCollection)
	if err != nil {
		return fmt.Errorf("find %s collection: %w", RatesCollection, err)
	}

	return s.App.RunInTransaction(func(txApp core.App) error {
		if _, err := txApp.DB().Delete(RatesCollection, nil).Execute(); err != nil {
			return fmt.Errorf("clear rate snapshot: %w", err)
		}
		for _, e := range table.Entries() {
			rec := core.NewRecord(col)
			rec.Set("mode", string(e.Mode))
			rec.Set("country", e.Country)
			rec.Set("origin", e.Origin)
			rec.Set("destination", e.Destination)
			rec.Set("rate", e.Rate)
			rec.Set("source", table.Source)
			rec.Set("loaded_at", table.LoadedAt)
			if err := txApp.SaveWithContext(ctx, rec); err != nil {
				return fmt.Errorf("save rate %s %s/%s: %w", e.Mode, e.Country, e.Origin, err)
			}
		}
		return nil
	})
}

// CountRoutes returns how many stored routes the mode serves.
func CountRoutes(app core.App, mode Mode) (int64, error) {
	return app.CountRecords(RatesCollection, dbx.HashExp{"mode": string(mode)})
}
