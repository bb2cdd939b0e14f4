package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// Sheet name prefixes of rate sheets. The text after " - " is the destination,
// e.g. "Air Freight - UK".
const (
	AirSheetPrefix = "Air Freight"
	SeaSheetPrefix = "Sea Freight"
)

// ImportResult is returned after parsing a rate workbook.
type ImportResult struct {
	Table    *RateTable
	Sheets   int
	Warnings []ValidationError
}

// ParseRateWorkbook reads every "Air Freight*" and "Sea Freight*" sheet of an
// xlsx workbook into a RateTable. Each sheet needs a header row with Country
// and Origin columns; the last header column holds the most recently updated
// rate. Cells that are blank or not a positive number mean the route is not
// served and are reported as warnings, not errors.
func ParseRateWorkbook(r io.Reader, source string) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate workbook: %w", err)
	}
	defer f.Close()

	result := &ImportResult{}
	var entries []RateEntry

	for _, sheet := range f.GetSheetList() {
		mode, destination, ok := sheetMode(sheet)
		if !ok {
			continue
		}
		result.Sheets++

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Sheet: sheet, Row: 1, Field: "header", Message: "sheet is empty",
			})
			continue
		}

		cols, err := mapRateHeaders(rows[0])
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}

		for rowIdx, row := range rows[1:] {
			rowNum := rowIdx + 2 // 1-indexed, +1 for header row
			country := cellAt(row, cols.country)
			origin := cellAt(row, cols.origin)
			rateCell := cellAt(row, cols.rate)

			if country == "" && origin == "" && rateCell == "" {
				continue
			}
			if country == "" || origin == "" {
				result.Warnings = append(result.Warnings, ValidationError{
					Sheet: sheet, Row: rowNum, Field: "Country/Origin",
					Message: "country and origin are required",
				})
				continue
			}

			rate, err := parseRateCell(rateCell)
			if err != nil {
				result.Warnings = append(result.Warnings, ValidationError{
					Sheet: sheet, Row: rowNum, Field: cols.rateHeader,
					Message: fmt.Sprintf("%s / %s not served: %v", country, origin, err),
				})
				continue
			}

			entries = append(entries, RateEntry{
				Mode:  mode,
				Route: Route{Country: country, Origin: origin, Destination: destination},
				Rate:  rate,
			})
		}
	}

	if result.Sheets == 0 {
		return nil, fmt.Errorf("workbook has no %q or %q sheets", AirSheetPrefix, SeaSheetPrefix)
	}

	result.Table = NewRateTable(entries, source, time.Now().UTC())
	return result, nil
}

// sheetMode classifies a sheet name and extracts its destination.
func sheetMode(name string) (Mode, string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, p := range []struct {
		prefix string
		mode   Mode
	}{
		{AirSheetPrefix, ModeAir},
		{SeaSheetPrefix, ModeSea},
	} {
		if !strings.HasPrefix(strings.ToLower(trimmed), strings.ToLower(p.prefix)) {
			continue
		}
		rest := strings.TrimSpace(trimmed[len(p.prefix):])
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
		return p.mode, rest, true
	}
	return "", "", false
}

type rateColumns struct {
	country    int
	origin     int
	rate       int
	rateHeader string
}

// mapRateHeaders locates the Country and Origin columns and picks the last
// non-empty header as the rate column.
func mapRateHeaders(headers []string) (rateColumns, error) {
	cols := rateColumns{country: -1, origin: -1, rate: -1}
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		switch norm {
		case "country":
			cols.country = i
		case "origin":
			cols.origin = i
		}
		if norm != "" {
			cols.rate = i
			cols.rateHeader = strings.TrimSpace(h)
		}
	}
	if cols.country < 0 || cols.origin < 0 {
		return cols, fmt.Errorf("header row must contain Country and Origin columns")
	}
	if cols.rate == cols.country || cols.rate == cols.origin {
		return cols, fmt.Errorf("header row has no rate column after Country and Origin")
	}
	return cols, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRateCell accepts plain and currency-formatted numbers ("3.5", "$1,250.00").
func parseRateCell(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("no rate")
	}
	rate, err := cast.ToFloat64E(cleaned)
	if err != nil {
		return 0, fmt.Errorf("rate %q is not a number", s)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("rate %q is not positive", s)
	}
	return rate, nil
}
