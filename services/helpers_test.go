package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

var testLoadedAt = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

// testTable serves China/Shanghai by air only and India/Mumbai by air and sea.
func testTable() *RateTable {
	return NewRateTable([]RateEntry{
		{Mode: ModeAir, Route: Route{Country: "China", Origin: "Shanghai"}, Rate: 3.50},
		{Mode: ModeAir, Route: Route{Country: "India", Origin: "Mumbai"}, Rate: 4.20},
		{Mode: ModeSea, Route: Route{Country: "India", Origin: "Mumbai"}, Rate: 85},
	}, "test", testLoadedAt)
}

// buildWorkbook writes sheets (name -> rows) to an in-memory xlsx file.
// The default sheet is removed unless it is listed.
func buildWorkbook(t *testing.T, sheets map[string][][]any, order ...string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	keepDefault := false
	for _, name := range order {
		if name == defaultSheet {
			keepDefault = true
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("NewSheet(%q) error = %v", name, err)
		}
		for r, row := range sheets[name] {
			for c, v := range row {
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				if err := f.SetCellValue(name, cell, v); err != nil {
					t.Fatalf("SetCellValue(%s!%s) error = %v", name, cell, err)
				}
			}
		}
	}
	if !keepDefault {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			t.Fatalf("DeleteSheet error = %v", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func ptr(v float64) *float64 { return &v }
