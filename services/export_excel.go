package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Freight Quote"
	detailsSheet = "Calculations"
)

// GenerateExcel creates an Excel workbook from the quote summary and returns
// the file contents as a byte slice. The first sheet holds the summary table
// and confirmation; the second holds per-item messages and calculations.
func GenerateExcel(data SummaryData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, summarySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(detailsSheet); err != nil {
		return nil, fmt.Errorf("create details sheet: %w", err)
	}

	headers := data.Headers()
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}

	widths := map[string]float64{
		"Item": 6, "User": 14, "Supplier": 18, "SQN": 12, "Country": 12, "Origin": 12,
		"Destination": 12, "Weight": 28, "Width": 22, "Weight/m": 16, "Air Rate": 12, "Sea Rate": 12,
	}
	for i, h := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(summarySheet, colName, colName, widths[h]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", colName, err)
		}
	}
	if err := f.SetColWidth(detailsSheet, "A", "A", 120); err != nil {
		return nil, fmt.Errorf("set details width: %w", err)
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Border:    thinBorders(),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	wrapStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, fmt.Errorf("create wrap style: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}

	// ── Header Rows (1-3) ───────────────────────────────────────────────

	if err := f.MergeCell(summarySheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(summarySheet, "A1", "Freight Quote")
	f.SetCellStyle(summarySheet, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(summarySheet, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge ref: %w", err)
	}
	f.SetCellValue(summarySheet, "A2", fmt.Sprintf("Ref: %s  |  Prepared for: %s (%s)",
		data.BatchID, sanitizeExcelCell(data.Viewer.DisplayName()), data.Viewer.Role))
	f.SetCellStyle(summarySheet, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(summarySheet, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(summarySheet, "A3", "Date: "+data.GeneratedAt.Format("2006-01-02 15:04 MST"))
	f.SetCellStyle(summarySheet, "A3", lastCol+"3", subtitleStyle)

	// ── Row 5: Column Headers ───────────────────────────────────────────

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 5)
		f.SetCellValue(summarySheet, cell, h)
	}
	f.SetCellStyle(summarySheet, "A5", lastCol+"5", headerStyle)

	// ── Data Rows (starting row 6) ──────────────────────────────────────

	row := 6
	for _, item := range data.Items {
		for i, v := range data.Cells(item.Row) {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(summarySheet, cell, sanitizeExcelCell(v))
		}
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), rowStyle)
		row++
	}

	// ── Confirmation ────────────────────────────────────────────────────

	row++
	for i, p := range data.Confirmation() {
		start := fmt.Sprintf("A%d", row)
		end := fmt.Sprintf("%s%d", lastCol, row)
		if err := f.MergeCell(summarySheet, start, end); err != nil {
			return nil, fmt.Errorf("merge confirmation: %w", err)
		}
		f.SetCellValue(summarySheet, start, sanitizeExcelCell(p))
		style := wrapStyle
		if i == 0 {
			style = boldStyle
		}
		f.SetCellStyle(summarySheet, start, end, style)
		row++
	}

	// ── Calculations sheet ──────────────────────────────────────────────

	row = 1
	for _, item := range data.Items {
		cell := fmt.Sprintf("A%d", row)
		f.SetCellValue(detailsSheet, cell, sanitizeExcelCell(item.Title))
		f.SetCellStyle(detailsSheet, cell, cell, boldStyle)
		row++

		cell = fmt.Sprintf("A%d", row)
		f.SetCellValue(detailsSheet, cell, sanitizeExcelCell(item.Message))
		f.SetCellStyle(detailsSheet, cell, cell, wrapStyle)
		row++

		for _, line := range item.Explanation {
			f.SetCellValue(detailsSheet, fmt.Sprintf("A%d", row), sanitizeExcelCell(line))
			row++
		}
		row++
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
