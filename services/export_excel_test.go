package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_Admin(t *testing.T) {
	data := sampleSummary(t, RoleAdmin)

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("failed to open generated Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Freight Quote" || sheets[1] != "Calculations" {
		t.Fatalf("sheets = %v", sheets)
	}

	title, _ := f.GetCellValue("Freight Quote", "A1")
	if title != "Freight Quote" {
		t.Errorf("A1 = %q", title)
	}

	expectedHeaders := map[string]string{
		"A5": "Item", "B5": "User", "D5": "SQN", "J5": "Weight/m", "K5": "Air Rate", "L5": "Sea Rate",
	}
	for cell, want := range expectedHeaders {
		got, _ := f.GetCellValue("Freight Quote", cell)
		if got != want {
			t.Errorf("header %s = %q, want %q", cell, got, want)
		}
	}

	air, _ := f.GetCellValue("Freight Quote", "K6")
	sea, _ := f.GetCellValue("Freight Quote", "L6")
	if air != "$1.0080" || sea != "N/A" {
		t.Errorf("row 6 rates = %q / %q", air, sea)
	}

	rows, err := f.GetRows("Calculations")
	if err != nil {
		t.Fatalf("GetRows(Calculations) error = %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "Item 1: Acme Mills - SQN-100" {
		t.Errorf("calculations first row = %v", rows)
	}
}

func TestGenerateExcel_BusinessColumns(t *testing.T) {
	result, err := GenerateExcel(sampleSummary(t, RoleBusiness))
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("failed to open generated Excel: %v", err)
	}
	defer f.Close()

	j5, _ := f.GetCellValue("Freight Quote", "J5")
	l5, _ := f.GetCellValue("Freight Quote", "L5")
	if j5 != "Air Rate" || l5 != "" {
		t.Errorf("business headers J5=%q L5=%q, want Air Rate and empty", j5, l5)
	}
}

func TestGenerateExcel_FormulaInjection(t *testing.T) {
	results := sampleResults(t, RoleBusiness)
	results[0].Supplier = "=HYPERLINK(\"http://evil\")"
	data := BuildSummary(Viewer{Email: "a@b.c", Role: RoleBusiness}, testTable(), results, testLoadedAt)

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("failed to open generated Excel: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue("Freight Quote", "C6")
	if got != "'=HYPERLINK(\"http://evil\")" {
		t.Errorf("supplier cell = %q, want quoted", got)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"normal", "normal"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
