package services

import (
	"testing"
)

func TestGeneratePDF_Roles(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleBusiness} {
		t.Run(string(role), func(t *testing.T) {
			result, err := GeneratePDF(sampleSummary(t, role))
			if err != nil {
				t.Fatalf("GeneratePDF() error = %v", err)
			}
			if len(result) == 0 {
				t.Fatal("GeneratePDF() returned empty bytes")
			}
			// PDF files start with %PDF
			if len(result) > 4 && string(result[:5]) != "%PDF-" {
				t.Errorf("result does not start with PDF header, got %q", string(result[:5]))
			}
		})
	}
}

func TestGeneratePDF_NoRateProvenance(t *testing.T) {
	data := BuildSummary(Viewer{Email: "ops@example.com", Role: RoleBusiness}, nil, nil, testLoadedAt)

	result, err := GeneratePDF(data)
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GeneratePDF() returned empty bytes")
	}
}

func TestColumnSizes(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleBusiness} {
		data := SummaryData{Viewer: Viewer{Role: role}}
		sizes := columnSizes(data)
		if len(sizes) != len(data.Headers()) {
			t.Errorf("%s: %d sizes for %d headers", role, len(sizes), len(data.Headers()))
		}
		total := 0
		for _, s := range sizes {
			total += s
		}
		if total != 12 {
			t.Errorf("%s: sizes sum to %d, want 12", role, total)
		}
	}
}
