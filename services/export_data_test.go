package services

import (
	"strings"
	"testing"
	"time"
)

func sampleResults(t *testing.T, role Role) []QuoteResult {
	t.Helper()
	results, err := Evaluate(role, testTable(), []LineItemInput{
		{Supplier: "Acme Mills", Reference: "SQN-100", Country: "China", Origin: "Shanghai",
			WeightValue: 150, WeightType: WeightGSMGrams, Width: 160, WidthUnit: WidthCM},
		{Supplier: "", Reference: "", Country: "India", Origin: "Mumbai",
			WeightValue: 300, WeightType: WeightGLMGrams, Width: 1.5, WidthUnit: WidthM},
		{Supplier: "Nowhere", Reference: "SQN-3", Country: "Peru", Origin: "Lima",
			WeightValue: 100, WeightType: WeightGSMGrams, Width: 1, WidthUnit: WidthM},
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	return results
}

func sampleSummary(t *testing.T, role Role) SummaryData {
	t.Helper()
	viewer := Viewer{Email: "jane.doe@example.com", Role: role}
	return BuildSummary(viewer, testTable(), sampleResults(t, role), time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC))
}

func TestViewer_DisplayName(t *testing.T) {
	tests := []struct {
		viewer Viewer
		want   string
	}{
		{Viewer{Email: "jane.doe@example.com"}, "jane.doe"},
		{Viewer{Email: "jane@example.com", Name: "Jane D"}, "Jane D"},
		{Viewer{}, "User"},
	}
	for _, tt := range tests {
		if got := tt.viewer.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, want %q", tt.viewer, got, tt.want)
		}
	}
}

func TestBuildSummary_Admin(t *testing.T) {
	data := sampleSummary(t, RoleAdmin)

	if data.BatchID == "" {
		t.Error("BatchID should be set")
	}
	if !data.RatesLoadedAt.Equal(testLoadedAt) || data.RateSource != "test" {
		t.Errorf("rate provenance = %q @ %v", data.RateSource, data.RatesLoadedAt)
	}
	if len(data.Items) != 3 {
		t.Fatalf("Items = %d, want 3", len(data.Items))
	}

	headers := data.Headers()
	if len(headers) != 12 || headers[9] != "Weight/m" {
		t.Errorf("admin headers = %v", headers)
	}

	first := data.Items[0].Row
	if first.Width != "160 CM (1.6000 m)" {
		t.Errorf("Width = %q", first.Width)
	}
	if first.WeightPerMeter != "0.240000 kg/m" {
		t.Errorf("WeightPerMeter = %q", first.WeightPerMeter)
	}
	if first.AirRate != "$1.0080" || first.SeaRate != "N/A" {
		t.Errorf("rates = %q / %q", first.AirRate, first.SeaRate)
	}
	if first.User != "jane.doe" {
		t.Errorf("User = %q", first.User)
	}

	second := data.Items[1]
	if second.Row.Weight != "300 GLM (g/m) (200.00 g/m²)" {
		t.Errorf("GLM weight = %q", second.Row.Weight)
	}
	if second.Title != "Item 2: No Supplier - No SQN" {
		t.Errorf("Title = %q", second.Title)
	}
	if cells := data.Cells(second.Row); len(cells) != len(headers) {
		t.Errorf("cells = %d, headers = %d", len(cells), len(headers))
	}
}

func TestBuildSummary_BusinessHidesFigures(t *testing.T) {
	data := sampleSummary(t, RoleBusiness)

	headers := data.Headers()
	for _, h := range headers {
		if h == "Weight/m" {
			t.Error("business headers should not include Weight/m")
		}
	}
	first := data.Items[0].Row
	if first.Width != "160 CM" {
		t.Errorf("Width = %q, want bare input", first.Width)
	}
	if first.WeightPerMeter != "" {
		t.Errorf("WeightPerMeter = %q, want empty", first.WeightPerMeter)
	}
	if w := data.Items[1].Row.Weight; w != "300 GLM (g/m)" {
		t.Errorf("GLM weight = %q, want no converted GSM", w)
	}
	if first.AirRate != "$1.0080" {
		t.Errorf("final rates stay visible, got %q", first.AirRate)
	}
	if cells := data.Cells(first); len(cells) != len(headers) {
		t.Errorf("cells = %d, headers = %d", len(cells), len(headers))
	}
}

func TestItemMessage(t *testing.T) {
	data := sampleSummary(t, RoleBusiness)

	tests := []struct {
		idx  int
		want string
	}{
		{0, "final Air rate is $1.0080. Sea freight is not available."},
		{1, "final Air and Sea rates are"},
		{2, "neither Air nor Sea freight is available for this route."},
	}
	for _, tt := range tests {
		msg := data.Items[tt.idx].Message
		if !strings.Contains(msg, tt.want) {
			t.Errorf("item %d message %q does not contain %q", tt.idx, msg, tt.want)
		}
		if !strings.HasSuffix(msg, ConfirmationNote) {
			t.Errorf("item %d message should end with the confirmation note", tt.idx)
		}
	}

	seaOnly := QuoteResult{Index: 0, FinalSeaRate: ptr(0.5)}
	if msg := ItemMessage(seaOnly); !strings.Contains(msg, "final Sea rate is $0.5000. Air freight is not available.") {
		t.Errorf("sea only message = %q", msg)
	}
}

func TestExplain(t *testing.T) {
	admin := sampleSummary(t, RoleAdmin).Items[1].Explanation
	joined := strings.Join(admin, "\n")
	for _, frag := range []string{
		"Width converted to meters = 1.5000 m.",
		"GLM to GSM conversion: 300 g/m ÷ 1.5000 m = 200.00 g/m².",
		"= 0.300000 kg/m.",
		"Air freight per meter = 4.20 × 0.300000 = 1.260000 USD.",
		"Final Air rate = 1.260000 × markup 1.2 = 1.5120 USD.",
		"CBM per meter = 0.300000 ÷ 166 = ",
		"markup 1.3",
	} {
		if !strings.Contains(joined, frag) {
			t.Errorf("admin explanation missing %q:\n%s", frag, joined)
		}
	}

	business := sampleSummary(t, RoleBusiness).Items[1].Explanation
	if len(business) != 3 {
		t.Errorf("business explanation lines = %d, want 3", len(business))
	}
	for _, line := range business {
		if strings.ContainsAny(line, "0123456789$") {
			t.Errorf("business explanation leaks figures: %q", line)
		}
	}
}

func TestConfirmation(t *testing.T) {
	paras := sampleSummary(t, RoleBusiness).Confirmation()
	if len(paras) != 4 {
		t.Fatalf("Confirmation() = %d paragraphs, want 4", len(paras))
	}
	if paras[0] != "Confirmation for jane.doe (jane.doe@example.com):" {
		t.Errorf("first paragraph = %q", paras[0])
	}
	if !strings.HasSuffix(paras[3], "for jane.doe.") {
		t.Errorf("last paragraph = %q", paras[3])
	}
}

func TestGenerateText(t *testing.T) {
	data := sampleSummary(t, RoleBusiness)
	text := GenerateText(data)

	for _, frag := range []string{
		"Freight Quote " + data.BatchID,
		"Acme Mills",
		"SQN-100",
		"N/A",
		"$1.0080",
		"Please find below the approximate per meter/per piece freight cost",
		"Item 3: Nowhere - SQN-3",
	} {
		if !strings.Contains(text, frag) {
			t.Errorf("text summary missing %q", frag)
		}
	}
	if strings.Contains(text, "Weight/m") || strings.Contains(text, "kg/m") {
		t.Error("business text summary should not show weight per meter")
	}
}
