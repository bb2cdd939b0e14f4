package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"freightcalc/services"
)

func previewData(t *testing.T, role services.Role, supplier string) services.SummaryData {
	t.Helper()
	table := services.NewRateTable([]services.RateEntry{
		{Mode: services.ModeAir, Route: services.Route{Country: "China", Origin: "Shanghai"}, Rate: 3.5},
	}, "test", time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))

	results, err := services.Evaluate(role, table, []services.LineItemInput{{
		Supplier: supplier, Reference: "SQN-1", Country: "China", Origin: "Shanghai",
		WeightValue: 150, WeightType: services.WeightGSMGrams, Width: 160, WidthUnit: services.WidthCM,
	}})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	viewer := services.Viewer{Email: "sam@example.com", Role: role}
	return services.BuildSummary(viewer, table, results, time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC))
}

func render(t *testing.T, data services.SummaryData) string {
	t.Helper()
	var buf bytes.Buffer
	if err := QuotePreview(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestQuotePreview_Admin(t *testing.T) {
	html := render(t, previewData(t, services.RoleAdmin, "Acme"))

	for _, frag := range []string{
		"<th", "Weight/m", "$1.0080", "Sea freight not available for this route",
		"Confirmation for sam (sam@example.com):", "How These Charges Were Calculated",
		"Final Air rate = ",
	} {
		if !strings.Contains(html, frag) {
			t.Errorf("admin preview missing %q", frag)
		}
	}
}

func TestQuotePreview_BusinessHidesWeightPerMeter(t *testing.T) {
	html := render(t, previewData(t, services.RoleBusiness, "Acme"))
	if strings.Contains(html, "Weight/m") {
		t.Error("business preview should not include Weight/m")
	}
	if !strings.Contains(html, "$1.0080") {
		t.Error("business preview should include the final air rate")
	}
}

func TestQuotePreview_EscapesInput(t *testing.T) {
	html := render(t, previewData(t, services.RoleBusiness, "<script>alert(1)</script>"))
	if strings.Contains(html, "<script>") {
		t.Error("supplier should be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped supplier not found")
	}
}

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestModeBlock(t *testing.T) {
	rate := 1.344

	tests := []struct {
		name    string
		mode    string
		rate    *float64
		want    string
		wantCls string
	}{
		{"available", "Air", &rate, "<p>Final Rate: $1.3440</p>", `class="mode"`},
		{"unavailable", "Sea", nil, "<p>Sea freight not available for this route</p>", `class="mode unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := renderComponent(t, modeBlock(tt.mode, tt.rate))
			if !strings.Contains(html, "<h3>"+tt.mode+" Freight</h3>") {
				t.Errorf("missing heading in %q", html)
			}
			if !strings.Contains(html, tt.want) {
				t.Errorf("html = %q, want it to contain %q", html, tt.want)
			}
			if !strings.Contains(html, tt.wantCls) {
				t.Errorf("html = %q, want class %q", html, tt.wantCls)
			}
		})
	}
}

func TestItemDetails_OnlyFirstItemOpen(t *testing.T) {
	first := services.ItemSummary{Title: "Item 1", Result: services.QuoteResult{Index: 0}}
	second := services.ItemSummary{Title: "Item 2", Result: services.QuoteResult{Index: 1}}

	if html := renderComponent(t, itemDetails(first)); !strings.HasPrefix(html, `<details class="item" open>`) {
		t.Errorf("first item should start expanded, got %q", html)
	}
	if html := renderComponent(t, itemDetails(second)); !strings.HasPrefix(html, `<details class="item">`) {
		t.Errorf("second item should start collapsed, got %q", html)
	}
}
