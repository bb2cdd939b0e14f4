package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Viewer is the signed-in user a summary is addressed to.
type Viewer struct {
	Email string
	Name  string
	Role  Role
}

// DisplayName returns the viewer's name, falling back to the local part of
// the email address.
func (v Viewer) DisplayName() string {
	if name := strings.TrimSpace(v.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(v.Email, "@")
	if local == "" {
		return "User"
	}
	return local
}

// SummaryRow is one formatted line of the quote summary table.
type SummaryRow struct {
	Item           string
	User           string
	Supplier       string
	Reference      string
	Country        string
	Origin         string
	Destination    string
	Weight         string
	Width          string
	WeightPerMeter string // empty when withheld from the viewer
	AirRate        string
	SeaRate        string
}

// ItemSummary carries the formatted output for one quoted line item.
type ItemSummary struct {
	Title       string
	Row         SummaryRow
	Message     string
	Explanation []string
	Result      QuoteResult
}

// SummaryData holds everything the text, HTML, Excel and PDF renderers need.
type SummaryData struct {
	BatchID       string
	Viewer        Viewer
	GeneratedAt   time.Time
	RateSource    string
	RatesLoadedAt time.Time
	Items         []ItemSummary
}

// ConfirmationNote is appended to every per-item message.
const ConfirmationNote = "These outputs are calculated and confirmed by Logistics."

// BuildSummary formats evaluated quotes for the viewer. Figures the viewer's
// role does not expose are absent from results and therefore never rendered.
func BuildSummary(viewer Viewer, table *RateTable, results []QuoteResult, now time.Time) SummaryData {
	data := SummaryData{
		BatchID:     uuid.NewString(),
		Viewer:      viewer,
		GeneratedAt: now.UTC(),
		Items:       make([]ItemSummary, 0, len(results)),
	}
	if table != nil {
		data.RateSource = table.Source
		data.RatesLoadedAt = table.LoadedAt
	}
	for _, r := range results {
		data.Items = append(data.Items, ItemSummary{
			Title:       itemTitle(r),
			Row:         summaryRow(viewer, r),
			Message:     ItemMessage(r),
			Explanation: Explain(viewer.Role, r),
			Result:      r,
		})
	}
	return data
}

// Headers returns the summary table column headers for a role. Business
// viewers do not get the weight per meter column.
func (d SummaryData) Headers() []string {
	headers := []string{"Item", "User", "Supplier", "SQN", "Country", "Origin", "Destination", "Weight", "Width"}
	if d.Viewer.Role == RoleAdmin {
		headers = append(headers, "Weight/m")
	}
	return append(headers, "Air Rate", "Sea Rate")
}

// Cells returns the row values in Headers order.
func (d SummaryData) Cells(r SummaryRow) []string {
	cells := []string{r.Item, r.User, r.Supplier, r.Reference, r.Country, r.Origin, r.Destination, r.Weight, r.Width}
	if d.Viewer.Role == RoleAdmin {
		cells = append(cells, r.WeightPerMeter)
	}
	return append(cells, r.AirRate, r.SeaRate)
}

// Confirmation returns the paragraphs shown below the summary table.
func (d SummaryData) Confirmation() []string {
	name := d.Viewer.DisplayName()
	return []string{
		fmt.Sprintf("Confirmation for %s (%s):", name, d.Viewer.Email),
		"Please find below the approximate per meter/per piece freight cost based on your request.",
		"Kindly note that these costs have been calculated using the material details provided by your team, " +
			"along with the current market freight rates. However, please be aware that these rates are subject " +
			"to change and may vary from the actual costs due to high volatility in the freight market.",
		fmt.Sprintf("These outputs are calculated and confirmed by Logistics for %s.", name),
	}
}

func itemTitle(r QuoteResult) string {
	supplier := r.Supplier
	if supplier == "" {
		supplier = "No Supplier"
	}
	ref := r.Reference
	if ref == "" {
		ref = "No SQN"
	}
	return fmt.Sprintf("%s: %s - %s", r.Label(), supplier, ref)
}

func summaryRow(viewer Viewer, r QuoteResult) SummaryRow {
	row := SummaryRow{
		Item:        fmt.Sprintf("%d", r.Index+1),
		User:        viewer.DisplayName(),
		Supplier:    r.Supplier,
		Reference:   r.Reference,
		Country:     r.Country,
		Origin:      r.Origin,
		Destination: r.Destination,
		Weight:      weightDisplay(r),
		Width:       fmt.Sprintf("%s %s", FormatNumber(r.Width), r.WidthUnit),
		AirRate:     FormatRate(r.FinalAirRate),
		SeaRate:     FormatRate(r.FinalSeaRate),
	}
	if r.WidthMeters != nil {
		row.Width += fmt.Sprintf(" (%s m)", formatFixed(*r.WidthMeters, 4))
	}
	if r.WeightPerMeterKg != nil {
		row.WeightPerMeter = fmt.Sprintf("%s kg/m", formatFixed(*r.WeightPerMeterKg, 6))
	}
	return row
}

func weightDisplay(r QuoteResult) string {
	s := fmt.Sprintf("%s %s", FormatNumber(r.WeightValue), r.WeightType.Label())
	if r.ConvertedGSM != nil {
		s += fmt.Sprintf(" (%s g/m²)", formatFixed(*r.ConvertedGSM, 2))
	}
	return s
}

// ItemMessage is the one-paragraph confirmation for a quoted item.
func ItemMessage(r QuoteResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: With inputs weight: %s %s, width: %s %s, origin: %s - %s",
		r.Label(), FormatNumber(r.WeightValue), r.WeightType.Label(),
		FormatNumber(r.Width), r.WidthUnit, r.Country, r.Origin)
	if r.Destination != "" {
		fmt.Fprintf(&b, ", destination: %s", r.Destination)
	}
	b.WriteString("; ")

	switch {
	case r.FinalAirRate != nil && r.FinalSeaRate != nil:
		fmt.Fprintf(&b, "final Air and Sea rates are %s and %s respectively.",
			FormatRate(r.FinalAirRate), FormatRate(r.FinalSeaRate))
	case r.FinalAirRate != nil:
		fmt.Fprintf(&b, "final Air rate is %s. Sea freight is not available.", FormatRate(r.FinalAirRate))
	case r.FinalSeaRate != nil:
		fmt.Fprintf(&b, "final Sea rate is %s. Air freight is not available.", FormatRate(r.FinalSeaRate))
	default:
		b.WriteString("neither Air nor Sea freight is available for this route.")
	}
	b.WriteString(" " + ConfirmationNote)
	return b.String()
}

// Explain lists how an item's charges were calculated. Admin viewers get
// every intermediate figure; Business viewers get the method only.
func Explain(role Role, r QuoteResult) []string {
	if role != RoleAdmin {
		lines := []string{"• Width is converted to meters and multiplied by the fabric weight to get kg per running meter."}
		if r.FinalAirRate != nil {
			lines = append(lines, "• Air freight = (Air base rate × kg per meter) adjusted to final selling rate.")
		}
		if r.FinalSeaRate != nil {
			lines = append(lines, "• Sea freight = (CBM per meter × Sea base rate) adjusted to final selling rate.")
		}
		return lines
	}

	var lines []string
	if r.WidthMeters != nil {
		lines = append(lines, fmt.Sprintf("• Width converted to meters = %s m.", formatFixed(*r.WidthMeters, 4)))
	}
	if r.ConvertedGSM != nil && r.WidthMeters != nil {
		lines = append(lines, fmt.Sprintf("• GLM to GSM conversion: %s g/m ÷ %s m = %s g/m².",
			FormatNumber(r.WeightValue), formatFixed(*r.WidthMeters, 4), formatFixed(*r.ConvertedGSM, 2)))
	}
	if r.WeightPerMeterKg != nil {
		lines = append(lines, fmt.Sprintf("• Fabric weight per running meter = GSM × width = %s kg/m.",
			formatFixed(*r.WeightPerMeterKg, 6)))
	}
	if r.AirRate != nil && r.AirFreightPerMeter != nil && r.FinalAirRate != nil {
		lines = append(lines,
			fmt.Sprintf("• Air freight per meter = %s × %s = %s USD.",
				formatFixed(*r.AirRate, 2), formatFixed(*r.WeightPerMeterKg, 6), formatFixed(*r.AirFreightPerMeter, 6)),
			fmt.Sprintf("• Final Air rate = %s × markup %s = %s USD.",
				formatFixed(*r.AirFreightPerMeter, 6), FormatNumber(AirMarkup), formatFixed(*r.FinalAirRate, 4)),
		)
	}
	if r.SeaRate != nil && r.CBMPerMeter != nil && r.SeaFreightPerMeter != nil && r.FinalSeaRate != nil {
		lines = append(lines,
			fmt.Sprintf("• CBM per meter = %s ÷ %s = %s.",
				formatFixed(*r.WeightPerMeterKg, 6), FormatNumber(KgPerCBM), formatFixed(*r.CBMPerMeter, 8)),
			fmt.Sprintf("• Sea freight per meter = %s × %s = %s USD.",
				formatFixed(*r.SeaRate, 2), formatFixed(*r.CBMPerMeter, 8), formatFixed(*r.SeaFreightPerMeter, 6)),
			fmt.Sprintf("• Final Sea rate = %s × markup %s = %s USD.",
				formatFixed(*r.SeaFreightPerMeter, 6), FormatNumber(SeaMarkup), formatFixed(*r.FinalSeaRate, 4)),
		)
	}
	return lines
}
