package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates a landscape PDF of the quote summary using maroto/v2.
// It returns the raw PDF bytes or an error.
func GeneratePDF(data SummaryData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, data)
	addTableHeader(m, data)
	for _, item := range data.Items {
		addTableRow(m, data, item.Row)
	}
	addConfirmation(m, data)
	for _, item := range data.Items {
		addItemDetails(m, item)
	}
	addFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, data SummaryData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Freight Quote", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	grey := &props.Color{Red: 80, Green: 80, Blue: 80}
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s", data.BatchID), props.Text{
					Size: 9, Align: align.Left, Color: grey,
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Prepared for: %s (%s)", data.Viewer.DisplayName(), data.Viewer.Role), props.Text{
					Size: 9, Align: align.Right, Color: grey,
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

// columnSizes spreads the table over the 12-column grid. Business tables
// have one column fewer, so Weight gets the spare width.
func columnSizes(data SummaryData) []int {
	if data.Viewer.Role == RoleAdmin {
		// Item User Supplier SQN Country Origin Dest Weight Width W/m Air Sea
		return []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	}
	return []int{1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1}
}

func addTableHeader(m core.Maroto, data SummaryData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	sizes := columnSizes(data)
	r := row.New(8)
	for i, h := range data.Headers() {
		r.Add(col.New(sizes[i]).Add(text.New(h, headerText)).WithStyle(&headerCell))
	}
	m.AddRows(r)
}

func addTableRow(m core.Maroto, data SummaryData, sr SummaryRow) {
	cellText := props.Text{Size: 6, Align: align.Center}
	sizes := columnSizes(data)
	r := row.New(12)
	for i, v := range data.Cells(sr) {
		r.Add(col.New(sizes[i]).Add(text.New(v, cellText)))
	}
	m.AddRows(r)
}

func addConfirmation(m core.Maroto, data SummaryData) {
	m.AddRows(row.New(6))

	noteCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	for i, p := range data.Confirmation() {
		style := props.Text{Size: 8, Align: align.Left}
		height := 10.0
		if i == 0 {
			style.Style = fontstyle.Bold
			height = 6
		}
		m.AddRows(
			row.New(height).Add(
				col.New(12).Add(text.New(p, style)).WithStyle(noteCell),
			),
		)
	}
}

func addItemDetails(m core.Maroto, item ItemSummary) {
	m.AddRows(row.New(4))
	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(text.New(item.Title, props.Text{
				Size: 9, Style: fontstyle.Bold, Align: align.Left,
			})),
		),
		row.New(10).Add(
			col.New(12).Add(text.New(item.Message, props.Text{Size: 8, Align: align.Left})),
		),
	)
	for _, line := range item.Explanation {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(line, props.Text{Size: 7, Align: align.Left})),
			),
		)
	}
}

func addFooter(m core.Maroto, data SummaryData) {
	m.AddRows(row.New(6))
	footer := fmt.Sprintf("Generated on %s", data.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if !data.RatesLoadedAt.IsZero() {
		footer += fmt.Sprintf(" using rates loaded %s", data.RatesLoadedAt.Format("2006-01-02 15:04 MST"))
	}
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(footer, props.Text{
					Size:  7,
					Align: align.Left,
					Color: &props.Color{Red: 140, Green: 140, Blue: 140},
				}),
			),
		),
	)
}
