package services

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// GenerateText renders the summary as plain text suitable for pasting into
// an email.
func GenerateText(data SummaryData) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Freight Quote %s\n", data.BatchID)
	fmt.Fprintf(&b, "Generated: %s\n", data.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if !data.RatesLoadedAt.IsZero() {
		fmt.Fprintf(&b, "Rates as of: %s\n", data.RatesLoadedAt.Format("2006-01-02 15:04 MST"))
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(data.Headers(), "\t"))
	for _, item := range data.Items {
		fmt.Fprintln(tw, strings.Join(data.Cells(item.Row), "\t"))
	}
	tw.Flush()

	b.WriteString("\n")
	for _, p := range data.Confirmation() {
		b.WriteString(p)
		b.WriteString("\n")
	}

	for _, item := range data.Items {
		fmt.Fprintf(&b, "\n%s\n", item.Title)
		b.WriteString(item.Message)
		b.WriteString("\n")
		for _, line := range item.Explanation {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
