package services

import (
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable is shown in place of a rate for a route that is not served.
const NotAvailable = "N/A"

// FormatUSD formats an amount in dollars with thousands separators and the
// given number of decimal places, e.g. FormatUSD(1234.5, 2) = "$1,234.50".
func FormatUSD(amount float64, places int) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := strconv.FormatFloat(amount, 'f', places, 64)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := "$" + applyThousandsGrouping(intPart)
	if decPart != "" {
		result += "." + decPart
	}
	if negative {
		result = "-" + result
	}
	return result
}

// FormatRate formats a final per-meter rate to 4 decimals, or NotAvailable
// when the rate is absent. An absent rate is never shown as zero.
func FormatRate(rate *float64) string {
	if rate == nil {
		return NotAvailable
	}
	return FormatUSD(*rate, 4)
}

// FormatNumber prints v with the fewest digits that round-trip, so inputs are
// echoed the way the user typed them (150, 2.5, 0.24).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFixed prints v with exactly the given number of decimals.
func formatFixed(v float64, places int) string {
	return fmt.Sprintf("%.*f", places, v)
}

// applyThousandsGrouping inserts a comma between every group of three digits
// counted from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
