package export

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	usPrinter = message.NewPrinter(language.AmericanEnglish)
	folder    = cases.Fold()
)

// formatUSD rounds to cents and groups thousands: 1234.5 -> "$1,234.50", -50 -> "-$50.00".
func formatUSD(d decimal.Decimal) string {
	rounded := d.Round(2)
	whole, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	s := "$" + groupThousands(whole) + "." + cents
	if rounded.IsNegative() {
		return "-" + s
	}
	return s
}

// groupThousands inserts US separators into a string of digits.
func groupThousands(digits string) string {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return usPrinter.Sprintf("%d", n)
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quantityLabel is the Qty column: "2.5 hrs", "1 units". Trailing zeros are dropped.
func quantityLabel(qty decimal.Decimal, suffix string) string {
	if suffix == "" {
		suffix = "units"
	}
	return qty.String() + " " + suffix
}

// rateLabel appends the per-unit marker used by the itemized preset.
func rateLabel(rate decimal.Decimal, suffix string, perUnit bool) string {
	s := formatUSD(rate)
	if !perUnit {
		return s
	}
	if suffix == "hrs" {
		return s + " / hr"
	}
	return s + " / unit"
}

const hourlyMarker = " (hourly)"

// plainDescription removes the hourly marker appended during derivation.
func plainDescription(s string) string {
	if len(s) >= len(hourlyMarker) && strings.EqualFold(s[len(s)-len(hourlyMarker):], hourlyMarker) {
		return strings.TrimRight(s[:len(s)-len(hourlyMarker)], " ")
	}
	return s
}

func foldKey(s string) string {
	return folder.String(s)
}
