package statement

import (
	"net/url"
	"strings"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/shopspring/decimal"
)

const (
	hourlySuffix    = " (hourly)"
	hourlyQtySuffix = "hrs"
)

var defaultQuantity = decimal.NewFromInt(1)

// Derive computes the summary lines and grand total for entries. Entries with a blank
// description or a zero amount are skipped; negative amounts are kept as deductions.
// The result is never nil and totals are exact (no rounding).
func Derive(entries []statement.PaymentDetailEntry) ([]statement.SummaryLineItem, decimal.Decimal) {
	summary := make([]statement.SummaryLineItem, 0, len(entries))
	total := decimal.Zero

	for _, e := range entries {
		if !qualifies(e) {
			continue
		}
		payType, qty := resolveMeta(e)

		item := statement.SummaryLineItem{
			Description: e.Description,
			Rate:        e.Amount,
			Quantity:    qty,
			Total:       e.Amount.Mul(qty),
		}
		if payType == statement.PayTypeHourly {
			item.Description += hourlySuffix
			item.QtySuffix = hourlyQtySuffix
		}

		summary = append(summary, item)
		total = total.Add(item.Total)
	}

	return summary, total
}

// Apply rewrites record's derived fields from its payment details.
func Apply(record *statement.PayStatementRecord) {
	record.Summary, record.TotalPayment = Derive(record.PaymentDetails)
}

func qualifies(e statement.PaymentDetailEntry) bool {
	return strings.TrimSpace(e.Description) != "" && !e.Amount.IsZero()
}

// resolveMeta is the single place entry defaults live: pay type perVisit unless
// explicitly hourly, quantity 1 unless a valid non-negative value (zero included)
// was given. Typed meta wins over the legacy notes encoding.
func resolveMeta(e statement.PaymentDetailEntry) (statement.PayType, decimal.Decimal) {
	if e.Meta != nil {
		return normalizePayType(string(e.Meta.PayType)), normalizeQuantity(e.Meta.Quantity)
	}
	if e.Notes != "" {
		return parseLegacyMeta(e.Notes)
	}
	return statement.PayTypePerVisit, defaultQuantity
}

// parseLegacyMeta reads the "type=hourly&qty=2.5" encoding older records keep in notes.
func parseLegacyMeta(notes string) (statement.PayType, decimal.Decimal) {
	values, err := url.ParseQuery(notes)
	if err != nil {
		return statement.PayTypePerVisit, defaultQuantity
	}

	payType := normalizePayType(values.Get("type"))

	raw := strings.TrimSpace(values.Get("qty"))
	if raw == "" {
		return payType, defaultQuantity
	}
	qty, err := decimal.NewFromString(raw)
	if err != nil {
		return payType, defaultQuantity
	}
	return payType, normalizeQuantity(&qty)
}

func normalizePayType(s string) statement.PayType {
	if statement.PayType(s) == statement.PayTypeHourly {
		return statement.PayTypeHourly
	}
	return statement.PayTypePerVisit
}

func normalizeQuantity(q *decimal.Decimal) decimal.Decimal {
	if q == nil || q.IsNegative() {
		return defaultQuantity
	}
	return *q
}
