package statement

import (
	"testing"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func qty(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func entry(desc, amount string, meta *statement.LineMeta) statement.PaymentDetailEntry {
	return statement.PaymentDetailEntry{Description: desc, Amount: dec(amount), Meta: meta}
}

func TestDerive_FiltersBlankAndZeroEntries(t *testing.T) {
	entries := []statement.PaymentDetailEntry{
		entry("Building A", "85.00", &statement.LineMeta{PayType: statement.PayTypePerVisit, Quantity: qty("4")}),
		entry("", "50", nil),
		entry("Building B", "0", &statement.LineMeta{PayType: statement.PayTypeHourly, Quantity: qty("3")}),
	}

	summary, total := Derive(entries)

	require.Len(t, summary, 1)
	assert.Equal(t, "Building A", summary[0].Description)
	assert.True(t, summary[0].Rate.Equal(dec("85")))
	assert.True(t, summary[0].Quantity.Equal(dec("4")))
	assert.True(t, summary[0].Total.Equal(dec("340.00")))
	assert.Empty(t, summary[0].QtySuffix)
	assert.True(t, total.Equal(dec("340.00")))
}

func TestDerive_HourlyEntry(t *testing.T) {
	entries := []statement.PaymentDetailEntry{
		entry("Office", "20.00", &statement.LineMeta{PayType: statement.PayTypeHourly, Quantity: qty("2.5")}),
	}

	summary, total := Derive(entries)

	require.Len(t, summary, 1)
	assert.Equal(t, "Office (hourly)", summary[0].Description)
	assert.Equal(t, "hrs", summary[0].QtySuffix)
	assert.True(t, summary[0].Quantity.Equal(dec("2.5")))
	assert.True(t, summary[0].Total.Equal(dec("50.00")))
	assert.True(t, total.Equal(dec("50")))
}

func TestDerive_IsIdempotent(t *testing.T) {
	entries := []statement.PaymentDetailEntry{
		entry("Tech Campus North", "100", nil),
		entry("Office", "19.75", &statement.LineMeta{PayType: statement.PayTypeHourly, Quantity: qty("3.25")}),
		entry("Supplies refund", "-12.40", nil),
	}

	s1, t1 := Derive(entries)
	s2, t2 := Derive(entries)

	assert.Equal(t, s1, s2)
	assert.True(t, t1.Equal(t2))
}

func TestDerive_FilterCorrectness(t *testing.T) {
	tests := []struct {
		name     string
		entry    statement.PaymentDetailEntry
		included bool
	}{
		{"empty description", entry("", "100", nil), false},
		{"whitespace description", entry("   \t", "100", nil), false},
		{"zero amount", entry("Retail Plaza", "0", nil), false},
		{"zero amount with decimals", entry("Retail Plaza", "0.00", nil), false},
		{"negative amount kept", entry("Advance repayment", "-50", nil), true},
		{"zero quantity kept", entry("Retail Plaza", "75", &statement.LineMeta{Quantity: qty("0")}), true},
		{"regular line", entry("Retail Plaza", "75", nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, _ := Derive([]statement.PaymentDetailEntry{tt.entry})
			if tt.included {
				assert.Len(t, summary, 1)
			} else {
				assert.Empty(t, summary)
			}
		})
	}
}

func TestDerive_TotalMatchesSummary(t *testing.T) {
	entries := []statement.PaymentDetailEntry{
		entry("A", "0.10", &statement.LineMeta{Quantity: qty("3")}),
		entry("B", "0.20", nil),
		entry("C", "33.33", &statement.LineMeta{PayType: statement.PayTypeHourly, Quantity: qty("0.25")}),
		entry("D", "-5", nil),
	}

	summary, total := Derive(entries)

	sum := decimal.Zero
	for _, item := range summary {
		sum = sum.Add(item.Total)
	}
	assert.True(t, total.Equal(sum))
	assert.Equal(t, sum.Round(2).String(), total.Round(2).String())
	assert.True(t, total.Equal(dec("3.8325")), "got %s", total)
}

func TestDerive_EmptyInputGivesEmptySummary(t *testing.T) {
	summary, total := Derive(nil)

	assert.NotNil(t, summary)
	assert.Empty(t, summary)
	assert.True(t, total.IsZero())
}

func TestDerive_NegativeLineIsDeduction(t *testing.T) {
	summary, total := Derive([]statement.PaymentDetailEntry{
		entry("Corporate Center", "120", &statement.LineMeta{Quantity: qty("2")}),
		entry("Uniform deduction", "-50", nil),
	})

	require.Len(t, summary, 2)
	assert.True(t, summary[1].Total.Equal(dec("-50")))
	assert.True(t, total.Equal(dec("190")))
}

func TestResolveMeta(t *testing.T) {
	tests := []struct {
		name        string
		entry       statement.PaymentDetailEntry
		wantPayType statement.PayType
		wantQty     string
	}{
		{"no meta", statement.PaymentDetailEntry{}, statement.PayTypePerVisit, "1"},
		{"typed meta nil quantity", statement.PaymentDetailEntry{Meta: &statement.LineMeta{PayType: statement.PayTypeHourly}}, statement.PayTypeHourly, "1"},
		{"typed meta zero quantity", statement.PaymentDetailEntry{Meta: &statement.LineMeta{Quantity: qty("0")}}, statement.PayTypePerVisit, "0"},
		{"typed meta negative quantity", statement.PaymentDetailEntry{Meta: &statement.LineMeta{Quantity: qty("-2")}}, statement.PayTypePerVisit, "1"},
		{"unknown pay type", statement.PaymentDetailEntry{Meta: &statement.LineMeta{PayType: "weekly"}}, statement.PayTypePerVisit, "1"},
		{"legacy hourly", statement.PaymentDetailEntry{Notes: "type=hourly&qty=2.5"}, statement.PayTypeHourly, "2.5"},
		{"legacy zero qty", statement.PaymentDetailEntry{Notes: "type=perVisit&qty=0"}, statement.PayTypePerVisit, "0"},
		{"legacy invalid qty", statement.PaymentDetailEntry{Notes: "type=hourly&qty=abc"}, statement.PayTypeHourly, "1"},
		{"legacy empty qty", statement.PaymentDetailEntry{Notes: "type=hourly&qty="}, statement.PayTypeHourly, "1"},
		{"legacy negative qty", statement.PaymentDetailEntry{Notes: "qty=-3"}, statement.PayTypePerVisit, "1"},
		{"free text notes", statement.PaymentDetailEntry{Notes: "paid early"}, statement.PayTypePerVisit, "1"},
		{
			"typed meta wins over notes",
			statement.PaymentDetailEntry{Notes: "type=hourly&qty=8", Meta: &statement.LineMeta{PayType: statement.PayTypePerVisit, Quantity: qty("2")}},
			statement.PayTypePerVisit, "2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payType, q := resolveMeta(tt.entry)
			assert.Equal(t, tt.wantPayType, payType)
			assert.True(t, q.Equal(dec(tt.wantQty)), "quantity = %s, want %s", q, tt.wantQty)
		})
	}
}
