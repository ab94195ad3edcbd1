package statement

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PayType string

const (
	PayTypePerVisit PayType = "perVisit"
	PayTypeHourly   PayType = "hourly"
)

// LineMeta carries how an entry is billed. A nil Quantity means "one unit".
type LineMeta struct {
	PayType  PayType          `json:"pay_type"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
}

// PaymentDetailEntry is one user-editable line. Amount is the signed rate per unit;
// Notes may hold the legacy query-string meta ("type=hourly&qty=2.5") for records
// written before Meta existed.
type PaymentDetailEntry struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Meta        *LineMeta       `json:"meta,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// SummaryLineItem is derived from a PaymentDetailEntry and never edited directly.
type SummaryLineItem struct {
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Quantity    decimal.Decimal `json:"quantity"`
	QtySuffix   string          `json:"qty_suffix,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

type CompanyInfo struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
	Phone   string  `json:"phone"`
}

type Payee struct {
	ContractorID string  `json:"contractor_id,omitempty"`
	Name         string  `json:"name"`
	Address      Address `json:"address"`
}

type Payment struct {
	PayPeriodID string `json:"pay_period_id"`
	Method      string `json:"method"`
}

// PayStatementRecord is the unit that gets previewed, exported, persisted and uploaded.
// TotalPayment always equals the sum of Summary totals.
type PayStatementRecord struct {
	Company        CompanyInfo          `json:"company"`
	PaidTo         Payee                `json:"paid_to"`
	Payment        Payment              `json:"payment"`
	PaymentDetails []PaymentDetailEntry `json:"payment_details"`
	Summary        []SummaryLineItem    `json:"summary"`
	TotalPayment   decimal.Decimal      `json:"total_payment"`
	Notes          string               `json:"notes,omitempty"`
}

// SummaryTotal sums the line totals without rounding.
func (r PayStatementRecord) SummaryTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Summary {
		total = total.Add(item.Total)
	}
	return total
}

// SavedStatementSummary is one row of the saved-statements listing.
type SavedStatementSummary struct {
	Key          string          `json:"key"`
	Name         string          `json:"name"`
	SavedAt      time.Time       `json:"saved_at"`
	PayPeriodID  string          `json:"pay_period_id"`
	PeriodEnd    *time.Time      `json:"period_end,omitempty"`
	ContractorID string          `json:"contractor_id,omitempty"`
	PayeeName    string          `json:"payee_name"`
	TotalPayment decimal.Decimal `json:"total_payment"`
}

// FilterDate is the date used by ListFilter ranges: the period end when known,
// otherwise the save date.
func (s SavedStatementSummary) FilterDate() time.Time {
	if s.PeriodEnd != nil {
		return *s.PeriodEnd
	}
	return time.Date(s.SavedAt.Year(), s.SavedAt.Month(), s.SavedAt.Day(), 0, 0, 0, 0, time.UTC)
}

// ListFilter narrows saved statements. Zero values match everything; From/To are
// inclusive civil dates.
type ListFilter struct {
	ContractorID string
	PayeeName    string
	From         *time.Time
	To           *time.Time
}

// Matches reports whether s passes the filter. ContractorID matches either the stored
// contractor id or, for records without one, a case-insensitive payee name match.
func (f ListFilter) Matches(s SavedStatementSummary) bool {
	if f.ContractorID != "" && s.ContractorID != f.ContractorID {
		if s.ContractorID != "" || f.PayeeName == "" || !containsFold(s.PayeeName, f.PayeeName) {
			return false
		}
	}
	if f.ContractorID == "" && f.PayeeName != "" && !containsFold(s.PayeeName, f.PayeeName) {
		return false
	}
	day := s.FilterDate()
	if f.From != nil && day.Before(*f.From) {
		return false
	}
	if f.To != nil && day.After(*f.To) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
