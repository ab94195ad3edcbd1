package statement

import (
	"fmt"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/shopspring/decimal"
)

// Seed builds the opening record for c in period p: one entry per active building,
// or a single blank placeholder when there are none.
func Seed(company statement.CompanyInfo, c contractor.Contractor, p payperiod.PayPeriod) statement.PayStatementRecord {
	active := c.ActiveBuildings()

	details := make([]statement.PaymentDetailEntry, 0, len(active))
	for _, b := range active {
		one := decimal.NewFromInt(1)
		details = append(details, statement.PaymentDetailEntry{
			Description: b.BuildingName,
			Amount:      b.Rate(),
			Meta:        &statement.LineMeta{PayType: b.EffectivePayType(), Quantity: &one},
		})
	}
	if len(details) == 0 {
		details = append(details, statement.PaymentDetailEntry{})
	}

	record := statement.PayStatementRecord{
		Company: company,
		PaidTo: statement.Payee{
			ContractorID: c.ID,
			Name:         c.Name,
			Address:      statement.Address(c.Address),
		},
		Payment: statement.Payment{
			PayPeriodID: p.ID,
			Method:      string(c.PaymentInfo.Method),
		},
		PaymentDetails: details,
	}
	Apply(&record)
	return record
}

// Assemble composes a derived record from req. The period id must resolve in cal;
// company is used when req carries none.
func Assemble(cal payperiod.Calendar, company statement.CompanyInfo, req statement.AssembleRequest) (statement.PayStatementRecord, payperiod.PayPeriod, error) {
	period, err := cal.GetByID(req.Payment.PayPeriodID)
	if err != nil {
		return statement.PayStatementRecord{}, payperiod.PayPeriod{}, fmt.Errorf("%w: %q", statement.ErrUnresolvedPeriod, req.Payment.PayPeriodID)
	}

	if req.Company != nil {
		company = *req.Company
	}

	details := make([]statement.PaymentDetailEntry, len(req.PaymentDetails))
	copy(details, req.PaymentDetails)

	record := statement.PayStatementRecord{
		Company:        company,
		PaidTo:         req.PaidTo,
		Payment:        req.Payment,
		PaymentDetails: details,
		Notes:          req.Notes,
	}
	Apply(&record)
	return record, period, nil
}

// requestFromRecord turns a record back into an AssembleRequest, dropping derived fields.
func requestFromRecord(r statement.PayStatementRecord) statement.AssembleRequest {
	company := r.Company
	return statement.AssembleRequest{
		Company:        &company,
		PaidTo:         r.PaidTo,
		Payment:        r.Payment,
		PaymentDetails: r.PaymentDetails,
		Notes:          r.Notes,
	}
}
