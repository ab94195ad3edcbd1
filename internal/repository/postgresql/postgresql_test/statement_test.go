package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/repository/postgresql"
	statementsvc "github.com/element-cleaning/paystatement-backend-go/internal/service/statement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod(id, start string) payperiod.PayPeriod {
	s, _ := time.Parse(payperiod.DateLayout, start)
	return payperiod.PayPeriod{ID: id, StartDate: s, EndDate: s.AddDate(0, 0, 13)}
}

func TestStatementRepository_SaveLoadListDelete(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStatementRepository(setup.DB)

	hours := decimal.RequireFromString("2.5")
	record := statement.PayStatementRecord{
		Company: statement.CompanyInfo{Name: "Element Cleaning"},
		PaidTo:  statement.Payee{ContractorID: "contractor-006", Name: "Luis Lopez"},
		Payment: statement.Payment{PayPeriodID: "pp-001", Method: "Direct Deposit"},
		PaymentDetails: []statement.PaymentDetailEntry{
			{Description: "Shopping Center East", Amount: decimal.NewFromInt(85)},
			{Description: "Office", Amount: decimal.NewFromInt(20), Meta: &statement.LineMeta{PayType: statement.PayTypeHourly, Quantity: &hours}},
			{Description: "Legacy", Amount: decimal.NewFromInt(10), Notes: "type=hourly&qty=2"},
		},
		TotalPayment: decimal.NewFromInt(155),
		Notes:        "thanks",
	}

	key, err := repo.Save(ctx, "Luis Lopez", record, testPeriod("pp-001", "2025-08-18"))
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "pp-001", loaded.Payment.PayPeriodID)
	assert.Equal(t, "Element Cleaning", loaded.Company.Name)
	assert.Equal(t, "contractor-006", loaded.PaidTo.ContractorID)
	assert.Equal(t, "thanks", loaded.Notes)
	require.Len(t, loaded.PaymentDetails, 3)
	assert.Nil(t, loaded.PaymentDetails[0].Meta)
	require.NotNil(t, loaded.PaymentDetails[1].Meta)
	assert.Equal(t, statement.PayTypeHourly, loaded.PaymentDetails[1].Meta.PayType)
	assert.True(t, loaded.PaymentDetails[1].Meta.Quantity.Equal(hours))
	assert.Equal(t, "type=hourly&qty=2", loaded.PaymentDetails[2].Notes)

	legacy := record
	legacy.PaidTo = statement.Payee{Name: "Luis Lopez"}
	_, err = repo.Save(ctx, "legacy", legacy, testPeriod("pp-002", "2025-09-01"))
	require.NoError(t, err)

	rows, err := repo.List(ctx, statement.ListFilter{ContractorID: "contractor-006", PayeeName: "luis"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "legacy", rows[0].Name)
	assert.Equal(t, "2025-09-14", rows[0].PeriodEnd.Format(payperiod.DateLayout))

	to, _ := time.Parse(payperiod.DateLayout, "2025-09-01")
	rows, err = repo.List(ctx, statement.ListFilter{To: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, key, rows[0].Key)

	require.NoError(t, repo.Delete(ctx, key))
	_, err = repo.Load(ctx, key)
	assert.ErrorIs(t, err, statement.ErrStatementNotFound)
}

func TestStatementRepository_FractionalValuesKeepTotal(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStatementRepository(setup.DB)

	visits := decimal.RequireFromString("0.125")
	hours := decimal.RequireFromString("1.333")
	record := statement.PayStatementRecord{
		PaidTo:  statement.Payee{ContractorID: "contractor-006", Name: "Luis Lopez"},
		Payment: statement.Payment{PayPeriodID: "pp-001", Method: "Direct Deposit"},
		PaymentDetails: []statement.PaymentDetailEntry{
			{Description: "Shopping Center East", Amount: decimal.RequireFromString("85.005"), Meta: &statement.LineMeta{PayType: statement.PayTypePerVisit, Quantity: &visits}},
			{Description: "Deep clean", Amount: decimal.RequireFromString("22.50"), Meta: &statement.LineMeta{PayType: statement.PayTypeHourly, Quantity: &hours}},
		},
	}
	statementsvc.Apply(&record)

	key, err := repo.Save(ctx, "fractional", record, testPeriod("pp-001", "2025-08-18"))
	require.NoError(t, err)

	loaded, err := repo.Load(ctx, key)
	require.NoError(t, err)
	require.Len(t, loaded.PaymentDetails, 2)
	assert.True(t, loaded.PaymentDetails[0].Meta.Quantity.Equal(visits))
	assert.True(t, loaded.PaymentDetails[0].Amount.Equal(decimal.RequireFromString("85.005")))
	stored := loaded.TotalPayment
	statementsvc.Apply(&loaded)

	rows, err := repo.List(ctx, statement.ListFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, stored.Equal(record.TotalPayment), "stored %s, derived %s", stored, record.TotalPayment)
	assert.True(t, loaded.TotalPayment.Equal(rows[0].TotalPayment), "reloaded %s, listed %s", loaded.TotalPayment, rows[0].TotalPayment)
}

func TestStatementRepository_LoadRejectsCorruptBlocks(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewStatementRepository(setup.DB)

	record := statement.PayStatementRecord{
		Company: statement.CompanyInfo{Name: "Element Cleaning"},
		PaidTo:  statement.Payee{Name: "Luis Lopez"},
		Payment: statement.Payment{PayPeriodID: "pp-001"},
	}

	tests := []struct {
		name   string
		column string
	}{
		{"payee", "paid_to"},
		{"company", "company"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := repo.Save(ctx, tt.name, record, testPeriod("pp-001", "2025-08-18"))
			require.NoError(t, err)

			_, err = setup.DB.Exec(ctx, `UPDATE pay_statements SET `+tt.column+` = '[]'::jsonb WHERE id = $1`, key)
			require.NoError(t, err)

			_, err = repo.Load(ctx, key)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to decode "+tt.name)
			assert.NotErrorIs(t, err, statement.ErrStatementNotFound)
		})
	}
}
