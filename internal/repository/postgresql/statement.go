package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type statementRepository struct {
	db *database.DB
}

func NewStatementRepository(db *database.DB) statement.StatementRepository {
	return &statementRepository{db: db}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func (r *statementRepository) Save(ctx context.Context, name string, record statement.PayStatementRecord, period payperiod.PayPeriod) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate statement id: %w", err)
	}
	key := id.String()

	companyJSON, err := json.Marshal(record.Company)
	if err != nil {
		return "", fmt.Errorf("failed to encode company: %w", err)
	}
	paidToJSON, err := json.Marshal(record.PaidTo)
	if err != nil {
		return "", fmt.Errorf("failed to encode payee: %w", err)
	}

	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO pay_statements (
				id, name, contractor_id, payee_name, pay_period_id, period_start, period_end,
				payment_method, company, paid_to, total_payment, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			key, name, nullableString(record.PaidTo.ContractorID), record.PaidTo.Name, record.Payment.PayPeriodID,
			nullableDate(period.StartDate), nullableDate(period.EndDate),
			record.Payment.Method, companyJSON, paidToJSON, record.TotalPayment, nullableString(record.Notes),
		)
		if err != nil {
			return fmt.Errorf("failed to insert pay statement: %w", err)
		}

		for i, d := range record.PaymentDetails {
			var payType *string
			var quantity *decimal.Decimal
			if d.Meta != nil {
				pt := string(d.Meta.PayType)
				payType = &pt
				quantity = d.Meta.Quantity
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO pay_statement_items (statement_id, position, description, amount, pay_type, quantity, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, key, i, d.Description, d.Amount, payType, quantity, nullableString(d.Notes))
			if err != nil {
				return fmt.Errorf("failed to insert pay statement item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Load returns the stored payment details; callers re-derive the summary.
func (r *statementRepository) Load(ctx context.Context, key string) (statement.PayStatementRecord, error) {
	q := GetQuerier(ctx, r.db)

	var rec statement.PayStatementRecord
	var companyBytes, paidToBytes []byte
	var notes *string

	err := q.QueryRow(ctx, `
		SELECT pay_period_id, payment_method, company, paid_to, total_payment, notes
		FROM pay_statements
		WHERE id = $1
	`, key).Scan(&rec.Payment.PayPeriodID, &rec.Payment.Method, &companyBytes, &paidToBytes, &rec.TotalPayment, &notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return statement.PayStatementRecord{}, statement.ErrStatementNotFound
		}
		return statement.PayStatementRecord{}, fmt.Errorf("failed to get pay statement: %w", err)
	}
	if err := json.Unmarshal(companyBytes, &rec.Company); err != nil {
		return statement.PayStatementRecord{}, fmt.Errorf("failed to decode company of pay statement %s: %w", key, err)
	}
	if err := json.Unmarshal(paidToBytes, &rec.PaidTo); err != nil {
		return statement.PayStatementRecord{}, fmt.Errorf("failed to decode payee of pay statement %s: %w", key, err)
	}
	if notes != nil {
		rec.Notes = *notes
	}

	rows, err := q.Query(ctx, `
		SELECT description, amount, pay_type, quantity, notes
		FROM pay_statement_items
		WHERE statement_id = $1
		ORDER BY position
	`, key)
	if err != nil {
		return statement.PayStatementRecord{}, fmt.Errorf("failed to get pay statement items: %w", err)
	}
	defer rows.Close()

	rec.PaymentDetails = []statement.PaymentDetailEntry{}
	for rows.Next() {
		var d statement.PaymentDetailEntry
		var payType, itemNotes *string
		var quantity *decimal.Decimal
		if err := rows.Scan(&d.Description, &d.Amount, &payType, &quantity, &itemNotes); err != nil {
			return statement.PayStatementRecord{}, fmt.Errorf("failed to scan pay statement item: %w", err)
		}
		if payType != nil {
			d.Meta = &statement.LineMeta{PayType: statement.PayType(*payType), Quantity: quantity}
		}
		if itemNotes != nil {
			d.Notes = *itemNotes
		}
		rec.PaymentDetails = append(rec.PaymentDetails, d)
	}
	if err := rows.Err(); err != nil {
		return statement.PayStatementRecord{}, fmt.Errorf("failed to iterate pay statement items: %w", err)
	}

	return rec, nil
}

func (r *statementRepository) List(ctx context.Context, filter statement.ListFilter) ([]statement.SavedStatementSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, pay_period_id, period_end, COALESCE(contractor_id, ''), payee_name, total_payment
		FROM pay_statements
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.ContractorID != "" {
		if filter.PayeeName != "" {
			query += fmt.Sprintf(" AND (contractor_id = $%d OR (contractor_id IS NULL AND payee_name ILIKE $%d))", argIdx, argIdx+1)
			args = append(args, filter.ContractorID, "%"+filter.PayeeName+"%")
			argIdx += 2
		} else {
			query += fmt.Sprintf(" AND contractor_id = $%d", argIdx)
			args = append(args, filter.ContractorID)
			argIdx++
		}
	} else if filter.PayeeName != "" {
		query += fmt.Sprintf(" AND payee_name ILIKE $%d", argIdx)
		args = append(args, "%"+filter.PayeeName+"%")
		argIdx++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND COALESCE(period_end, created_at::date) >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND COALESCE(period_end, created_at::date) <= $%d", argIdx)
		args = append(args, *filter.To)
		argIdx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay statements: %w", err)
	}
	defer rows.Close()

	summaries := []statement.SavedStatementSummary{}
	for rows.Next() {
		var s statement.SavedStatementSummary
		if err := rows.Scan(&s.Key, &s.Name, &s.SavedAt, &s.PayPeriodID, &s.PeriodEnd, &s.ContractorID, &s.PayeeName, &s.TotalPayment); err != nil {
			return nil, fmt.Errorf("failed to scan pay statement: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pay statements: %w", err)
	}
	return summaries, nil
}

func (r *statementRepository) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM pay_statements WHERE id = $1`, key); err != nil {
		return fmt.Errorf("failed to delete pay statement: %w", err)
	}
	return nil
}
