package export

import (
	"fmt"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Statements"

var registerHeaders = []string{"Key", "Name", "Saved", "Pay Period", "Period End", "Payee", "Total"}

// renderRegister builds a workbook with one row per saved statement and a SUM row.
func renderRegister(rows []statement.SavedStatementSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", registerSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(registerSheet, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(registerSheet, "A1", "G1", bold); err != nil {
		return nil, err
	}

	for i, row := range rows {
		r := i + 2
		total, _ := row.TotalPayment.Round(2).Float64()
		periodEnd := ""
		if row.PeriodEnd != nil {
			periodEnd = row.PeriodEnd.Format("2006-01-02")
		}
		values := []any{row.Key, row.Name, row.SavedAt.Format("2006-01-02 15:04"), row.PayPeriodID, periodEnd, row.PayeeName, total}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r)
			if err := f.SetCellValue(registerSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	totalRow := len(rows) + 2
	labelCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	sumCell, _ := excelize.CoordinatesToCellName(7, totalRow)
	if err := f.SetCellValue(registerSheet, labelCell, "Total"); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := f.SetCellFormula(registerSheet, sumCell, fmt.Sprintf("SUM(G2:G%d)", totalRow-1)); err != nil {
			return nil, err
		}
	} else if err := f.SetCellValue(registerSheet, sumCell, 0); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(registerSheet, "G2", sumCell, money); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(registerSheet, labelCell, labelCell, bold); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(registerSheet, "A", "A", 38)
	_ = f.SetColWidth(registerSheet, "B", "B", 24)
	_ = f.SetColWidth(registerSheet, "C", "E", 16)
	_ = f.SetColWidth(registerSheet, "F", "F", 24)
	_ = f.SetColWidth(registerSheet, "G", "G", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
