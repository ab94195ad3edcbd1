package export

import (
	"fmt"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/gocarina/gocsv"
)

type csvLine struct {
	Description string `csv:"description"`
	Rate        string `csv:"rate"`
	Quantity    string `csv:"quantity"`
	Unit        string `csv:"unit"`
	Total       string `csv:"total"`
}

// renderCSV writes one row per summary line followed by a total row. Amounts are
// plain decimals rounded to cents so spreadsheets parse them as numbers.
func renderCSV(doc statement.Document) ([]byte, error) {
	lines := summaryLines(doc)
	rows := make([]csvLine, 0, len(lines)+1)
	for _, item := range lines {
		unit := item.QtySuffix
		if unit == "" {
			unit = "units"
		}
		rows = append(rows, csvLine{
			Description: item.Description,
			Rate:        item.Rate.StringFixed(2),
			Quantity:    item.Quantity.String(),
			Unit:        unit,
			Total:       item.Total.StringFixed(2),
		})
	}
	rows = append(rows, csvLine{Description: "Total", Total: doc.Record.TotalPayment.StringFixed(2)})

	content, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return content, nil
}
