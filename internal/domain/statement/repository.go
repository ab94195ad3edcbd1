package statement

import (
	"context"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
)

// StatementRepository persists assembled statements. Save receives the resolved
// period so backends can index by period dates.
type StatementRepository interface {
	Save(ctx context.Context, name string, record PayStatementRecord, period payperiod.PayPeriod) (string, error)
	Load(ctx context.Context, key string) (PayStatementRecord, error)
	List(ctx context.Context, filter ListFilter) ([]SavedStatementSummary, error)
	Delete(ctx context.Context, key string) error
}
