package local

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/storage"
)

const (
	statementsFile = "statements.json"
	keyPrefix      = "payStatement_"
)

var keyUnsafeRun = regexp.MustCompile(`[^A-Za-z0-9]+`)

type savedStatement struct {
	Key       string                       `json:"key"`
	Name      string                       `json:"name"`
	SavedAt   time.Time                    `json:"saved_at"`
	PeriodEnd *time.Time                   `json:"period_end,omitempty"`
	Record    statement.PayStatementRecord `json:"statement"`
}

func (s savedStatement) summary() statement.SavedStatementSummary {
	return statement.SavedStatementSummary{
		Key:          s.Key,
		Name:         s.Name,
		SavedAt:      s.SavedAt,
		PayPeriodID:  s.Record.Payment.PayPeriodID,
		PeriodEnd:    s.PeriodEnd,
		ContractorID: s.Record.PaidTo.ContractorID,
		PayeeName:    s.Record.PaidTo.Name,
		TotalPayment: s.Record.TotalPayment,
	}
}

type statementRepository struct {
	mu         sync.RWMutex
	files      storage.FileStorage
	statements map[string]savedStatement
	now        func() time.Time
}

// NewStatementRepository keeps statements in memory and, when files is non-nil,
// mirrors them to a JSON document.
func NewStatementRepository(ctx context.Context, files storage.FileStorage) (statement.StatementRepository, error) {
	r := &statementRepository{
		files:      files,
		statements: make(map[string]savedStatement),
		now:        time.Now,
	}

	var stored []savedStatement
	if _, err := readJSON(ctx, files, statementsFile, &stored); err != nil {
		return nil, err
	}
	for _, s := range stored {
		r.statements[s.Key] = s
	}
	return r, nil
}

// newKey builds "payStatement_<name>_<unix ms>", bumping the timestamp on collision.
func (r *statementRepository) newKey(name string, at time.Time) string {
	slug := strings.Trim(keyUnsafeRun.ReplaceAllString(name, "_"), "_")
	if slug == "" {
		slug = "Untitled"
	}
	ms := at.UnixMilli()
	for {
		key := fmt.Sprintf("%s%s_%d", keyPrefix, slug, ms)
		if _, exists := r.statements[key]; !exists {
			return key
		}
		ms++
	}
}

func (r *statementRepository) snapshot() []savedStatement {
	out := make([]savedStatement, 0, len(r.statements))
	for _, s := range r.statements {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b savedStatement) int {
		return b.SavedAt.Compare(a.SavedAt)
	})
	return out
}

func (r *statementRepository) Save(ctx context.Context, name string, record statement.PayStatementRecord, period payperiod.PayPeriod) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	savedAt := r.now().UTC()
	entry := savedStatement{
		Key:     r.newKey(name, savedAt),
		Name:    name,
		SavedAt: savedAt,
		Record:  record,
	}
	if !period.EndDate.IsZero() {
		end := period.EndDate
		entry.PeriodEnd = &end
	}

	r.statements[entry.Key] = entry
	if err := writeJSON(ctx, r.files, statementsFile, r.snapshot()); err != nil {
		delete(r.statements, entry.Key)
		return "", err
	}
	return entry.Key, nil
}

func (r *statementRepository) Load(ctx context.Context, key string) (statement.PayStatementRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statements[key]
	if !ok {
		return statement.PayStatementRecord{}, statement.ErrStatementNotFound
	}
	record := s.Record
	record.PaymentDetails = slices.Clone(record.PaymentDetails)
	record.Summary = slices.Clone(record.Summary)
	return record, nil
}

func (r *statementRepository) List(ctx context.Context, filter statement.ListFilter) ([]statement.SavedStatementSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]statement.SavedStatementSummary, 0, len(r.statements))
	for _, s := range r.snapshot() {
		summary := s.summary()
		if filter.Matches(summary) {
			out = append(out, summary)
		}
	}
	return out, nil
}

func (r *statementRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.statements[key]
	if !ok {
		return nil
	}
	delete(r.statements, key)
	if err := writeJSON(ctx, r.files, statementsFile, r.snapshot()); err != nil {
		r.statements[key] = s
		return err
	}
	return nil
}
