package statement

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/google/uuid"
)

// draftStore holds in-progress statements for the lifetime of the process.
type draftStore struct {
	mu     sync.Mutex
	drafts map[string]*statement.Draft
}

func newDraftStore() *draftStore {
	return &draftStore{drafts: make(map[string]*statement.Draft)}
}

func cloneDraft(d *statement.Draft) statement.Draft {
	out := *d
	out.SavedKeys = slices.Clone(d.SavedKeys)
	out.Record.PaymentDetails = slices.Clone(d.Record.PaymentDetails)
	out.Record.Summary = slices.Clone(d.Record.Summary)
	return out
}

// CreateDraft implements statement.StatementService. Without a contractor the draft
// starts Empty with a single blank line in the default period.
func (s *StatementServiceImpl) CreateDraft(ctx context.Context, req statement.CreateDraftRequest) (statement.Draft, error) {
	period, err := s.resolvePeriod(req.PayPeriodID)
	if err != nil {
		return statement.Draft{}, err
	}

	now := s.now()
	d := &statement.Draft{
		ID:        uuid.NewString(),
		State:     statement.DraftEmpty,
		SavedKeys: []string{},
		UpdatedAt: now,
	}

	if req.ContractorID == "" {
		d.Record = statement.PayStatementRecord{
			Company:        s.company,
			Payment:        statement.Payment{PayPeriodID: period.ID},
			PaymentDetails: []statement.PaymentDetailEntry{{}},
		}
		Apply(&d.Record)
	} else {
		c, err := s.contractorRepo.GetByID(ctx, req.ContractorID)
		if err != nil {
			return statement.Draft{}, collaboratorErr(statement.CollaboratorDirectory, err)
		}
		d.Record = Seed(s.company, c, period)
		if err := d.Transition(statement.DraftSeeded, now); err != nil {
			return statement.Draft{}, err
		}
	}

	s.drafts.mu.Lock()
	s.drafts.drafts[d.ID] = d
	s.drafts.mu.Unlock()

	return cloneDraft(d), nil
}

// GetDraft implements statement.StatementService.
func (s *StatementServiceImpl) GetDraft(ctx context.Context, id string) (statement.Draft, error) {
	s.drafts.mu.Lock()
	defer s.drafts.mu.Unlock()

	d, ok := s.drafts.drafts[id]
	if !ok {
		return statement.Draft{}, statement.ErrDraftNotFound
	}
	return cloneDraft(d), nil
}

// UpdateDraft implements statement.StatementService. Every edit re-derives the record.
func (s *StatementServiceImpl) UpdateDraft(ctx context.Context, id string, req statement.AssembleRequest) (statement.Draft, error) {
	record, _, err := Assemble(s.calendar, s.company, req)
	if err != nil {
		return statement.Draft{}, err
	}

	s.drafts.mu.Lock()
	defer s.drafts.mu.Unlock()

	d, ok := s.drafts.drafts[id]
	if !ok {
		return statement.Draft{}, statement.ErrDraftNotFound
	}
	if err := d.Transition(statement.DraftEditing, s.now()); err != nil {
		return statement.Draft{}, err
	}
	d.Record = record
	return cloneDraft(d), nil
}

// PreviewDraft implements statement.StatementService.
func (s *StatementServiceImpl) PreviewDraft(ctx context.Context, id string) (statement.Draft, error) {
	s.drafts.mu.Lock()
	defer s.drafts.mu.Unlock()

	d, ok := s.drafts.drafts[id]
	if !ok {
		return statement.Draft{}, statement.ErrDraftNotFound
	}
	if err := d.Transition(statement.DraftPreviewing, s.now()); err != nil {
		return statement.Draft{}, err
	}
	return cloneDraft(d), nil
}

// SaveDraft implements statement.StatementService. Each save stores a new version.
// The store lock is released while the repository writes.
func (s *StatementServiceImpl) SaveDraft(ctx context.Context, id string, req statement.SaveDraftRequest) (statement.Draft, error) {
	s.drafts.mu.Lock()
	d, ok := s.drafts.drafts[id]
	if !ok {
		s.drafts.mu.Unlock()
		return statement.Draft{}, statement.ErrDraftNotFound
	}
	if !d.CanTransition(statement.DraftSaved) {
		s.drafts.mu.Unlock()
		return statement.Draft{}, fmt.Errorf("%w: %s -> %s", statement.ErrInvalidTransition, d.State, statement.DraftSaved)
	}
	snapshot := cloneDraft(d)
	s.drafts.mu.Unlock()

	saveReq := statement.SaveStatementRequest{Name: req.Name, Statement: requestFromRecord(snapshot.Record)}
	if err := saveReq.Validate(); err != nil {
		return statement.Draft{}, err
	}
	record, period, err := Assemble(s.calendar, s.company, saveReq.Statement)
	if err != nil {
		return statement.Draft{}, err
	}

	key, err := s.persist(ctx, req.Name, record, period)
	if err != nil {
		return statement.Draft{}, err
	}

	s.drafts.mu.Lock()
	defer s.drafts.mu.Unlock()

	d, ok = s.drafts.drafts[id]
	if !ok {
		slog.Warn("Draft removed while saving", "draft_id", id, "key", key)
		return statement.Draft{}, statement.ErrDraftNotFound
	}
	if err := d.Transition(statement.DraftSaved, s.now()); err != nil {
		return statement.Draft{}, err
	}
	d.Record = record
	d.SavedKeys = append(d.SavedKeys, key)
	return cloneDraft(d), nil
}

// DiscardDraft implements statement.StatementService. Saved versions are kept.
func (s *StatementServiceImpl) DiscardDraft(ctx context.Context, id string) error {
	s.drafts.mu.Lock()
	defer s.drafts.mu.Unlock()

	d, ok := s.drafts.drafts[id]
	if !ok {
		return statement.ErrDraftNotFound
	}
	if err := d.Transition(statement.DraftDiscarded, s.now()); err != nil {
		return err
	}
	delete(s.drafts.drafts, id)
	return nil
}

// ExpireDrafts implements statement.StatementService. Saved versions are kept.
func (s *StatementServiceImpl) ExpireDrafts(ctx context.Context, idleFor time.Duration) (int, error) {
	cutoff := s.now().Add(-idleFor)

	s.drafts.mu.Lock()
	defer s.drafts.mu.Unlock()

	expired := 0
	for id, d := range s.drafts.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts.drafts, id)
			expired++
		}
	}
	if expired > 0 {
		slog.Info("Expired idle drafts", "count", expired, "idle_for", idleFor)
	}
	return expired, nil
}
