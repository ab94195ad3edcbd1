package statement

import (
	"fmt"
	"slices"
	"time"
)

type DraftState string

const (
	DraftEmpty      DraftState = "empty"
	DraftSeeded     DraftState = "seeded"
	DraftEditing    DraftState = "editing"
	DraftPreviewing DraftState = "previewing"
	DraftSaved      DraftState = "saved"
	DraftDiscarded  DraftState = "discarded"
)

var draftTransitions = map[DraftState][]DraftState{
	DraftEmpty:      {DraftSeeded, DraftEditing, DraftDiscarded},
	DraftSeeded:     {DraftSeeded, DraftEditing, DraftPreviewing, DraftSaved, DraftDiscarded},
	DraftEditing:    {DraftSeeded, DraftEditing, DraftPreviewing, DraftSaved, DraftDiscarded},
	DraftPreviewing: {DraftEditing, DraftSaved, DraftDiscarded},
	DraftSaved:      {DraftEditing, DraftPreviewing, DraftDiscarded},
}

// Draft is an in-progress statement. Each save appends a key; earlier saves are
// never overwritten.
type Draft struct {
	ID        string             `json:"id"`
	State     DraftState         `json:"state"`
	Record    PayStatementRecord `json:"statement"`
	SavedKeys []string           `json:"saved_keys"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CanTransition reports whether the draft may move to the given state.
func (d *Draft) CanTransition(to DraftState) bool {
	return slices.Contains(draftTransitions[d.State], to)
}

// Transition moves the draft to the given state or returns ErrInvalidTransition.
func (d *Draft) Transition(to DraftState, at time.Time) error {
	if !d.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, d.State, to)
	}
	d.State = to
	d.UpdatedAt = at
	return nil
}

type CreateDraftRequest struct {
	ContractorID string `json:"contractor_id,omitempty"`
	PayPeriodID  string `json:"pay_period_id,omitempty"`
}

type SaveDraftRequest struct {
	Name string `json:"name"`
}
