package local

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

const contractorsFile = "contractors.json"

type contractorRepository struct {
	mu          sync.RWMutex
	files       storage.FileStorage
	contractors []contractor.Contractor
}

// NewContractorRepository loads the directory from files, falling back to defaults
// (and writing them) when nothing has been stored yet. files may be nil for an
// in-memory directory.
func NewContractorRepository(ctx context.Context, files storage.FileStorage, defaults []contractor.Contractor) (contractor.ContractorRepository, error) {
	r := &contractorRepository{files: files}

	var stored []contractor.Contractor
	found, err := readJSON(ctx, files, contractorsFile, &stored)
	if err != nil {
		return nil, err
	}
	if found && len(stored) > 0 {
		r.contractors = stored
		return r, nil
	}

	r.contractors = make([]contractor.Contractor, 0, len(defaults))
	for _, c := range defaults {
		r.contractors = append(r.contractors, cloneContractor(c))
	}
	if err := writeJSON(ctx, files, contractorsFile, r.contractors); err != nil {
		return nil, err
	}
	return r, nil
}

func cloneContractor(c contractor.Contractor) contractor.Contractor {
	c.Buildings = slices.Clone(c.Buildings)
	return c
}

func sortedByName(list []contractor.Contractor) []contractor.Contractor {
	slices.SortStableFunc(list, func(a, b contractor.Contractor) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return list
}

func (r *contractorRepository) ListActive(ctx context.Context) ([]contractor.Contractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contractor.Contractor, 0, len(r.contractors))
	for _, c := range r.contractors {
		if c.IsActive {
			out = append(out, cloneContractor(c))
		}
	}
	return sortedByName(out), nil
}

func (r *contractorRepository) ListAll(ctx context.Context) ([]contractor.Contractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contractor.Contractor, 0, len(r.contractors))
	for _, c := range r.contractors {
		out = append(out, cloneContractor(c))
	}
	return sortedByName(out), nil
}

func (r *contractorRepository) GetByID(ctx context.Context, id string) (contractor.Contractor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.contractors {
		if c.ID == id {
			return cloneContractor(c), nil
		}
	}
	return contractor.Contractor{}, contractor.ErrContractorNotFound
}

func (r *contractorRepository) GetByName(ctx context.Context, name string) (contractor.Contractor, error) {
	all, _ := r.ListAll(ctx)

	needle := strings.ToLower(strings.TrimSpace(name))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return c, nil
		}
	}
	return contractor.Contractor{}, contractor.ErrContractorNotFound
}

func (r *contractorRepository) Create(ctx context.Context, c contractor.Contractor) (contractor.Contractor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.DateAdded.IsZero() {
		c.DateAdded = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	c = cloneContractor(c)

	next := append(slices.Clone(r.contractors), c)
	if err := writeJSON(ctx, r.files, contractorsFile, next); err != nil {
		return contractor.Contractor{}, err
	}
	r.contractors = next
	return cloneContractor(c), nil
}

func (r *contractorRepository) Update(ctx context.Context, req contractor.UpdateContractorRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.contractors, func(c contractor.Contractor) bool { return c.ID == req.ID })
	if idx < 0 {
		return contractor.ErrContractorNotFound
	}

	next := slices.Clone(r.contractors)
	updated := cloneContractor(next[idx])
	req.Apply(&updated)
	updated = cloneContractor(updated)
	updated.UpdatedAt = time.Now().UTC()
	next[idx] = updated

	if err := writeJSON(ctx, r.files, contractorsFile, next); err != nil {
		return err
	}
	r.contractors = next
	return nil
}
