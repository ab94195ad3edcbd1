package contractor

import "context"

type ContractorRepository interface {
	ListActive(ctx context.Context) ([]Contractor, error)
	ListAll(ctx context.Context) ([]Contractor, error)
	GetByID(ctx context.Context, id string) (Contractor, error)
	// GetByName returns the first contractor, ordered by name, whose name contains
	// the given text case-insensitively.
	GetByName(ctx context.Context, name string) (Contractor, error)
	Create(ctx context.Context, c Contractor) (Contractor, error)
	Update(ctx context.Context, req UpdateContractorRequest) error
}
