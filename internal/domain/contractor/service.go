package contractor

import "context"

type ContractorService interface {
	List(ctx context.Context, activeOnly bool) ([]ContractorResponse, error)
	GetByID(ctx context.Context, id string) (ContractorResponse, error)
	Create(ctx context.Context, req CreateContractorRequest) (ContractorResponse, error)
	Update(ctx context.Context, req UpdateContractorRequest) (ContractorResponse, error)
	Deactivate(ctx context.Context, id string) error
}
