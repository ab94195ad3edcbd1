package contractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
)

type ContractorServiceImpl struct {
	contractor.ContractorRepository
}

func NewContractorService(contractorRepository contractor.ContractorRepository) contractor.ContractorService {
	return &ContractorServiceImpl{
		ContractorRepository: contractorRepository,
	}
}

// List implements contractor.ContractorService.
func (s *ContractorServiceImpl) List(ctx context.Context, activeOnly bool) ([]contractor.ContractorResponse, error) {
	var (
		list []contractor.Contractor
		err  error
	)
	if activeOnly {
		list, err = s.ContractorRepository.ListActive(ctx)
	} else {
		list, err = s.ContractorRepository.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}

	resp := make([]contractor.ContractorResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, contractor.NewContractorResponse(c))
	}
	return resp, nil
}

// GetByID implements contractor.ContractorService.
func (s *ContractorServiceImpl) GetByID(ctx context.Context, id string) (contractor.ContractorResponse, error) {
	c, err := s.ContractorRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contractor.ErrContractorNotFound) {
			return contractor.ContractorResponse{}, err
		}
		return contractor.ContractorResponse{}, fmt.Errorf("failed to get contractor: %w", err)
	}
	return contractor.NewContractorResponse(c), nil
}

// Create implements contractor.ContractorService.
// Subtle: this method shadows the method (ContractorRepository).Create of ContractorServiceImpl.ContractorRepository.
func (s *ContractorServiceImpl) Create(ctx context.Context, req contractor.CreateContractorRequest) (contractor.ContractorResponse, error) {
	if err := req.Validate(); err != nil {
		return contractor.ContractorResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	created, err := s.ContractorRepository.Create(ctx, contractor.Contractor{
		Name:          req.Name,
		Address:       req.Address,
		PaymentInfo:   req.PaymentInfo,
		Buildings:     req.Buildings,
		IsActive:      isActive,
		Notes:         req.Notes,
		DriveFolderID: req.DriveFolderID,
	})
	if err != nil {
		return contractor.ContractorResponse{}, fmt.Errorf("failed to create contractor: %w", err)
	}

	slog.Info("Contractor created", "contractor_id", created.ID, "name", created.Name)
	return contractor.NewContractorResponse(created), nil
}

// Update implements contractor.ContractorService.
// Subtle: this method shadows the method (ContractorRepository).Update of ContractorServiceImpl.ContractorRepository.
func (s *ContractorServiceImpl) Update(ctx context.Context, req contractor.UpdateContractorRequest) (contractor.ContractorResponse, error) {
	if err := req.Validate(); err != nil {
		return contractor.ContractorResponse{}, err
	}

	if err := s.ContractorRepository.Update(ctx, req); err != nil {
		if errors.Is(err, contractor.ErrContractorNotFound) {
			return contractor.ContractorResponse{}, err
		}
		return contractor.ContractorResponse{}, fmt.Errorf("failed to update contractor: %w", err)
	}

	slog.Info("Contractor updated", "contractor_id", req.ID)
	return s.GetByID(ctx, req.ID)
}

// Deactivate implements contractor.ContractorService. Contractors are never removed
// so saved statements keep resolving their payee.
func (s *ContractorServiceImpl) Deactivate(ctx context.Context, id string) error {
	inactive := false
	if err := s.ContractorRepository.Update(ctx, contractor.UpdateContractorRequest{ID: id, IsActive: &inactive}); err != nil {
		if errors.Is(err, contractor.ErrContractorNotFound) {
			return err
		}
		return fmt.Errorf("failed to deactivate contractor: %w", err)
	}

	slog.Info("Contractor deactivated", "contractor_id", id)
	return nil
}
