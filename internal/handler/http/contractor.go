package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ContractorHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type ContractorHandlerImpl struct {
	contractorService contractor.ContractorService
}

func NewContractorHandler(contractorService contractor.ContractorService) ContractorHandler {
	return &ContractorHandlerImpl{
		contractorService: contractorService,
	}
}

// List implements ContractorHandler. active_only defaults to true.
func (h *ContractorHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if v := r.URL.Query().Get("active_only"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(w, "active_only must be a boolean", nil)
			return
		}
		activeOnly = parsed
	}

	contractors, err := h.contractorService.List(r.Context(), activeOnly)
	if err != nil {
		slog.Error("List contractors error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, contractors, &response.Meta{TotalItems: int64(len(contractors))})
}

// GetByID implements ContractorHandler.
func (h *ContractorHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.contractorService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c)
}

// Create implements ContractorHandler.
func (h *ContractorHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req contractor.CreateContractorRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create contractor decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.contractorService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create contractor service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contractor created successfully", created)
}

// Update implements ContractorHandler.
func (h *ContractorHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req contractor.UpdateContractorRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update contractor decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.contractorService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Update contractor service error", "error", err, "contractor_id", req.ID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contractor updated successfully", updated)
}

// Deactivate implements ContractorHandler.
func (h *ContractorHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.contractorService.Deactivate(r.Context(), id); err != nil {
		slog.Error("Deactivate contractor service error", "error", err, "contractor_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contractor deactivated successfully", nil)
}
