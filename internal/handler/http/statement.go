package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/handler/http/response"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/oauth"
	"github.com/element-cleaning/paystatement-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// DriveTokenHeader carries an end-user Google access token. It is separate from
// Authorization, which holds the API token when auth is enabled.
const DriveTokenHeader = "X-Drive-Access-Token"

type StatementHandler interface {
	Seed(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByKey(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	ExportSaved(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	UploadBatch(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)

	CreateDraft(w http.ResponseWriter, r *http.Request)
	GetDraft(w http.ResponseWriter, r *http.Request)
	UpdateDraft(w http.ResponseWriter, r *http.Request)
	PreviewDraft(w http.ResponseWriter, r *http.Request)
	SaveDraft(w http.ResponseWriter, r *http.Request)
	DiscardDraft(w http.ResponseWriter, r *http.Request)
}

type StatementHandlerImpl struct {
	statementService statement.StatementService
}

func NewStatementHandler(statementService statement.StatementService) StatementHandler {
	return &StatementHandlerImpl{
		statementService: statementService,
	}
}

// decodeOptional decodes a JSON body, treating an empty body as the zero value.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func driveAccessToken(r *http.Request) string {
	return oauth.BearerToken(r.Header.Get(DriveTokenHeader))
}

func parseListFilter(r *http.Request) (statement.ListFilter, error) {
	q := r.URL.Query()
	filter := statement.ListFilter{
		ContractorID: q.Get("contractor_id"),
		PayeeName:    q.Get("payee"),
	}

	var errs validator.ValidationErrors
	parseDay := func(field string) *time.Time {
		v := q.Get(field)
		if v == "" {
			return nil
		}
		t, ok := validator.IsValidDate(v)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a date in YYYY-MM-DD format"})
			return nil
		}
		return &t
	}
	filter.From = parseDay("from")
	filter.To = parseDay("to")

	if len(errs) > 0 {
		return filter, errs
	}
	return filter, nil
}

// Seed implements StatementHandler.
func (h *StatementHandlerImpl) Seed(w http.ResponseWriter, r *http.Request) {
	var req statement.SeedRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Seed statement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.statementService.Seed(r.Context(), req)
	if err != nil {
		slog.Error("Seed statement service error", "error", err, "contractor_id", req.ContractorID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Preview implements StatementHandler.
func (h *StatementHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req statement.AssembleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Preview statement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.statementService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Save implements StatementHandler.
func (h *StatementHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var req statement.SaveStatementRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Save statement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	saved, err := h.statementService.Save(r.Context(), req)
	if err != nil {
		slog.Error("Save statement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay statement saved successfully", saved)
}

// List implements StatementHandler.
func (h *StatementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.statementService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List statements service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, rows, &response.Meta{TotalItems: int64(len(rows))})
}

// GetByKey implements StatementHandler.
func (h *StatementHandlerImpl) GetByKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	record, err := h.statementService.Get(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Delete implements StatementHandler.
func (h *StatementHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	if err := h.statementService.Delete(r.Context(), key); err != nil {
		slog.Error("Delete statement service error", "error", err, "key", key)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay statement deleted successfully", nil)
}

// Export renders an unsaved statement posted in the body.
func (h *StatementHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var req statement.ExportRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Export statement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	h.export(w, r, req)
}

// ExportSaved renders a saved statement; format and preset come from the query.
func (h *StatementHandlerImpl) ExportSaved(w http.ResponseWriter, r *http.Request) {
	req := statement.ExportRequest{
		Key:    chi.URLParam(r, "key"),
		Format: statement.Format(r.URL.Query().Get("format")),
		Preset: statement.Preset(r.URL.Query().Get("preset")),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	h.export(w, r, req)
}

func (h *StatementHandlerImpl) export(w http.ResponseWriter, r *http.Request, req statement.ExportRequest) {
	result, err := h.statementService.Export(r.Context(), req)
	if err != nil {
		slog.Error("Export statement service error", "error", err, "key", req.Key)
		response.HandleError(w, err)
		return
	}

	response.File(w, result.Filename, result.ContentType, result.Content)
}

// Upload renders a saved statement to PDF and sends it to the upload target.
// A JSON body is optional.
func (h *StatementHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	var req statement.UploadStatementRequest

	if err := decodeOptional(r, &req); err != nil {
		slog.Error("Upload statement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Key = chi.URLParam(r, "key")
	req.AccessToken = driveAccessToken(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statementService.Upload(r.Context(), req)
	if err != nil {
		slog.Error("Upload statement service error", "error", err, "key", req.Key)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay statement uploaded successfully", result)
}

// UploadBatch implements StatementHandler. Per-key failures are reported in the
// result rows, so the response is 200 even when some keys failed.
func (h *StatementHandlerImpl) UploadBatch(w http.ResponseWriter, r *http.Request) {
	var req statement.BatchUploadRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upload batch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.AccessToken = driveAccessToken(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.statementService.UploadBatch(r.Context(), req)
	if err != nil {
		slog.Error("Upload batch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: int64(len(results)), Failed: failed})
}

// Register implements StatementHandler.
func (h *StatementHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.statementService.Register(r.Context(), filter)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.File(w, result.Filename, result.ContentType, result.Content)
}

// CreateDraft implements StatementHandler.
func (h *StatementHandlerImpl) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req statement.CreateDraftRequest

	if err := decodeOptional(r, &req); err != nil {
		slog.Error("Create draft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	draft, err := h.statementService.CreateDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Draft created successfully", draft)
}

// GetDraft implements StatementHandler.
func (h *StatementHandlerImpl) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.statementService.GetDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, draft)
}

// UpdateDraft implements StatementHandler.
func (h *StatementHandlerImpl) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req statement.AssembleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update draft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	draft, err := h.statementService.UpdateDraft(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, draft)
}

// PreviewDraft implements StatementHandler.
func (h *StatementHandlerImpl) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.statementService.PreviewDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, draft)
}

// SaveDraft implements StatementHandler.
func (h *StatementHandlerImpl) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req statement.SaveDraftRequest

	if err := decodeOptional(r, &req); err != nil {
		slog.Error("Save draft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	draft, err := h.statementService.SaveDraft(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("Save draft service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Draft saved successfully", draft)
}

// DiscardDraft implements StatementHandler.
func (h *StatementHandlerImpl) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.statementService.DiscardDraft(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Draft discarded", nil)
}
