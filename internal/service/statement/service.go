package statement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/payperiod"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
	"golang.org/x/sync/errgroup"
)

const (
	defaultStatementName = "Untitled"
	unresolvedLabel      = "N/A"
	uploadConcurrency    = 4

	contentTypePDF  = "application/pdf"
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type StatementServiceImpl struct {
	calendar       payperiod.Calendar
	contractorRepo contractor.ContractorRepository
	statementRepo  statement.StatementRepository
	renderer       statement.Renderer
	uploader       upload.Uploader
	company        statement.CompanyInfo
	drafts         *draftStore
	now            func() time.Time
}

func NewStatementService(
	calendar payperiod.Calendar,
	contractorRepo contractor.ContractorRepository,
	statementRepo statement.StatementRepository,
	renderer statement.Renderer,
	uploader upload.Uploader,
	company statement.CompanyInfo,
) statement.StatementService {
	return &StatementServiceImpl{
		calendar:       calendar,
		contractorRepo: contractorRepo,
		statementRepo:  statementRepo,
		renderer:       renderer,
		uploader:       uploader,
		company:        company,
		drafts:         newDraftStore(),
		now:            time.Now,
	}
}

func collaboratorErr(name string, err error) error {
	return &statement.CollaboratorError{Collaborator: name, Err: err}
}

// Seed implements statement.StatementService.
func (s *StatementServiceImpl) Seed(ctx context.Context, req statement.SeedRequest) (statement.PayStatementRecord, error) {
	if err := req.Validate(); err != nil {
		return statement.PayStatementRecord{}, err
	}

	c, err := s.contractorRepo.GetByID(ctx, req.ContractorID)
	if err != nil {
		return statement.PayStatementRecord{}, collaboratorErr(statement.CollaboratorDirectory, err)
	}

	period, err := s.resolvePeriod(req.PayPeriodID)
	if err != nil {
		return statement.PayStatementRecord{}, err
	}

	return Seed(s.company, c, period), nil
}

// resolvePeriod returns the named period, or the default one when id is empty.
func (s *StatementServiceImpl) resolvePeriod(id string) (payperiod.PayPeriod, error) {
	if id == "" {
		return s.calendar.Default(s.now())
	}
	p, err := s.calendar.GetByID(id)
	if err != nil {
		return payperiod.PayPeriod{}, fmt.Errorf("%w: %q", statement.ErrUnresolvedPeriod, id)
	}
	return p, nil
}

// Preview implements statement.StatementService.
func (s *StatementServiceImpl) Preview(ctx context.Context, req statement.AssembleRequest) (statement.PayStatementRecord, error) {
	record, _, err := Assemble(s.calendar, s.company, req)
	return record, err
}

// Save implements statement.StatementService.
func (s *StatementServiceImpl) Save(ctx context.Context, req statement.SaveStatementRequest) (statement.SaveStatementResponse, error) {
	if err := req.Validate(); err != nil {
		return statement.SaveStatementResponse{}, err
	}

	record, period, err := Assemble(s.calendar, s.company, req.Statement)
	if err != nil {
		return statement.SaveStatementResponse{}, err
	}

	key, err := s.persist(ctx, req.Name, record, period)
	if err != nil {
		return statement.SaveStatementResponse{}, err
	}
	return statement.SaveStatementResponse{Key: key, Statement: record}, nil
}

func (s *StatementServiceImpl) persist(ctx context.Context, name string, record statement.PayStatementRecord, period payperiod.PayPeriod) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultStatementName
	}

	key, err := s.statementRepo.Save(ctx, name, record, period)
	if err != nil {
		slog.Error("Failed to save pay statement", "name", name, "payee", record.PaidTo.Name, "error", err)
		return "", collaboratorErr(statement.CollaboratorStore, err)
	}
	slog.Info("Saved pay statement", "key", key, "payee", record.PaidTo.Name, "pay_period_id", period.ID, "total", record.TotalPayment.StringFixed(2))
	return key, nil
}

// Get implements statement.StatementService.
func (s *StatementServiceImpl) Get(ctx context.Context, key string) (statement.PayStatementRecord, error) {
	record, err := s.statementRepo.Load(ctx, key)
	if err != nil {
		return statement.PayStatementRecord{}, collaboratorErr(statement.CollaboratorStore, err)
	}
	Apply(&record)
	return record, nil
}

// List implements statement.StatementService.
func (s *StatementServiceImpl) List(ctx context.Context, filter statement.ListFilter) ([]statement.SavedStatementSummary, error) {
	if filter.ContractorID != "" && filter.PayeeName == "" {
		// Statements saved without a contractor id still match by payee name.
		c, err := s.contractorRepo.GetByID(ctx, filter.ContractorID)
		switch {
		case err == nil:
			filter.PayeeName = c.Name
		case !errors.Is(err, contractor.ErrContractorNotFound):
			return nil, collaboratorErr(statement.CollaboratorDirectory, err)
		}
	}

	rows, err := s.statementRepo.List(ctx, filter)
	if err != nil {
		return nil, collaboratorErr(statement.CollaboratorStore, err)
	}
	return rows, nil
}

// Delete implements statement.StatementService.
func (s *StatementServiceImpl) Delete(ctx context.Context, key string) error {
	if err := s.statementRepo.Delete(ctx, key); err != nil {
		return collaboratorErr(statement.CollaboratorStore, err)
	}
	slog.Info("Deleted pay statement", "key", key)
	return nil
}

// document loads the saved statement key, or assembles req when key is empty.
func (s *StatementServiceImpl) document(ctx context.Context, key string, req *statement.AssembleRequest, preset statement.Preset) (statement.Document, error) {
	var record statement.PayStatementRecord
	if key != "" {
		loaded, err := s.Get(ctx, key)
		if err != nil {
			return statement.Document{}, err
		}
		record = loaded
	} else {
		assembled, _, err := Assemble(s.calendar, s.company, *req)
		if err != nil {
			return statement.Document{}, err
		}
		record = assembled
	}

	label := unresolvedLabel
	if p, err := s.calendar.GetByID(record.Payment.PayPeriodID); err == nil {
		label = p.Label
	}
	return statement.Document{Record: record, PeriodLabel: label, Preset: preset}, nil
}

// Export implements statement.StatementService.
func (s *StatementServiceImpl) Export(ctx context.Context, req statement.ExportRequest) (statement.ExportResult, error) {
	if err := req.Validate(); err != nil {
		return statement.ExportResult{}, err
	}
	format, err := statement.ParseFormat(string(req.Format))
	if err != nil {
		return statement.ExportResult{}, err
	}
	preset, err := statement.ParsePreset(string(req.Preset))
	if err != nil {
		return statement.ExportResult{}, err
	}

	doc, err := s.document(ctx, req.Key, req.Statement, preset)
	if err != nil {
		return statement.ExportResult{}, err
	}

	switch format {
	case statement.FormatCSV:
		content, err := s.renderer.RenderCSV(ctx, doc)
		if err != nil {
			return statement.ExportResult{}, collaboratorErr(statement.CollaboratorRenderer, err)
		}
		return statement.ExportResult{Content: content, ContentType: contentTypeCSV, Filename: doc.Filename("csv")}, nil
	default:
		content, err := s.renderer.RenderPDF(ctx, doc)
		if err != nil {
			slog.Error("Failed to render pay statement", "payee", doc.Record.PaidTo.Name, "preset", preset, "error", err)
			return statement.ExportResult{}, collaboratorErr(statement.CollaboratorRenderer, err)
		}
		return statement.ExportResult{Content: content, ContentType: contentTypePDF, Filename: doc.Filename("pdf")}, nil
	}
}

// Upload implements statement.StatementService.
func (s *StatementServiceImpl) Upload(ctx context.Context, req statement.UploadStatementRequest) (upload.Result, error) {
	if err := req.Validate(); err != nil {
		return upload.Result{}, err
	}
	preset, err := statement.ParsePreset(string(req.Preset))
	if err != nil {
		return upload.Result{}, err
	}

	doc, err := s.document(ctx, req.Key, req.Statement, preset)
	if err != nil {
		return upload.Result{}, err
	}
	return s.uploadDocument(ctx, doc, req.Destination, req.Filename, statement.AllowCreateOrDefault(req.AllowCreate), req.AccessToken)
}

func (s *StatementServiceImpl) uploadDocument(ctx context.Context, doc statement.Document, destination, filename string, allowCreate bool, accessToken string) (upload.Result, error) {
	content, err := s.renderer.RenderPDF(ctx, doc)
	if err != nil {
		return upload.Result{}, collaboratorErr(statement.CollaboratorRenderer, err)
	}

	if strings.TrimSpace(destination) == "" {
		destination = doc.Record.PaidTo.Name
	}
	if strings.TrimSpace(filename) == "" {
		filename = doc.Filename("pdf")
	}

	result, err := s.uploader.Upload(ctx, upload.Request{
		Content:     content,
		Destination: destination,
		Filename:    filename,
		ContentType: contentTypePDF,
		AllowCreate: allowCreate,
		AccessToken: accessToken,
	})
	if err != nil {
		slog.Error("Failed to upload pay statement", "destination", destination, "filename", filename, "error", err)
		return upload.Result{}, collaboratorErr(statement.CollaboratorUploadSink, err)
	}
	slog.Info("Uploaded pay statement", "destination", destination, "file_id", result.ID, "folder_id", result.FolderID)
	return result, nil
}

// UploadBatch implements statement.StatementService. Keys are processed concurrently
// and each failure is reported on its own row.
func (s *StatementServiceImpl) UploadBatch(ctx context.Context, req statement.BatchUploadRequest) ([]statement.BatchUploadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	preset, err := statement.ParsePreset(string(req.Preset))
	if err != nil {
		return nil, err
	}
	allowCreate := statement.AllowCreateOrDefault(req.AllowCreate)

	results := make([]statement.BatchUploadResult, len(req.Keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)

	for i, key := range req.Keys {
		g.Go(func() error {
			results[i] = statement.BatchUploadResult{Key: key}

			doc, err := s.document(gctx, key, nil, preset)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			res, err := s.uploadDocument(gctx, doc, "", "", allowCreate, req.AccessToken)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Result = &res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Register implements statement.StatementService.
func (s *StatementServiceImpl) Register(ctx context.Context, filter statement.ListFilter) (statement.ExportResult, error) {
	rows, err := s.List(ctx, filter)
	if err != nil {
		return statement.ExportResult{}, err
	}

	content, err := s.renderer.RenderRegister(ctx, rows)
	if err != nil {
		return statement.ExportResult{}, collaboratorErr(statement.CollaboratorRenderer, err)
	}
	return statement.ExportResult{
		Content:     content,
		ContentType: contentTypeXLSX,
		Filename:    fmt.Sprintf("pay_statements_%s.xlsx", s.now().Format("2006-01-02")),
	}, nil
}
