package statement

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/upload"
)

type Preset string

const (
	PresetCurrent Preset = "current"
	PresetBPV1    Preset = "bpv1"
)

// ParsePreset maps an empty value to PresetCurrent.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetCurrent:
		return PresetCurrent, nil
	case PresetBPV1:
		return PresetBPV1, nil
	}
	return "", ErrUnsupportedPreset
}

type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat maps an empty value to FormatPDF.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", ErrUnsupportedFormat
}

// Document is what a Renderer needs: the record plus its resolved period label.
type Document struct {
	Record      PayStatementRecord
	PeriodLabel string
	Preset      Preset
}

// Title is the document title, "<payee> - <period label>".
func (d Document) Title() string {
	name := strings.TrimSpace(d.Record.PaidTo.Name)
	if name == "" {
		name = "Pay Statement"
	}
	return name + " - " + d.PeriodLabel
}

var unsafeFilenameRun = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Filename derives a filesystem-safe file name from the title.
func (d Document) Filename(ext string) string {
	base := strings.Trim(unsafeFilenameRun.ReplaceAllString(d.Title(), "_"), "_")
	if base == "" {
		base = "pay_statement"
	}
	return base + "." + ext
}

type Renderer interface {
	RenderPDF(ctx context.Context, doc Document) ([]byte, error)
	RenderCSV(ctx context.Context, doc Document) ([]byte, error)
	RenderRegister(ctx context.Context, rows []SavedStatementSummary) ([]byte, error)
}

type StatementService interface {
	Seed(ctx context.Context, req SeedRequest) (PayStatementRecord, error)
	Preview(ctx context.Context, req AssembleRequest) (PayStatementRecord, error)
	Save(ctx context.Context, req SaveStatementRequest) (SaveStatementResponse, error)
	Get(ctx context.Context, key string) (PayStatementRecord, error)
	List(ctx context.Context, filter ListFilter) ([]SavedStatementSummary, error)
	Delete(ctx context.Context, key string) error
	Export(ctx context.Context, req ExportRequest) (ExportResult, error)
	Upload(ctx context.Context, req UploadStatementRequest) (upload.Result, error)
	UploadBatch(ctx context.Context, req BatchUploadRequest) ([]BatchUploadResult, error)
	Register(ctx context.Context, filter ListFilter) (ExportResult, error)

	// Drafts
	CreateDraft(ctx context.Context, req CreateDraftRequest) (Draft, error)
	GetDraft(ctx context.Context, id string) (Draft, error)
	UpdateDraft(ctx context.Context, id string, req AssembleRequest) (Draft, error)
	PreviewDraft(ctx context.Context, id string) (Draft, error)
	SaveDraft(ctx context.Context, id string, req SaveDraftRequest) (Draft, error)
	DiscardDraft(ctx context.Context, id string) error
	// ExpireDrafts drops drafts untouched for idleFor and returns how many went.
	ExpireDrafts(ctx context.Context, idleFor time.Duration) (int, error)
}
