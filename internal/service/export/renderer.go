package export

import (
	"context"
	"slices"
	"strings"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
)

type RendererImpl struct {
	logo     []byte
	compress bool
}

// NewRenderer returns a statement.Renderer. logo is an optional PNG drawn in the
// PDF header; nil renders the title alone.
func NewRenderer(logo []byte) statement.Renderer {
	return &RendererImpl{logo: logo, compress: true}
}

// RenderPDF implements statement.Renderer.
func (r *RendererImpl) RenderPDF(ctx context.Context, doc statement.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.renderPDF(doc)
}

// RenderCSV implements statement.Renderer.
func (r *RendererImpl) RenderCSV(ctx context.Context, doc statement.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return renderCSV(doc)
}

// RenderRegister implements statement.Renderer.
func (r *RendererImpl) RenderRegister(ctx context.Context, rows []statement.SavedStatementSummary) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return renderRegister(rows)
}

// summaryLines returns the summary in display order. The itemized preset sorts by
// description ignoring case; the current preset keeps entry order.
func summaryLines(doc statement.Document) []statement.SummaryLineItem {
	lines := slices.Clone(doc.Record.Summary)
	if doc.Preset == statement.PresetBPV1 {
		slices.SortStableFunc(lines, func(a, b statement.SummaryLineItem) int {
			return strings.Compare(foldKey(a.Description), foldKey(b.Description))
		})
	}
	return lines
}
