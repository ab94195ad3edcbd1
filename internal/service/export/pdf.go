package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/statement"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin = 15.0
	lineHeight = 5.5
	rowHeight  = 6.5
	fontFamily = "Helvetica"
	logoHeight = 16.0
)

var accent = [3]int{13, 148, 136}

type column struct {
	header string
	share  float64
	align  string
}

// page wraps a gofpdf document with the translator for the core fonts' code page.
type page struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	width float64
}

func (r *RendererImpl) renderPDF(doc statement.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCompression(r.compress)
	pdf.SetTitle(doc.Title(), true)
	pdf.SetCreator("paystatement-backend", true)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	p := &page{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		width: pageWidth - 2*pageMargin,
	}

	p.header(r.logo)
	p.columns(infoBlocks(doc))

	lines := summaryLines(doc)
	record := doc.Record
	itemized := doc.Preset == statement.PresetBPV1

	if !itemized {
		rows := make([][]string, 0, len(lines))
		for _, item := range lines {
			rows = append(rows, []string{plainDescription(item.Description), formatUSD(item.Total)})
		}
		p.table("Payment Details",
			[]column{{"Description", 0.75, "L"}, {"Total", 0.25, "R"}},
			rows,
			[]string{"Total Payment", formatUSD(record.TotalPayment)},
		)
	}

	title, rateHeader := "Summary", "Pay Per Visit"
	if itemized {
		title, rateHeader = "Itemized Details", "Rate"
	}
	rows := make([][]string, 0, len(lines))
	for _, item := range lines {
		rows = append(rows, []string{
			item.Description,
			rateLabel(item.Rate, item.QtySuffix, itemized),
			quantityLabel(item.Quantity, item.QtySuffix),
			formatUSD(item.Total),
		})
	}
	p.table(title,
		[]column{{"Description", 0.40, "L"}, {rateHeader, 0.22, "R"}, {"Qty", 0.16, "R"}, {"Total", 0.22, "R"}},
		rows,
		[]string{"Total", "", "", formatUSD(record.TotalPayment)},
	)

	p.notes(record.Notes)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *page) header(logo []byte) {
	top := p.pdf.GetY()
	if len(logo) > 0 {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		p.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
		p.pdf.ImageOptions("logo", pageMargin, top, 0, logoHeight, false, opts, 0, "")
	}

	p.pdf.SetXY(pageMargin, top)
	p.pdf.SetFont(fontFamily, "B", 18)
	p.pdf.CellFormat(p.width, logoHeight, p.tr("Payment Statement"), "", 1, "RM", false, 0, "")
	p.rule()
	p.pdf.Ln(4)
}

func (p *page) rule() {
	y := p.pdf.GetY()
	p.pdf.SetDrawColor(accent[0], accent[1], accent[2])
	p.pdf.SetLineWidth(0.3)
	p.pdf.Line(pageMargin, y, pageMargin+p.width, y)
	p.pdf.SetDrawColor(0, 0, 0)
}

type block struct {
	heading string
	lines   []string
}

func infoBlocks(doc statement.Document) []block {
	record := doc.Record

	company := block{heading: record.Company.Name}
	company.lines = append(company.lines, addressLines(record.Company.Address)...)
	if record.Company.Phone != "" {
		company.lines = append(company.lines, record.Company.Phone)
	}

	paidTo := block{heading: "Paid to", lines: []string{record.PaidTo.Name}}
	paidTo.lines = append(paidTo.lines, addressLines(record.PaidTo.Address)...)

	label := doc.PeriodLabel
	if label == "" {
		label = "N/A"
	}
	payment := block{heading: "Payment", lines: []string{
		"Pay Period: " + label,
		"Method: " + record.Payment.Method,
	}}

	return []block{company, paidTo, payment}
}

func addressLines(a statement.Address) []string {
	var lines []string
	if a.Street != "" {
		lines = append(lines, a.Street)
	}
	if a.Suite != "" {
		lines = append(lines, a.Suite)
	}
	if line := cityLine(a); line != "" {
		lines = append(lines, line)
	}
	return lines
}

// cityLine formats "City, ST 12345", skipping missing parts.
func cityLine(a statement.Address) string {
	stateZip := strings.TrimSpace(a.State + " " + a.ZipCode)
	switch {
	case a.City == "":
		return stateZip
	case stateZip == "":
		return a.City
	}
	return a.City + ", " + stateZip
}

func (p *page) columns(blocks []block) {
	top := p.pdf.GetY()
	bottom := top
	colWidth := p.width / float64(len(blocks))

	for i, b := range blocks {
		p.pdf.SetXY(pageMargin+float64(i)*colWidth, top)
		p.pdf.SetFont(fontFamily, "B", 10)
		p.pdf.CellFormat(colWidth, lineHeight, p.tr(b.heading), "", 2, "L", false, 0, "")
		p.pdf.SetFont(fontFamily, "", 10)
		for _, line := range b.lines {
			p.pdf.CellFormat(colWidth, lineHeight, p.tr(line), "", 2, "L", false, 0, "")
		}
		bottom = max(bottom, p.pdf.GetY())
	}

	p.pdf.SetXY(pageMargin, bottom)
	p.pdf.Ln(6)
}

func (p *page) table(title string, cols []column, rows [][]string, total []string) {
	p.pdf.SetFont(fontFamily, "B", 12)
	p.pdf.SetTextColor(accent[0], accent[1], accent[2])
	p.pdf.CellFormat(p.width, 7, p.tr(title), "", 1, "L", false, 0, "")
	p.pdf.SetTextColor(0, 0, 0)
	p.rule()
	p.pdf.Ln(1)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	p.pdf.SetFont(fontFamily, "B", 9)
	p.row(cols, headers, "")

	p.pdf.SetFont(fontFamily, "", 10)
	for _, cells := range rows {
		p.row(cols, cells, "")
	}

	p.pdf.SetFont(fontFamily, "B", 10)
	p.row(cols, total, "T")
	p.pdf.Ln(6)
}

func (p *page) row(cols []column, cells []string, border string) {
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		var text string
		if i < len(cells) {
			text = cells[i]
		}
		p.pdf.CellFormat(p.width*c.share, rowHeight, p.tr(text), border, ln, c.align, false, 0, "")
	}
}

func (p *page) notes(notes string) {
	if strings.TrimSpace(notes) == "" {
		return
	}
	p.pdf.SetFont(fontFamily, "B", 10)
	p.pdf.CellFormat(p.width, lineHeight, "Notes:", "", 1, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.MultiCell(p.width, lineHeight, p.tr(notes), "", "L", false)
}
