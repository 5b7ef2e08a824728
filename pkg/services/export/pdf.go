package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/go-pdf/fpdf"
)

const (
	// Vertical cursor threshold (mm) past which the next line starts a new
	// page. A4 portrait is 297mm tall; the last ~37mm belong to the footer.
	pageBreakAt = 260.0

	tableWidth = 190.0

	documentCopyright = "© Ranch Atlas - Gestão de Rebanho"
)

// DocumentRenderer serializes a payload into a flowing paginated PDF.
type DocumentRenderer struct {
	now func() time.Time
}

func NewDocumentRenderer() *DocumentRenderer {
	return &DocumentRenderer{now: time.Now}
}

func (r *DocumentRenderer) Render(payload domain.Payload, types []domain.ReportType, period domain.Period) (*domain.Artifact, error) {
	doc := r.build(payload, types, period)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}

	return &domain.Artifact{
		Bytes:    buf.Bytes(),
		MIME:     MIMEDocument,
		Filename: Filename(types, period, FormatDocument),
	}, nil
}

// build lays out the whole document. Page totals in the footer rely on the
// {nb} alias, substituted in a final pass over all pages at output time.
func (r *DocumentRenderer) build(payload domain.Payload, types []domain.ReportType, period domain.Period) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	generated := r.now()

	pdf.SetTitle(tr("Relatório Gerencial"), false)
	pdf.AliasNbPages("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr("Relatório Gerencial"), "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 5, tr("Período: "+period.String()), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, tr("Gerado em: "+generated.Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, tr(documentCopyright), "", 1, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	// Pagination is driven by the threshold rule below, not the built-in
	// auto break, so continuation pages can re-emit table headers.
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	d := &document{pdf: pdf, tr: tr}
	for _, rt := range types {
		sections, ok := payload[rt]
		if !ok {
			continue
		}
		d.writeReportType(rt, sections)
	}

	return pdf
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *document) ensureRoom(height float64) {
	if d.pdf.GetY()+height > pageBreakAt {
		d.pdf.AddPage()
	}
}

func (d *document) writeReportType(rt domain.ReportType, sections domain.SectionMap) {
	d.ensureRoom(20)

	d.pdf.SetFont("Helvetica", "B", 13)
	d.pdf.SetFillColor(31, 78, 47)
	d.pdf.SetTextColor(255, 255, 255)
	d.pdf.CellFormat(0, 9, d.tr(rt.DisplayName()), "", 1, "L", true, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.Ln(2)

	for _, name := range rt.SectionOrder() {
		section, ok := sections[name]
		if !ok {
			continue
		}

		d.ensureRoom(14)
		d.pdf.SetFont("Helvetica", "B", 11)
		d.pdf.CellFormat(0, 7, d.tr(domain.SectionTitle(name)), "", 1, "L", false, 0, "")

		switch s := section.(type) {
		case domain.Aggregate:
			d.writeAggregate(s)
		case domain.List:
			d.writeTable(s)
		}
		d.pdf.Ln(3)
	}
	d.pdf.Ln(2)
}

// writeAggregate prints one indented "label: value" line per metric, in
// deterministic sorted-label order.
func (d *document) writeAggregate(agg domain.Aggregate) {
	labels := make([]string, 0, len(agg))
	for label := range agg {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	d.pdf.SetFont("Helvetica", "", 10)
	for _, label := range labels {
		if d.pdf.GetY() > pageBreakAt {
			d.pdf.AddPage()
			d.pdf.SetFont("Helvetica", "", 10)
		}
		line := fmt.Sprintf("%s: %s", label, formatCell(agg[label]))
		d.pdf.CellFormat(8, 6, "", "", 0, "L", false, 0, "")
		d.pdf.CellFormat(0, 6, d.tr(line), "", 1, "L", false, 0, "")
	}
}

// writeTable emits a header row plus banded data rows, restarting with a
// fresh header row whenever the cursor crosses the page threshold.
func (d *document) writeTable(list domain.List) {
	if len(list.Columns) == 0 {
		return
	}
	colWidth := tableWidth / float64(len(list.Columns))

	header := func() {
		d.pdf.SetFont("Helvetica", "B", 9)
		d.pdf.SetFillColor(31, 78, 47)
		d.pdf.SetTextColor(255, 255, 255)
		for _, column := range list.Columns {
			d.pdf.CellFormat(colWidth, 7, d.tr(column), "1", 0, "C", true, 0, "")
		}
		d.pdf.Ln(-1)
		d.pdf.SetTextColor(0, 0, 0)
		d.pdf.SetFont("Helvetica", "", 9)
	}
	header()

	shaded := false
	for _, row := range list.Rows {
		if d.pdf.GetY() > pageBreakAt {
			d.pdf.AddPage()
			header()
		}

		if shaded {
			d.pdf.SetFillColor(242, 242, 242)
		} else {
			d.pdf.SetFillColor(255, 255, 255)
		}
		for _, column := range list.Columns {
			d.pdf.CellFormat(colWidth, 6, d.tr(formatCell(row[column])), "1", 0, "C", shaded, 0, "")
		}
		d.pdf.Ln(-1)
		shaded = !shaded
	}
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("02/01/2006")
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
