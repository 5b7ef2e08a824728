package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Resumo"
	// Advisory write protection on the summary sheet, not encryption.
	summaryPassphrase = "rancho2024"

	headerFillColor = "1F4E2F"
	dataFillColor   = "F2F2F2"

	moneyNumFmt = "#,##0.00"
	dateNumFmt  = "dd/mm/yyyy"
)

// WorkbookRenderer serializes a payload into a multi-sheet xlsx artifact.
type WorkbookRenderer struct {
	now func() time.Time
}

func NewWorkbookRenderer() *WorkbookRenderer {
	return &WorkbookRenderer{now: time.Now}
}

type workbook struct {
	f *excelize.File

	titleStyle   int
	sectionStyle int
	headerStyle  int
	dataStyle    int
	moneyStyle   int
	dateStyle    int
}

// Render builds the workbook: a protected "Resumo" sheet with headline
// blocks for every requested type, plus one sheet per type that carries
// list-shaped sections.
func (r *WorkbookRenderer) Render(payload domain.Payload, types []domain.ReportType, period domain.Period) (*domain.Artifact, error) {
	wb, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	defer wb.f.Close()

	if err := wb.writeSummary(payload, types, period, r.now()); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}

	for _, rt := range types {
		sections := payload[rt]
		if !hasListSections(rt, sections) {
			continue
		}
		if err := wb.writeTypeSheet(rt, sections); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", rt.DisplayName(), err)
		}
	}

	if err := wb.f.ProtectSheet(summarySheet, &excelize.SheetProtectionOptions{
		Password:            summaryPassphrase,
		SelectLockedCells:   true,
		SelectUnlockedCells: true,
	}); err != nil {
		return nil, fmt.Errorf("protect summary sheet: %w", err)
	}

	idx, err := wb.f.GetSheetIndex(summarySheet)
	if err != nil {
		return nil, err
	}
	wb.f.SetActiveSheet(idx)

	buf, err := wb.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	return &domain.Artifact{
		Bytes:    buf.Bytes(),
		MIME:     MIMEWorkbook,
		Filename: Filename(types, period, FormatWorkbook),
	}, nil
}

// RenderHerdDetails builds the fixed-name detailed herd export.
func (r *WorkbookRenderer) RenderHerdDetails(list domain.List) (*domain.Artifact, error) {
	wb, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	defer wb.f.Close()

	const sheet = "Animais"
	if err := wb.f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	generated := r.now()
	wb.setCell(sheet, 1, 1, "Detalhes dos Animais", wb.titleStyle)
	wb.setCell(sheet, 1, 2, "Gerado em: "+generated.Format("02/01/2006 15:04"), 0)

	if _, err := wb.writeListBlock(sheet, 4, list); err != nil {
		return nil, err
	}

	buf, err := wb.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	return &domain.Artifact{
		Bytes:    buf.Bytes(),
		MIME:     MIMEWorkbook,
		Filename: fmt.Sprintf("Detalhes_dos_Animais_%s.xlsx", generated.Format("2006-01-02")),
	}, nil
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}

	wb := &workbook{f: f}

	var err error
	wb.titleStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, err
	}

	wb.sectionStyle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, err
	}

	wb.headerStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, err
	}

	// The flat gray fill on every data row is intentional; banding is only
	// applied in the paginated document output.
	wb.dataStyle, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{dataFillColor}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, err
	}

	money := moneyNumFmt
	wb.moneyStyle, err = f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{dataFillColor}},
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       thinBorders(),
		CustomNumFmt: &money,
	})
	if err != nil {
		return nil, err
	}

	date := dateNumFmt
	wb.dateStyle, err = f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{dataFillColor}},
		Alignment:    &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:       thinBorders(),
		CustomNumFmt: &date,
	})
	if err != nil {
		return nil, err
	}

	return wb, nil
}

func (wb *workbook) writeSummary(payload domain.Payload, types []domain.ReportType, period domain.Period, generated time.Time) error {
	wb.setCell(summarySheet, 1, 1, "Relatório Gerencial", wb.titleStyle)
	wb.setCell(summarySheet, 1, 2, "Período: "+period.String(), 0)
	wb.setCell(summarySheet, 1, 3, "Gerado em: "+generated.Format("02/01/2006 15:04"), 0)

	if err := wb.f.SetColWidth(summarySheet, "A", "A", 32); err != nil {
		return err
	}
	if err := wb.f.SetColWidth(summarySheet, "B", "B", 22); err != nil {
		return err
	}

	row := 5
	for _, rt := range types {
		sections, ok := payload[rt]
		if !ok {
			continue
		}

		wb.setCell(summarySheet, 1, row, rt.DisplayName(), wb.sectionStyle)
		row += 2

		for _, name := range rt.SectionOrder() {
			section, ok := sections[name]
			if !ok {
				continue
			}
			wb.setCell(summarySheet, 1, row, domain.SectionTitle(name), wb.sectionStyle)
			row++

			switch s := section.(type) {
			case domain.Aggregate:
				row = wb.writeAggregateBlock(summarySheet, row, s)
			case domain.List:
				next, err := wb.writeListBlock(summarySheet, row, s)
				if err != nil {
					return err
				}
				row = next
			}
			row++
		}
		row++
	}

	return nil
}

func (wb *workbook) writeTypeSheet(rt domain.ReportType, sections domain.SectionMap) error {
	sheet := rt.DisplayName()
	if _, err := wb.f.NewSheet(sheet); err != nil {
		return err
	}

	wb.setCell(sheet, 1, 1, rt.DisplayName(), wb.titleStyle)

	row := 3
	for _, name := range rt.SectionOrder() {
		section, ok := sections[name]
		if !ok {
			continue
		}
		list, ok := section.(domain.List)
		if !ok {
			continue
		}

		wb.setCell(sheet, 1, row, domain.SectionTitle(name), wb.sectionStyle)
		row++

		next, err := wb.writeListBlock(sheet, row, list)
		if err != nil {
			return err
		}
		row = next + 2
	}

	return nil
}

// writeAggregateBlock emits label/value pairs in deterministic (sorted
// label) order and returns the next free row.
func (wb *workbook) writeAggregateBlock(sheet string, row int, agg domain.Aggregate) int {
	labels := make([]string, 0, len(agg))
	for label := range agg {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		wb.setCell(sheet, 1, row, label, wb.dataStyle)

		style := wb.dataStyle
		if strings.Contains(label, "R$") {
			style = wb.moneyStyle
		}
		wb.setCell(sheet, 2, row, agg[label], style)
		row++
	}
	return row
}

// writeListBlock emits a styled header row and the data rows, returning the
// next free row. Column widths are explicit, not auto-fit.
func (wb *workbook) writeListBlock(sheet string, row int, list domain.List) (int, error) {
	for col, header := range list.Columns {
		wb.setCell(sheet, col+1, row, header, wb.headerStyle)

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return 0, err
		}
		if err := wb.f.SetColWidth(sheet, name, name, columnWidth(header)); err != nil {
			return 0, err
		}
	}
	row++

	for _, dataRow := range list.Rows {
		for col, header := range list.Columns {
			value := dataRow[header]
			style := wb.dataStyle

			switch {
			case strings.Contains(header, "R$"):
				style = wb.moneyStyle
			default:
				// Only native dates get date formatting; string dates
				// pass through untouched.
				if _, ok := value.(time.Time); ok {
					style = wb.dateStyle
				}
			}

			wb.setCell(sheet, col+1, row, value, style)
		}
		row++
	}

	return row, nil
}

func (wb *workbook) setCell(sheet string, col, row int, value any, style int) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	_ = wb.f.SetCellValue(sheet, cell, value)
	if style != 0 {
		_ = wb.f.SetCellStyle(sheet, cell, cell, style)
	}
}

func hasListSections(rt domain.ReportType, sections domain.SectionMap) bool {
	for _, name := range rt.SectionOrder() {
		if _, ok := sections[name].(domain.List); ok {
			return true
		}
	}
	return false
}

// columnWidth returns the fixed character width tuned per field.
func columnWidth(header string) float64 {
	switch {
	case strings.HasPrefix(header, "Data"), header == "Previsão de Parto":
		return 16
	case header == "Tag", header == "Vaca":
		return 14
	case header == "Total", header == "Sexo":
		return 10
	case strings.Contains(header, "R$"):
		return 16
	case header == "Causa da Morte", header == "Comprador":
		return 26
	default:
		return 22
	}
}

func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
