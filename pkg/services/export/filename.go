package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
)

const (
	MIMEWorkbook = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEDocument = "application/pdf"
)

// ErrUnsupportedFormat marks a format the download endpoint cannot produce.
// Handlers translate it into a validation response, not an internal error.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format is a normalized output format.
type Format string

const (
	FormatWorkbook Format = "xlsx"
	FormatDocument Format = "pdf"
)

// NormalizeFormat maps the wire format names onto a Format. "excel" is an
// accepted alias for "xlsx".
func NormalizeFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pdf":
		return FormatDocument, nil
	case "xlsx", "excel":
		return FormatWorkbook, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

func (f Format) MIME() string {
	if f == FormatDocument {
		return MIMEDocument
	}
	return MIMEWorkbook
}

func (f Format) Extension() string {
	if f == FormatDocument {
		return ".pdf"
	}
	return ".xlsx"
}

// Filename joins the report-type slugs with hyphens and appends the date
// range, e.g. Analise-Nascimentos-Resumo-Financeiro_2024-02-01-2024-02-29.xlsx.
func Filename(types []domain.ReportType, period domain.Period, f Format) string {
	slugs := make([]string, 0, len(types))
	for _, t := range types {
		slugs = append(slugs, t.Slug())
	}
	return fmt.Sprintf("%s_%s-%s%s",
		strings.Join(slugs, "-"),
		period.Start.Format("2006-01-02"),
		period.End.Format("2006-01-02"),
		f.Extension(),
	)
}
