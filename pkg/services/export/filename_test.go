package export

import (
	"testing"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func februaryPeriod(t *testing.T) domain.Period {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-02-01")
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", "2024-02-29")
	require.NoError(t, err)
	return domain.Period{Start: start, End: end}
}

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected Format
		wantErr  bool
	}{
		{name: "pdf", raw: "pdf", expected: FormatDocument},
		{name: "xlsx", raw: "xlsx", expected: FormatWorkbook},
		{name: "excel alias", raw: "excel", expected: FormatWorkbook},
		{name: "uppercase", raw: "PDF", expected: FormatDocument},
		{name: "padded", raw: " xlsx ", expected: FormatWorkbook},
		{name: "csv rejected", raw: "csv", wantErr: true},
		{name: "empty rejected", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := NormalizeFormat(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFilename(t *testing.T) {
	period := februaryPeriod(t)

	filename := Filename(
		[]domain.ReportType{domain.BirthsAnalysis, domain.FinancialSummary},
		period,
		FormatWorkbook,
	)
	assert.Equal(t, "Analise-Nascimentos-Resumo-Financeiro_2024-02-01-2024-02-29.xlsx", filename)

	filename = Filename([]domain.ReportType{domain.MonthlySummary}, period, FormatDocument)
	assert.Equal(t, "Resumo-Mensal_2024-02-01-2024-02-29.pdf", filename)
}

func TestFormatMIME(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatDocument.MIME())
	assert.Equal(t, MIMEWorkbook, FormatWorkbook.MIME())
}
