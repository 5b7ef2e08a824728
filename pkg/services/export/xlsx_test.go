package export

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	generated, err := time.Parse("2006-01-02 15:04", "2024-03-01 10:30")
	require.NoError(t, err)
	return func() time.Time { return generated }
}

func samplePayload(t *testing.T) (domain.Payload, []domain.ReportType, domain.Period) {
	t.Helper()
	period := februaryPeriod(t)
	saleDate := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)

	payload := domain.Payload{
		domain.MonthlySummary: domain.SectionMap{
			"nascimentos": domain.Aggregate{
				"Total":           int64(10),
				"Machos":          int64(6),
				"Fêmeas":          int64(4),
				"Peso Médio (kg)": 31.2,
			},
			"vendas": domain.Aggregate{
				"Total":            int64(3),
				"Valor Total (R$)": 4500.50,
			},
		},
		domain.FinancialSummary: domain.SectionMap{
			"resumo": domain.Aggregate{
				"Custo Total (R$)":   1234.50,
				"Receita Total (R$)": 4500.50,
				"Saldo (R$)":         3266.00,
			},
			"por_categoria": domain.List{
				Columns: []string{"Categoria", "Lançamentos", "Valor (R$)"},
				Rows: []domain.Row{
					{"Categoria": "Ração", "Lançamentos": int64(4), "Valor (R$)": 1234.50},
					{"Categoria": "Veterinário", "Lançamentos": int64(1), "Valor (R$)": 320.00},
				},
			},
			"vendas": domain.List{
				Columns: []string{"Data", "Animal", "Comprador", "Valor (R$)"},
				Rows: []domain.Row{
					{"Data": saleDate, "Animal": "BR-010", "Comprador": "Frigorífico Sul", "Valor (R$)": 1500.00},
				},
			},
		},
	}

	types := []domain.ReportType{domain.MonthlySummary, domain.FinancialSummary}
	return payload, types, period
}

func TestWorkbookRenderer_SummarySheet(t *testing.T) {
	payload, types, period := samplePayload(t)

	r := NewWorkbookRenderer()
	r.now = fixedClock(t)

	artifact, err := r.Render(payload, types, period)
	require.NoError(t, err)
	assert.Equal(t, MIMEWorkbook, artifact.MIME)
	assert.Equal(t, "Resumo-Mensal-Resumo-Financeiro_2024-02-01-2024-02-29.xlsx", artifact.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Bytes))
	require.NoError(t, err)
	defer f.Close()

	// First three rows: title, period line, timestamp line.
	for row := 1; row <= 3; row++ {
		value, err := f.GetCellValue(summarySheet, fmt.Sprintf("A%d", row))
		require.NoError(t, err)
		assert.NotEmpty(t, value)
	}

	period2, err := f.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Período: 01/02/2024 a 29/02/2024", period2)

	generated, err := f.GetCellValue(summarySheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Gerado em: 01/03/2024 10:30", generated)
}

func TestWorkbookRenderer_TypeSheetsAndFormats(t *testing.T) {
	payload, types, period := samplePayload(t)

	r := NewWorkbookRenderer()
	r.now = fixedClock(t)

	artifact, err := r.Render(payload, types, period)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Bytes))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, summarySheet)
	// Only types with list sections get their own sheet.
	assert.Contains(t, sheets, "Resumo Financeiro")
	assert.NotContains(t, sheets, "Resumo Mensal")

	// Layout on the type sheet: title, section title, header row, data rows.
	header, err := f.GetCellValue("Resumo Financeiro", "C4")
	require.NoError(t, err)
	assert.Equal(t, "Valor (R$)", header)

	// Monetary columns carry the two-decimal number format.
	styleID, err := f.GetCellStyle("Resumo Financeiro", "C5")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.CustomNumFmt)
	assert.Equal(t, moneyNumFmt, *style.CustomNumFmt)

	// Native dates get dd/mm/yyyy; the sale date lands in the vendas block.
	rows, err := f.GetRows("Resumo Financeiro")
	require.NoError(t, err)
	var found bool
	for _, row := range rows {
		for _, cell := range row {
			if cell == "15/02/2024" {
				found = true
			}
		}
	}
	assert.True(t, found, "sale date should render as dd/mm/yyyy")
}

func TestWorkbookRenderer_HerdDetails(t *testing.T) {
	list := domain.List{
		Columns: []string{"Tag", "Nome", "Status"},
		Rows: []domain.Row{
			{"Tag": "BR-001", "Nome": "Mimosa", "Status": "ativo"},
		},
	}

	r := NewWorkbookRenderer()
	r.now = fixedClock(t)

	artifact, err := r.RenderHerdDetails(list)
	require.NoError(t, err)
	assert.Equal(t, "Detalhes_dos_Animais_2024-03-01.xlsx", artifact.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Bytes))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Animais", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Detalhes dos Animais", title)

	tag, err := f.GetCellValue("Animais", "A5")
	require.NoError(t, err)
	assert.Equal(t, "BR-001", tag)
}
