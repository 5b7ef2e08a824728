package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod() domain.Period {
	return domain.Period{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestReporter_HandlePreview(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := r.HandlePreview(testPeriod(), domain.Preview{
		TotalAnimals: 120,
		Births:       10,
		Deaths:       1,
		Sales:        3,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Prévia do Relatório")
	assert.Contains(t, out, "Período: 01/01/2024 a 31/01/2024")
	assert.Contains(t, out, "Total de Animais")
	assert.Contains(t, out, "120")
}

func TestReporter_HandlePayload(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	payload := domain.Payload{
		domain.MonthlySummary: domain.SectionMap{
			"nascimentos": domain.Aggregate{"Total": int64(10)},
		},
		domain.LocationReport: domain.SectionMap{
			"animais": domain.List{
				Columns: []string{"Tag"},
				Rows:    []domain.Row{{"Tag": "BR-001"}, {"Tag": "BR-002"}},
			},
		},
	}

	err := r.HandlePayload(testPeriod(), []domain.ReportType{domain.MonthlySummary, domain.LocationReport}, payload)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "=== Resumo Mensal ===")
	assert.Contains(t, out, "Nascimentos / Total")
	assert.Contains(t, out, "=== Relatório de Localização ===")
	// Lists print as row counts; full listings live in the artifacts.
	assert.Contains(t, out, "2 registros")
	assert.NotContains(t, out, "BR-001")
}
