package domain

import "time"

// ReportType identifies one of the fixed report batteries.
type ReportType string

const (
	MonthlySummary   ReportType = "monthly_summary"
	BirthsAnalysis   ReportType = "births_analysis"
	BreedingReport   ReportType = "breeding_report"
	FinancialSummary ReportType = "financial_summary"
	InventoryReport  ReportType = "inventory_report"
	LocationReport   ReportType = "location_report"
)

// AllReportTypes returns the closed report catalog in presentation order.
func AllReportTypes() []ReportType {
	return []ReportType{
		MonthlySummary,
		BirthsAnalysis,
		BreedingReport,
		FinancialSummary,
		InventoryReport,
		LocationReport,
	}
}

func (t ReportType) Valid() bool {
	switch t {
	case MonthlySummary, BirthsAnalysis, BreedingReport,
		FinancialSummary, InventoryReport, LocationReport:
		return true
	}
	return false
}

// DisplayName is the human-readable title used in rendered artifacts.
func (t ReportType) DisplayName() string {
	switch t {
	case MonthlySummary:
		return "Resumo Mensal"
	case BirthsAnalysis:
		return "Análise de Nascimentos"
	case BreedingReport:
		return "Relatório de Reprodução"
	case FinancialSummary:
		return "Resumo Financeiro"
	case InventoryReport:
		return "Relatório de Estoque"
	case LocationReport:
		return "Relatório de Localização"
	}
	return string(t)
}

// Slug is the accent-free abbreviation used when composing filenames.
func (t ReportType) Slug() string {
	switch t {
	case MonthlySummary:
		return "Resumo-Mensal"
	case BirthsAnalysis:
		return "Analise-Nascimentos"
	case BreedingReport:
		return "Relatorio-Reproducao"
	case FinancialSummary:
		return "Resumo-Financeiro"
	case InventoryReport:
		return "Relatorio-Estoque"
	case LocationReport:
		return "Relatorio-Localizacao"
	}
	return string(t)
}

// SectionOrder lists a report type's section names in the order the
// renderers emit them. Aggregation output is keyed by these names.
func (t ReportType) SectionOrder() []string {
	switch t {
	case MonthlySummary:
		return []string{"nascimentos", "mortes", "vendas", "custos"}
	case BirthsAnalysis:
		return []string{"resumo", "por_mes", "por_raca"}
	case BreedingReport:
		return []string{"resumo", "gestacoes", "uso_semen"}
	case FinancialSummary:
		return []string{"resumo", "por_categoria", "vendas"}
	case InventoryReport:
		return []string{"resumo", "estoque_semen"}
	case LocationReport:
		return []string{"resumo", "por_localizacao", "animais"}
	}
	return nil
}

// SectionTitle is the Portuguese heading used for a section in rendered output.
func SectionTitle(name string) string {
	switch name {
	case "nascimentos":
		return "Nascimentos"
	case "mortes":
		return "Mortes"
	case "vendas":
		return "Vendas"
	case "custos":
		return "Custos"
	case "resumo":
		return "Resumo"
	case "por_mes":
		return "Por Mês"
	case "por_raca":
		return "Por Raça"
	case "gestacoes":
		return "Gestações"
	case "uso_semen":
		return "Uso de Sêmen"
	case "por_categoria":
		return "Por Categoria"
	case "por_localizacao":
		return "Por Localização"
	case "animais":
		return "Animais"
	}
	return name
}

// Period is an inclusive calendar-date range scoping every section query.
type Period struct {
	Start time.Time
	End   time.Time
}

func (p Period) Valid() bool {
	return !p.Start.IsZero() && !p.End.IsZero() && !p.Start.After(p.End)
}

// String renders the range the way artifacts print it.
func (p Period) String() string {
	return p.Start.Format("02/01/2006") + " a " + p.End.Format("02/01/2006")
}

// Section is the tagged result of one section battery: either a single
// aggregate record or an ordered list of rows. Exactly one arm is set.
type Section interface {
	isSection()
}

// Aggregate is a single record of derived metrics keyed by label.
type Aggregate map[string]any

func (Aggregate) isSection() {}

// Row is one listing record keyed by column label.
type Row map[string]any

// List is an ordered sequence of rows with a fixed column order.
type List struct {
	Columns []string
	Rows    []Row
}

func (List) isSection() {}

// SectionMap holds a report type's sections keyed by section name.
type SectionMap map[string]Section

// Payload is the aggregation result for one request. It is built fresh per
// request and never persisted.
type Payload map[ReportType]SectionMap

// Toggles is the per-type section enable/disable map. Missing entries mean
// enabled; a section is skipped only when explicitly false.
type Toggles map[ReportType]map[string]bool

func (t Toggles) Enabled(rt ReportType, section string) bool {
	sections, ok := t[rt]
	if !ok {
		return true
	}
	enabled, ok := sections[section]
	if !ok {
		return true
	}
	return enabled
}

// ReportRequest describes one aggregation run.
type ReportRequest struct {
	Types    []ReportType
	Period   Period
	Sections Toggles
}

// Preview carries the four headline counters shown before full generation.
type Preview struct {
	TotalAnimals int
	Births       int
	Deaths       int
	Sales        int
}

// Artifact is a rendered binary output owned by a single response cycle.
type Artifact struct {
	Bytes    []byte
	MIME     string
	Filename string
}
