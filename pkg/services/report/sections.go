package report

import (
	"context"

	"github.com/agro-tools/ranch-atlas/pkg/adapters"
	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
)

// Section builders below run one report type's battery. Disabled sections
// are skipped entirely; their keys never appear in the result.

func (g *generator) monthlySummary(ctx context.Context, req domain.ReportRequest) (domain.SectionMap, error) {
	sections := domain.SectionMap{}
	p := req.Period

	if req.Sections.Enabled(domain.MonthlySummary, "nascimentos") {
		stats, err := g.store.BirthStats(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["nascimentos"] = adapters.MapBirthStatsToAggregate(stats)
	}

	if req.Sections.Enabled(domain.MonthlySummary, "mortes") {
		total, err := g.store.DeathCount(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["mortes"] = adapters.MapDeathCountToAggregate(total)
	}

	if req.Sections.Enabled(domain.MonthlySummary, "vendas") {
		totals, err := g.store.SaleTotals(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["vendas"] = adapters.MapPeriodTotalsToAggregate(totals)
	}

	if req.Sections.Enabled(domain.MonthlySummary, "custos") {
		totals, err := g.store.CostTotals(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["custos"] = adapters.MapPeriodTotalsToAggregate(totals)
	}

	return sections, nil
}

func (g *generator) birthsAnalysis(ctx context.Context, req domain.ReportRequest) (domain.SectionMap, error) {
	sections := domain.SectionMap{}
	p := req.Period

	if req.Sections.Enabled(domain.BirthsAnalysis, "resumo") {
		stats, err := g.store.BirthStats(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["resumo"] = adapters.MapBirthStatsToAggregate(stats)
	}

	if req.Sections.Enabled(domain.BirthsAnalysis, "por_mes") {
		rows, err := g.store.BirthsByMonth(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["por_mes"] = adapters.MapMonthlyBirthsToList(rows)
	}

	if req.Sections.Enabled(domain.BirthsAnalysis, "por_raca") {
		rows, err := g.store.BirthsByBreed(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["por_raca"] = adapters.MapBreedCountsToList(rows)
	}

	return sections, nil
}

func (g *generator) breedingReport(ctx context.Context, req domain.ReportRequest) (domain.SectionMap, error) {
	sections := domain.SectionMap{}
	p := req.Period

	if req.Sections.Enabled(domain.BreedingReport, "resumo") {
		stats, err := g.store.BreedingStats(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["resumo"] = adapters.MapBreedingStatsToAggregate(stats)
	}

	if req.Sections.Enabled(domain.BreedingReport, "gestacoes") {
		rows, err := g.store.ActivePregnancies(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["gestacoes"] = adapters.MapPregnanciesToList(rows)
	}

	if req.Sections.Enabled(domain.BreedingReport, "uso_semen") {
		rows, err := g.store.SemenUsage(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["uso_semen"] = adapters.MapSemenUsageToList(rows)
	}

	return sections, nil
}

func (g *generator) financialSummary(ctx context.Context, req domain.ReportRequest) (domain.SectionMap, error) {
	sections := domain.SectionMap{}
	p := req.Period

	if req.Sections.Enabled(domain.FinancialSummary, "resumo") {
		totals, err := g.store.FinancialTotals(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["resumo"] = adapters.MapFinancialTotalsToAggregate(totals)
	}

	if req.Sections.Enabled(domain.FinancialSummary, "por_categoria") {
		rows, err := g.store.CostsByCategory(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["por_categoria"] = adapters.MapCostsByCategoryToList(rows)
	}

	if req.Sections.Enabled(domain.FinancialSummary, "vendas") {
		rows, err := g.store.Sales(ctx, p.Start, p.End)
		if err != nil {
			return nil, err
		}
		sections["vendas"] = adapters.MapSalesToList(rows)
	}

	return sections, nil
}

func (g *generator) inventoryReport(ctx context.Context, req domain.ReportRequest) (domain.SectionMap, error) {
	sections := domain.SectionMap{}

	if req.Sections.Enabled(domain.InventoryReport, "resumo") {
		stats, err := g.store.InventoryStats(ctx)
		if err != nil {
			return nil, err
		}
		sections["resumo"] = adapters.MapInventoryStatsToAggregate(stats)
	}

	if req.Sections.Enabled(domain.InventoryReport, "estoque_semen") {
		rows, err := g.store.SemenStock(ctx)
		if err != nil {
			return nil, err
		}
		sections["estoque_semen"] = adapters.MapSemenStockToList(rows)
	}

	return sections, nil
}

func (g *generator) locationReport(ctx context.Context, req domain.ReportRequest) (domain.SectionMap, error) {
	sections := domain.SectionMap{}

	if req.Sections.Enabled(domain.LocationReport, "resumo") {
		counts, err := g.store.LocationCounts(ctx)
		if err != nil {
			return nil, err
		}
		var animals int64
		for _, c := range counts {
			animals += c.Total
		}
		sections["resumo"] = domain.Aggregate{
			"Localizações":   int64(len(counts)),
			"Animais Ativos": animals,
		}
	}

	if req.Sections.Enabled(domain.LocationReport, "por_localizacao") {
		rows, err := g.store.LocationCounts(ctx)
		if err != nil {
			return nil, err
		}
		sections["por_localizacao"] = adapters.MapLocationCountsToList(rows)
	}

	if req.Sections.Enabled(domain.LocationReport, "animais") {
		rows, err := g.store.AnimalsByLocation(ctx)
		if err != nil {
			return nil, err
		}
		sections["animais"] = adapters.MapAnimalsToList(rows)
	}

	return sections, nil
}
