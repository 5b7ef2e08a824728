package adapters

import (
	"database/sql"

	"github.com/agro-tools/ranch-atlas/pkg/models/api"
	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/agro-tools/ranch-atlas/pkg/models/store"
)

func MapBirthStatsToAggregate(s store.BirthStats) domain.Aggregate {
	return domain.Aggregate{
		"Total":           s.Total,
		"Machos":          s.Males,
		"Fêmeas":          s.Females,
		"Peso Médio (kg)": s.AvgWeight,
	}
}

func MapDeathCountToAggregate(total int64) domain.Aggregate {
	return domain.Aggregate{
		"Total": total,
	}
}

func MapPeriodTotalsToAggregate(s store.PeriodTotals) domain.Aggregate {
	return domain.Aggregate{
		"Total":            s.Total,
		"Valor Total (R$)": s.Value.InexactFloat64(),
	}
}

func MapFinancialTotalsToAggregate(s store.FinancialTotals) domain.Aggregate {
	return domain.Aggregate{
		"Custo Total (R$)":   s.TotalCost.InexactFloat64(),
		"Receita Total (R$)": s.TotalRevenue.InexactFloat64(),
		"Saldo (R$)":         s.TotalRevenue.Sub(s.TotalCost).InexactFloat64(),
	}
}

func MapBreedingStatsToAggregate(s store.BreedingStats) domain.Aggregate {
	return domain.Aggregate{
		"Gestações Ativas": s.ActivePregnancies,
		"Doses Utilizadas": s.DosesUsed,
	}
}

func MapInventoryStatsToAggregate(s store.InventoryStats) domain.Aggregate {
	return domain.Aggregate{
		"Touros":                s.Bulls,
		"Doses Disponíveis":     s.DosesAvailable,
		"Valor em Estoque (R$)": s.StockValue.InexactFloat64(),
	}
}

func MapMonthlyBirthsToList(rows []store.MonthlyBirthCount) domain.List {
	list := domain.List{Columns: []string{"Mês", "Total"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Mês":   r.Month.Format("01/2006"),
			"Total": r.Total,
		})
	}
	return list
}

func MapBreedCountsToList(rows []store.BreedCount) domain.List {
	list := domain.List{Columns: []string{"Raça", "Total"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Raça":  r.Breed,
			"Total": r.Total,
		})
	}
	return list
}

func MapPregnanciesToList(rows []store.Pregnancy) domain.List {
	list := domain.List{Columns: []string{"Vaca", "Touro", "Data Cobertura", "Previsão de Parto", "Status"}}
	for _, r := range rows {
		row := domain.Row{
			"Vaca":           r.CowTag,
			"Touro":          r.Bull,
			"Data Cobertura": r.CoverageDate,
			"Status":         r.Status,
		}
		if r.DueDate.Valid {
			row["Previsão de Parto"] = r.DueDate.Time
		} else {
			row["Previsão de Parto"] = ""
		}
		list.Rows = append(list.Rows, row)
	}
	return list
}

func MapSemenUsageToList(rows []store.SemenUsage) domain.List {
	list := domain.List{Columns: []string{"Touro", "Doses Utilizadas"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Touro":            r.Bull,
			"Doses Utilizadas": r.DosesUsed,
		})
	}
	return list
}

func MapSemenStockToList(rows []store.SemenStock) domain.List {
	list := domain.List{Columns: []string{"Touro", "Raça", "Doses Disponíveis", "Valor (R$)"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Touro":             r.Bull,
			"Raça":              r.Breed,
			"Doses Disponíveis": r.DosesAvailable,
			"Valor (R$)":        r.Value.InexactFloat64(),
		})
	}
	return list
}

func MapCostsByCategoryToList(rows []store.CostByCategory) domain.List {
	list := domain.List{Columns: []string{"Categoria", "Lançamentos", "Valor (R$)"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Categoria":   r.Category,
			"Lançamentos": r.Entries,
			"Valor (R$)":  r.Value.InexactFloat64(),
		})
	}
	return list
}

func MapSalesToList(rows []store.Sale) domain.List {
	list := domain.List{Columns: []string{"Data", "Animal", "Comprador", "Valor (R$)"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Data":       r.Date,
			"Animal":     r.Tag,
			"Comprador":  r.Buyer,
			"Valor (R$)": r.Value.InexactFloat64(),
		})
	}
	return list
}

func MapLocationCountsToList(rows []store.LocationCount) domain.List {
	list := domain.List{Columns: []string{"Localização", "Total"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Localização": r.Location,
			"Total":       r.Total,
		})
	}
	return list
}

func MapAnimalsToList(rows []store.AnimalRow) domain.List {
	list := domain.List{Columns: []string{"Tag", "Nome", "Localização", "Status"}}
	for _, r := range rows {
		list.Rows = append(list.Rows, domain.Row{
			"Tag":         r.Tag,
			"Nome":        nullString(r.Name),
			"Localização": nullString(r.Location),
			"Status":      r.Status,
		})
	}
	return list
}

func MapAnimalsDetailedToList(rows []store.AnimalDetail) domain.List {
	list := domain.List{Columns: []string{
		"Tag", "Nome", "Raça", "Sexo", "Data de Nascimento",
		"Peso (kg)", "Localização", "Status", "Data da Morte", "Causa da Morte",
	}}
	for _, r := range rows {
		row := domain.Row{
			"Tag":            r.Tag,
			"Nome":           nullString(r.Name),
			"Raça":           nullString(r.Breed),
			"Sexo":           r.Sex,
			"Localização":    nullString(r.Location),
			"Status":         r.Status,
			"Causa da Morte": nullString(r.DeathCause),
		}
		if r.BirthDate.Valid {
			row["Data de Nascimento"] = r.BirthDate.Time
		} else {
			row["Data de Nascimento"] = ""
		}
		if r.Weight.Valid {
			row["Peso (kg)"] = r.Weight.Float64
		} else {
			row["Peso (kg)"] = ""
		}
		if r.DeathDate.Valid {
			row["Data da Morte"] = r.DeathDate.Time
		} else {
			row["Data da Morte"] = ""
		}
		list.Rows = append(list.Rows, row)
	}
	return list
}

func MapPreviewStoreToDomain(s store.PreviewCounts) domain.Preview {
	return domain.Preview{
		TotalAnimals: int(s.TotalAnimals),
		Births:       int(s.Births),
		Deaths:       int(s.Deaths),
		Sales:        int(s.Sales),
	}
}

func MapPreviewDomainToAPI(p domain.Preview) api.PreviewData {
	return api.PreviewData{
		TotalAnimals: p.TotalAnimals,
		Births:       p.Births,
		Deaths:       p.Deaths,
		Sales:        p.Sales,
	}
}

// MapPayloadDomainToAPI flattens a payload for the JSON response: aggregate
// sections become objects, list sections become arrays of row objects.
func MapPayloadDomainToAPI(payload domain.Payload) map[string]any {
	out := make(map[string]any, len(payload))
	for rt, sections := range payload {
		entry := make(map[string]any, len(sections))
		for name, section := range sections {
			switch s := section.(type) {
			case domain.Aggregate:
				entry[name] = map[string]any(s)
			case domain.List:
				rows := make([]map[string]any, 0, len(s.Rows))
				for _, r := range s.Rows {
					rows = append(rows, map[string]any(r))
				}
				entry[name] = rows
			}
		}
		out[string(rt)] = entry
	}
	return out
}

func nullString(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}
