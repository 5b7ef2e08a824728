package report

import (
	"context"
	"fmt"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/adapters"
	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/agro-tools/ranch-atlas/pkg/store/cache"
	"github.com/agro-tools/ranch-atlas/pkg/store/ranch"
	"github.com/rs/zerolog"
)

// Generator runs the fixed query battery for the requested report types and
// assembles the per-section payload consumed by the renderers.
type Generator interface {
	Generate(ctx context.Context, req domain.ReportRequest) (domain.Payload, error)
	Preview(ctx context.Context, period domain.Period) (domain.Preview, error)
	AnimalsDetailed(ctx context.Context) (domain.List, error)
}

type generator struct {
	store      ranch.Store
	cache      cache.Cache
	previewTTL time.Duration
}

func NewGenerator(store ranch.Store, c cache.Cache, previewTTL time.Duration) Generator {
	if c == nil {
		c = cache.NewNoop()
	}
	return &generator{
		store:      store,
		cache:      c,
		previewTTL: previewTTL,
	}
}

// Generate builds one section map per requested type. A failing section
// degrades its report type to an empty map instead of failing the request;
// sibling types are unaffected.
func (g *generator) Generate(ctx context.Context, req domain.ReportRequest) (domain.Payload, error) {
	logger := zerolog.Ctx(ctx)
	payload := make(domain.Payload, len(req.Types))

	for _, rt := range req.Types {
		sections, err := g.collect(ctx, rt, req)
		if err != nil {
			logger.Error().
				Err(err).
				Str("report_type", string(rt)).
				Msg("section query failed, degrading report type to empty result")
			payload[rt] = domain.SectionMap{}
			continue
		}
		payload[rt] = sections
	}

	return payload, nil
}

func (g *generator) collect(ctx context.Context, rt domain.ReportType, req domain.ReportRequest) (domain.SectionMap, error) {
	switch rt {
	case domain.MonthlySummary:
		return g.monthlySummary(ctx, req)
	case domain.BirthsAnalysis:
		return g.birthsAnalysis(ctx, req)
	case domain.BreedingReport:
		return g.breedingReport(ctx, req)
	case domain.FinancialSummary:
		return g.financialSummary(ctx, req)
	case domain.InventoryReport:
		return g.inventoryReport(ctx, req)
	case domain.LocationReport:
		return g.locationReport(ctx, req)
	}
	return nil, fmt.Errorf("unknown report type %q", rt)
}

// Preview returns the four headline counters for a period. Results are held
// in the injected cache for the configured TTL; the full generation path is
// never cached.
func (g *generator) Preview(ctx context.Context, period domain.Period) (domain.Preview, error) {
	key := cache.PreviewKey(period)
	if cached, ok := g.cache.Get(key); ok {
		if preview, ok := cached.(domain.Preview); ok {
			return preview, nil
		}
	}

	counts, err := g.store.PreviewCounts(ctx, period.Start, period.End)
	if err != nil {
		return domain.Preview{}, fmt.Errorf("preview counts: %w", err)
	}

	preview := adapters.MapPreviewStoreToDomain(counts)
	g.cache.Set(key, preview, g.previewTTL)
	return preview, nil
}

// AnimalsDetailed returns the full herd listing merged with death records,
// used by the detailed export endpoint.
func (g *generator) AnimalsDetailed(ctx context.Context) (domain.List, error) {
	records, err := g.store.AnimalsDetailed(ctx)
	if err != nil {
		return domain.List{}, fmt.Errorf("animals detailed: %w", err)
	}
	return adapters.MapAnimalsDetailedToList(records), nil
}
