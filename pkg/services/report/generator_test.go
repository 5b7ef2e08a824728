package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/domain"
	"github.com/agro-tools/ranch-atlas/pkg/models/store"
	"github.com/agro-tools/ranch-atlas/pkg/store/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) PreviewCounts(ctx context.Context, startDate, endDate time.Time) (store.PreviewCounts, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(store.PreviewCounts), args.Error(1)
}

func (m *mockStore) BirthStats(ctx context.Context, startDate, endDate time.Time) (store.BirthStats, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(store.BirthStats), args.Error(1)
}

func (m *mockStore) DeathCount(ctx context.Context, startDate, endDate time.Time) (int64, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) SaleTotals(ctx context.Context, startDate, endDate time.Time) (store.PeriodTotals, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(store.PeriodTotals), args.Error(1)
}

func (m *mockStore) CostTotals(ctx context.Context, startDate, endDate time.Time) (store.PeriodTotals, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(store.PeriodTotals), args.Error(1)
}

func (m *mockStore) FinancialTotals(ctx context.Context, startDate, endDate time.Time) (store.FinancialTotals, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(store.FinancialTotals), args.Error(1)
}

func (m *mockStore) BreedingStats(ctx context.Context, startDate, endDate time.Time) (store.BreedingStats, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).(store.BreedingStats), args.Error(1)
}

func (m *mockStore) InventoryStats(ctx context.Context) (store.InventoryStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(store.InventoryStats), args.Error(1)
}

func (m *mockStore) BirthsByMonth(ctx context.Context, startDate, endDate time.Time) ([]store.MonthlyBirthCount, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).([]store.MonthlyBirthCount), args.Error(1)
}

func (m *mockStore) BirthsByBreed(ctx context.Context, startDate, endDate time.Time) ([]store.BreedCount, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).([]store.BreedCount), args.Error(1)
}

func (m *mockStore) ActivePregnancies(ctx context.Context, startDate, endDate time.Time) ([]store.Pregnancy, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).([]store.Pregnancy), args.Error(1)
}

func (m *mockStore) SemenUsage(ctx context.Context, startDate, endDate time.Time) ([]store.SemenUsage, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).([]store.SemenUsage), args.Error(1)
}

func (m *mockStore) SemenStock(ctx context.Context) ([]store.SemenStock, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.SemenStock), args.Error(1)
}

func (m *mockStore) CostsByCategory(ctx context.Context, startDate, endDate time.Time) ([]store.CostByCategory, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).([]store.CostByCategory), args.Error(1)
}

func (m *mockStore) Sales(ctx context.Context, startDate, endDate time.Time) ([]store.Sale, error) {
	args := m.Called(ctx, startDate, endDate)
	return args.Get(0).([]store.Sale), args.Error(1)
}

func (m *mockStore) LocationCounts(ctx context.Context) ([]store.LocationCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.LocationCount), args.Error(1)
}

func (m *mockStore) AnimalsByLocation(ctx context.Context) ([]store.AnimalRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.AnimalRow), args.Error(1)
}

func (m *mockStore) AnimalsDetailed(ctx context.Context) ([]store.AnimalDetail, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.AnimalDetail), args.Error(1)
}

func januaryPeriod(t *testing.T) domain.Period {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2024-01-01")
	require.NoError(t, err)
	end, err := time.Parse("2006-01-02", "2024-01-31")
	require.NoError(t, err)
	return domain.Period{Start: start, End: end}
}

func setupMonthlySummary(m *mockStore, p domain.Period) {
	m.On("BirthStats", mock.Anything, p.Start, p.End).
		Return(store.BirthStats{Total: 10, Males: 6, Females: 4, AvgWeight: 32.5}, nil)
	m.On("DeathCount", mock.Anything, p.Start, p.End).
		Return(int64(1), nil)
	m.On("SaleTotals", mock.Anything, p.Start, p.End).
		Return(store.PeriodTotals{Total: 3, Value: decimal.NewFromFloat(4500.50)}, nil)
	m.On("CostTotals", mock.Anything, p.Start, p.End).
		Return(store.PeriodTotals{Total: 7, Value: decimal.NewFromFloat(1280.00)}, nil)
}

func TestGenerator_PayloadContainsExactlyRequestedTypes(t *testing.T) {
	m := new(mockStore)
	p := januaryPeriod(t)
	setupMonthlySummary(m, p)
	m.On("BirthsByMonth", mock.Anything, p.Start, p.End).
		Return([]store.MonthlyBirthCount{{Month: p.Start, Total: 10}}, nil)
	m.On("BirthsByBreed", mock.Anything, p.Start, p.End).
		Return([]store.BreedCount{{Breed: "Nelore", Total: 8}, {Breed: "Angus", Total: 2}}, nil)

	g := NewGenerator(m, cache.NewNoop(), 0)
	payload, err := g.Generate(context.Background(), domain.ReportRequest{
		Types:  []domain.ReportType{domain.MonthlySummary, domain.BirthsAnalysis},
		Period: p,
	})

	require.NoError(t, err)
	assert.Len(t, payload, 2)
	assert.Contains(t, payload, domain.MonthlySummary)
	assert.Contains(t, payload, domain.BirthsAnalysis)
	assert.NotContains(t, payload, domain.FinancialSummary)

	monthly := payload[domain.MonthlySummary]
	assert.Len(t, monthly, 4)
	for _, name := range domain.MonthlySummary.SectionOrder() {
		assert.Contains(t, monthly, name)
	}

	m.AssertExpectations(t)
}

func TestGenerator_MonthlySummaryTotals(t *testing.T) {
	m := new(mockStore)
	p := januaryPeriod(t)
	setupMonthlySummary(m, p)

	g := NewGenerator(m, cache.NewNoop(), 0)
	payload, err := g.Generate(context.Background(), domain.ReportRequest{
		Types:  []domain.ReportType{domain.MonthlySummary},
		Period: p,
	})
	require.NoError(t, err)

	births, ok := payload[domain.MonthlySummary]["nascimentos"].(domain.Aggregate)
	require.True(t, ok)
	assert.Equal(t, int64(10), births["Total"])

	sales, ok := payload[domain.MonthlySummary]["vendas"].(domain.Aggregate)
	require.True(t, ok)
	assert.Equal(t, int64(3), sales["Total"])
	assert.InDelta(t, 4500.50, sales["Valor Total (R$)"], 0.001)
}

func TestGenerator_DisabledSectionIsOmitted(t *testing.T) {
	m := new(mockStore)
	p := januaryPeriod(t)
	m.On("BirthStats", mock.Anything, p.Start, p.End).
		Return(store.BirthStats{Total: 2}, nil)
	m.On("SaleTotals", mock.Anything, p.Start, p.End).
		Return(store.PeriodTotals{}, nil)
	m.On("CostTotals", mock.Anything, p.Start, p.End).
		Return(store.PeriodTotals{}, nil)

	g := NewGenerator(m, cache.NewNoop(), 0)
	payload, err := g.Generate(context.Background(), domain.ReportRequest{
		Types:  []domain.ReportType{domain.MonthlySummary},
		Period: p,
		Sections: domain.Toggles{
			domain.MonthlySummary: {"mortes": false},
		},
	})
	require.NoError(t, err)

	monthly := payload[domain.MonthlySummary]
	assert.NotContains(t, monthly, "mortes")
	assert.Contains(t, monthly, "nascimentos")
	assert.Contains(t, monthly, "vendas")
	assert.Contains(t, monthly, "custos")

	m.AssertNotCalled(t, "DeathCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerator_FailingSectionDegradesTypeOnly(t *testing.T) {
	m := new(mockStore)
	p := januaryPeriod(t)
	m.On("BirthStats", mock.Anything, p.Start, p.End).
		Return(store.BirthStats{Total: 10}, nil)
	m.On("DeathCount", mock.Anything, p.Start, p.End).
		Return(int64(0), nil)
	m.On("SaleTotals", mock.Anything, p.Start, p.End).
		Return(store.PeriodTotals{}, errors.New("relation sales does not exist"))
	m.On("InventoryStats", mock.Anything).
		Return(store.InventoryStats{Bulls: 4, DosesAvailable: 120, StockValue: decimal.NewFromInt(6000)}, nil)
	m.On("SemenStock", mock.Anything).
		Return([]store.SemenStock{{Bull: "Sultão", Breed: "Nelore", DosesAvailable: 30, Value: decimal.NewFromInt(50)}}, nil)

	g := NewGenerator(m, cache.NewNoop(), 0)
	payload, err := g.Generate(context.Background(), domain.ReportRequest{
		Types:  []domain.ReportType{domain.MonthlySummary, domain.InventoryReport},
		Period: p,
	})
	require.NoError(t, err)

	assert.Len(t, payload, 2)
	assert.Empty(t, payload[domain.MonthlySummary])
	assert.NotNil(t, payload[domain.MonthlySummary])
	assert.Len(t, payload[domain.InventoryReport], 2)
}

func TestGenerator_PreviewShapeAndCaching(t *testing.T) {
	m := new(mockStore)
	p := januaryPeriod(t)
	m.On("PreviewCounts", mock.Anything, p.Start, p.End).
		Return(store.PreviewCounts{TotalAnimals: 150, Births: 10, Deaths: 1, Sales: 3}, nil).
		Once()

	g := NewGenerator(m, cache.NewMemory(time.Minute), time.Minute)

	for i := 0; i < 2; i++ {
		preview, err := g.Preview(context.Background(), p)
		require.NoError(t, err)
		assert.Equal(t, 150, preview.TotalAnimals)
		assert.Equal(t, 10, preview.Births)
		assert.Equal(t, 1, preview.Deaths)
		assert.Equal(t, 3, preview.Sales)
		assert.GreaterOrEqual(t, preview.TotalAnimals, 0)
	}

	m.AssertExpectations(t)
}

func TestGenerator_IdempotentForStableData(t *testing.T) {
	m := new(mockStore)
	p := januaryPeriod(t)
	setupMonthlySummary(m, p)

	g := NewGenerator(m, cache.NewNoop(), 0)
	req := domain.ReportRequest{Types: []domain.ReportType{domain.MonthlySummary}, Period: p}

	first, err := g.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerator_AnimalsDetailed(t *testing.T) {
	m := new(mockStore)
	m.On("AnimalsDetailed", mock.Anything).
		Return([]store.AnimalDetail{
			{Tag: "BR-001", Sex: "F", Status: "ativo"},
			{Tag: "BR-002", Sex: "M", Status: "morto"},
		}, nil)

	g := NewGenerator(m, cache.NewNoop(), 0)
	list, err := g.AnimalsDetailed(context.Background())
	require.NoError(t, err)

	assert.Len(t, list.Rows, 2)
	assert.Equal(t, "BR-001", list.Rows[0]["Tag"])
	assert.Contains(t, list.Columns, "Data da Morte")
}
