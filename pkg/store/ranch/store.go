package ranch

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/agro-tools/ranch-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

// Store is the read-only query battery behind the report aggregator. Every
// method scopes to an inclusive date range where one applies; aggregates are
// null-safe via COALESCE.
type Store interface {
	PreviewCounts(ctx context.Context, startDate, endDate time.Time) (store.PreviewCounts, error)
	BirthStats(ctx context.Context, startDate, endDate time.Time) (store.BirthStats, error)
	DeathCount(ctx context.Context, startDate, endDate time.Time) (int64, error)
	SaleTotals(ctx context.Context, startDate, endDate time.Time) (store.PeriodTotals, error)
	CostTotals(ctx context.Context, startDate, endDate time.Time) (store.PeriodTotals, error)
	FinancialTotals(ctx context.Context, startDate, endDate time.Time) (store.FinancialTotals, error)
	BreedingStats(ctx context.Context, startDate, endDate time.Time) (store.BreedingStats, error)
	InventoryStats(ctx context.Context) (store.InventoryStats, error)
	BirthsByMonth(ctx context.Context, startDate, endDate time.Time) ([]store.MonthlyBirthCount, error)
	BirthsByBreed(ctx context.Context, startDate, endDate time.Time) ([]store.BreedCount, error)
	ActivePregnancies(ctx context.Context, startDate, endDate time.Time) ([]store.Pregnancy, error)
	SemenUsage(ctx context.Context, startDate, endDate time.Time) ([]store.SemenUsage, error)
	SemenStock(ctx context.Context) ([]store.SemenStock, error)
	CostsByCategory(ctx context.Context, startDate, endDate time.Time) ([]store.CostByCategory, error)
	Sales(ctx context.Context, startDate, endDate time.Time) ([]store.Sale, error)
	LocationCounts(ctx context.Context) ([]store.LocationCount, error)
	AnimalsByLocation(ctx context.Context) ([]store.AnimalRow, error)
	AnimalsDetailed(ctx context.Context) ([]store.AnimalDetail, error)
}

type ranchStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &ranchStore{db: db}, nil
}

func (r *ranchStore) PreviewCounts(ctx context.Context, startDate, endDate time.Time) (store.PreviewCounts, error) {
	var counts store.PreviewCounts

	queries := []struct {
		query  string
		scoped bool
		dest   *int64
	}{
		{`SELECT COUNT(*) FROM animals`, false, &counts.TotalAnimals},
		{`SELECT COUNT(*) FROM births WHERE birth_date BETWEEN $1 AND $2`, true, &counts.Births},
		{`SELECT COUNT(*) FROM deaths WHERE death_date BETWEEN $1 AND $2`, true, &counts.Deaths},
		{`SELECT COUNT(*) FROM sales WHERE sale_date BETWEEN $1 AND $2`, true, &counts.Sales},
	}

	for _, q := range queries {
		var err error
		if q.scoped {
			err = r.db.QueryRowContext(ctx, q.query, startDate, endDate).Scan(q.dest)
		} else {
			err = r.db.QueryRowContext(ctx, q.query).Scan(q.dest)
		}
		if err != nil {
			return store.PreviewCounts{}, fmt.Errorf("preview counts: %w", err)
		}
	}

	return counts, nil
}

func (r *ranchStore) BirthStats(ctx context.Context, startDate, endDate time.Time) (store.BirthStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE sex = 'M') AS males,
			COUNT(*) FILTER (WHERE sex = 'F') AS females,
			COALESCE(AVG(birth_weight), 0) AS avg_weight
		FROM births
		WHERE birth_date BETWEEN $1 AND $2`

	var stats store.BirthStats
	err := r.db.QueryRowContext(ctx, query, startDate, endDate).
		Scan(&stats.Total, &stats.Males, &stats.Females, &stats.AvgWeight)
	if err != nil {
		return store.BirthStats{}, fmt.Errorf("birth stats: %w", err)
	}
	return stats, nil
}

func (r *ranchStore) DeathCount(ctx context.Context, startDate, endDate time.Time) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deaths WHERE death_date BETWEEN $1 AND $2`,
		startDate, endDate).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("death count: %w", err)
	}
	return total, nil
}

func (r *ranchStore) SaleTotals(ctx context.Context, startDate, endDate time.Time) (store.PeriodTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(sale_value), 0)
		FROM sales
		WHERE sale_date BETWEEN $1 AND $2`

	var totals store.PeriodTotals
	err := r.db.QueryRowContext(ctx, query, startDate, endDate).
		Scan(&totals.Total, &totals.Value)
	if err != nil {
		return store.PeriodTotals{}, fmt.Errorf("sale totals: %w", err)
	}
	return totals, nil
}

func (r *ranchStore) CostTotals(ctx context.Context, startDate, endDate time.Time) (store.PeriodTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM costs
		WHERE cost_date BETWEEN $1 AND $2`

	var totals store.PeriodTotals
	err := r.db.QueryRowContext(ctx, query, startDate, endDate).
		Scan(&totals.Total, &totals.Value)
	if err != nil {
		return store.PeriodTotals{}, fmt.Errorf("cost totals: %w", err)
	}
	return totals, nil
}

func (r *ranchStore) FinancialTotals(ctx context.Context, startDate, endDate time.Time) (store.FinancialTotals, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(amount) FROM costs WHERE cost_date BETWEEN $1 AND $2), 0) AS total_cost,
			COALESCE((SELECT SUM(sale_value) FROM sales WHERE sale_date BETWEEN $1 AND $2), 0) AS total_revenue`

	var totals store.FinancialTotals
	err := r.db.QueryRowContext(ctx, query, startDate, endDate).
		Scan(&totals.TotalCost, &totals.TotalRevenue)
	if err != nil {
		return store.FinancialTotals{}, fmt.Errorf("financial totals: %w", err)
	}
	return totals, nil
}

func (r *ranchStore) BreedingStats(ctx context.Context, startDate, endDate time.Time) (store.BreedingStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'ativa') AS active,
			COALESCE(SUM(doses_used), 0) AS doses_used
		FROM pregnancies
		WHERE coverage_date BETWEEN $1 AND $2`

	var stats store.BreedingStats
	err := r.db.QueryRowContext(ctx, query, startDate, endDate).
		Scan(&stats.ActivePregnancies, &stats.DosesUsed)
	if err != nil {
		return store.BreedingStats{}, fmt.Errorf("breeding stats: %w", err)
	}
	return stats, nil
}

func (r *ranchStore) InventoryStats(ctx context.Context) (store.InventoryStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(doses_available), 0),
			COALESCE(SUM(doses_available * dose_value), 0)
		FROM semen_inventory`

	var stats store.InventoryStats
	err := r.db.QueryRowContext(ctx, query).
		Scan(&stats.Bulls, &stats.DosesAvailable, &stats.StockValue)
	if err != nil {
		return store.InventoryStats{}, fmt.Errorf("inventory stats: %w", err)
	}
	return stats, nil
}

func (r *ranchStore) BirthsByMonth(ctx context.Context, startDate, endDate time.Time) ([]store.MonthlyBirthCount, error) {
	query := `
		SELECT date_trunc('month', birth_date) AS month, COUNT(*) AS total
		FROM births
		WHERE birth_date BETWEEN $1 AND $2
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("births by month: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.MonthlyBirthCount
	for rows.Next() {
		var rec store.MonthlyBirthCount
		if err := rows.Scan(&rec.Month, &rec.Total); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) BirthsByBreed(ctx context.Context, startDate, endDate time.Time) ([]store.BreedCount, error) {
	query := `
		SELECT COALESCE(breed, 'Não informada') AS breed, COUNT(*) AS total
		FROM births
		WHERE birth_date BETWEEN $1 AND $2
		GROUP BY 1
		ORDER BY total DESC`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("births by breed: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.BreedCount
	for rows.Next() {
		var rec store.BreedCount
		if err := rows.Scan(&rec.Breed, &rec.Total); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) ActivePregnancies(ctx context.Context, startDate, endDate time.Time) ([]store.Pregnancy, error) {
	query := `
		SELECT cow_tag, COALESCE(bull_name, ''), coverage_date, due_date, status
		FROM pregnancies
		WHERE coverage_date BETWEEN $1 AND $2
		ORDER BY due_date`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("active pregnancies: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.Pregnancy
	for rows.Next() {
		var rec store.Pregnancy
		if err := rows.Scan(&rec.CowTag, &rec.Bull, &rec.CoverageDate, &rec.DueDate, &rec.Status); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) SemenUsage(ctx context.Context, startDate, endDate time.Time) ([]store.SemenUsage, error) {
	query := `
		SELECT COALESCE(bull_name, 'Não informado') AS bull, COALESCE(SUM(doses_used), 0) AS doses
		FROM pregnancies
		WHERE coverage_date BETWEEN $1 AND $2
		GROUP BY 1
		ORDER BY doses DESC`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("semen usage: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.SemenUsage
	for rows.Next() {
		var rec store.SemenUsage
		if err := rows.Scan(&rec.Bull, &rec.DosesUsed); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) SemenStock(ctx context.Context) ([]store.SemenStock, error) {
	query := `
		SELECT bull_name, COALESCE(breed, ''), doses_available, COALESCE(dose_value, 0)
		FROM semen_inventory
		ORDER BY bull_name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("semen stock: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.SemenStock
	for rows.Next() {
		var rec store.SemenStock
		if err := rows.Scan(&rec.Bull, &rec.Breed, &rec.DosesAvailable, &rec.Value); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) CostsByCategory(ctx context.Context, startDate, endDate time.Time) ([]store.CostByCategory, error) {
	query := `
		SELECT COALESCE(category, 'Outros') AS category, COUNT(*) AS entries, COALESCE(SUM(amount), 0) AS total
		FROM costs
		WHERE cost_date BETWEEN $1 AND $2
		GROUP BY 1
		ORDER BY total DESC`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("costs by category: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.CostByCategory
	for rows.Next() {
		var rec store.CostByCategory
		if err := rows.Scan(&rec.Category, &rec.Entries, &rec.Value); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) Sales(ctx context.Context, startDate, endDate time.Time) ([]store.Sale, error) {
	query := `
		SELECT s.sale_date, a.tag, COALESCE(s.buyer, ''), s.sale_value
		FROM sales s
		JOIN animals a ON a.id = s.animal_id
		WHERE s.sale_date BETWEEN $1 AND $2
		ORDER BY s.sale_date`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("sales: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.Sale
	for rows.Next() {
		var rec store.Sale
		if err := rows.Scan(&rec.Date, &rec.Tag, &rec.Buyer, &rec.Value); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) LocationCounts(ctx context.Context) ([]store.LocationCount, error) {
	query := `
		SELECT COALESCE(l.name, 'Sem localização') AS location, COUNT(*) AS total
		FROM animals a
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE a.status = 'ativo'
		GROUP BY 1
		ORDER BY total DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("location counts: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.LocationCount
	for rows.Next() {
		var rec store.LocationCount
		if err := rows.Scan(&rec.Location, &rec.Total); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) AnimalsByLocation(ctx context.Context) ([]store.AnimalRow, error) {
	query := `
		SELECT a.tag, a.name, l.name, a.status
		FROM animals a
		LEFT JOIN locations l ON l.id = a.location_id
		WHERE a.status = 'ativo'
		ORDER BY l.name NULLS LAST, a.tag`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("animals by location: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.AnimalRow
	for rows.Next() {
		var rec store.AnimalRow
		if err := rows.Scan(&rec.Tag, &rec.Name, &rec.Location, &rec.Status); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *ranchStore) AnimalsDetailed(ctx context.Context) ([]store.AnimalDetail, error) {
	query := `
		SELECT
			a.tag, a.name, a.breed, a.sex, a.birth_date, a.weight,
			l.name, a.status, d.death_date, d.cause
		FROM animals a
		LEFT JOIN locations l ON l.id = a.location_id
		LEFT JOIN deaths d ON d.animal_id = a.id
		ORDER BY a.tag`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("animals detailed: %w", err)
	}
	defer closeRows(ctx, rows)

	var records []store.AnimalDetail
	for rows.Next() {
		var rec store.AnimalDetail
		err := rows.Scan(
			&rec.Tag, &rec.Name, &rec.Breed, &rec.Sex, &rec.BirthDate,
			&rec.Weight, &rec.Location, &rec.Status, &rec.DeathDate, &rec.DeathCause,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close query rows")
	}
}
