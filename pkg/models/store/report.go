package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// PreviewCounts holds the four headline counters for the preview path.
type PreviewCounts struct {
	TotalAnimals int64
	Births       int64
	Deaths       int64
	Sales        int64
}

// BirthStats is the aggregate record over births in a period.
type BirthStats struct {
	Total     int64
	Males     int64
	Females   int64
	AvgWeight float64
}

// PeriodTotals is the count/sum aggregate shared by deaths, sales and costs.
type PeriodTotals struct {
	Total int64
	Value decimal.Decimal
}

// FinancialTotals summarizes cost against revenue in a period.
type FinancialTotals struct {
	TotalCost    decimal.Decimal
	TotalRevenue decimal.Decimal
}

// BreedingStats is the aggregate record for the breeding battery.
type BreedingStats struct {
	ActivePregnancies int64
	DosesUsed         int64
}

// InventoryStats is the aggregate record over the semen inventory.
type InventoryStats struct {
	Bulls          int64
	DosesAvailable int64
	StockValue     decimal.Decimal
}

// MonthlyBirthCount is one row of the births-by-month listing.
type MonthlyBirthCount struct {
	Month time.Time
	Total int64
}

// BreedCount is one row of a births-by-breed listing, ordered by count desc.
type BreedCount struct {
	Breed string
	Total int64
}

// Pregnancy is one row of the active-pregnancy listing.
type Pregnancy struct {
	CowTag       string
	Bull         string
	CoverageDate time.Time
	DueDate      sql.NullTime
	Status       string
}

// SemenUsage is one row of doses used per bull, ordered by doses desc.
type SemenUsage struct {
	Bull      string
	DosesUsed int64
}

// SemenStock is one row of the semen inventory listing.
type SemenStock struct {
	Bull           string
	Breed          string
	DosesAvailable int64
	Value          decimal.Decimal
}

// CostByCategory is one row of expenses grouped by category.
type CostByCategory struct {
	Category string
	Entries  int64
	Value    decimal.Decimal
}

// Sale is one row of the sale listing, ordered by date.
type Sale struct {
	Date  time.Time
	Tag   string
	Buyer string
	Value decimal.Decimal
}

// LocationCount is one row of active animals per location, ordered by count desc.
type LocationCount struct {
	Location string
	Total    int64
}

// AnimalRow is one row of the per-location animal listing.
type AnimalRow struct {
	Tag      string
	Name     sql.NullString
	Location sql.NullString
	Status   string
}

// AnimalDetail is one row of the detailed herd export, merged with death data.
type AnimalDetail struct {
	Tag        string
	Name       sql.NullString
	Breed      sql.NullString
	Sex        string
	BirthDate  sql.NullTime
	Weight     sql.NullFloat64
	Location   sql.NullString
	Status     string
	DeathDate  sql.NullTime
	DeathCause sql.NullString
}
