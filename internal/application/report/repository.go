package report

import (
	"context"
	"time"
)

// PopularBook is a catalog row ranked by units sold.
type PopularBook struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Price     int64  `json:"price"`
	Stock     int    `json:"stock"`
	UnitsSold int64  `json:"units_sold"`
}

// LowStockBook is a catalog row below the restock threshold.
type LowStockBook struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Stock  int    `json:"stock"`
}

// RecentBook is a catalog row added within the report window.
type RecentBook struct {
	BookID    uint      `json:"book_id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre,omitempty"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// RevenueTotals are ledger sums in cents.
type RevenueTotals struct {
	AllTime        int64 `json:"all_time"`
	Trailing30Days int64 `json:"trailing_30_days"`
}

// CountryCount is the number of registered customers per country.
type CountryCount struct {
	Country   string `json:"country"`
	Customers int64  `json:"customers"`
}

// Totals are the headline counters of the store.
type Totals struct {
	Books     int64 `json:"books"`
	Customers int64 `json:"customers"`
	Purchases int64 `json:"purchases"`
}

// Repository is the read-only query contract behind the report facade. All
// queries aggregate over the purchases table, the single source of truth
// for sales, never over any side channel.
type Repository interface {
	Totals(ctx context.Context) (*Totals, error)
	PopularBooks(ctx context.Context, limit int) ([]*PopularBook, error)
	NewestBooks(ctx context.Context, since time.Time) ([]*RecentBook, error)
	LowStockBooks(ctx context.Context, threshold int) ([]*LowStockBook, error)
	Revenue(ctx context.Context, trailingWindow time.Duration) (*RevenueTotals, error)
	CustomersByCountry(ctx context.Context) ([]*CountryCount, error)
}
