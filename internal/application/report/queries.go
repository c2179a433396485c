package report

import (
	"context"
	"fmt"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/purchase"
)

// Default report knobs, matching what the store managers actually ask for.
const (
	DefaultPopularLimit      = 10
	DefaultNewestDays        = 30
	DefaultLowStockThreshold = 5
	revenueTrailingWindow    = 30 * 24 * time.Hour
)

// Cache is the slice of the redis report cache the queries need. Nil-able;
// the queries work identically without it, just slower.
type Cache interface {
	Get(ctx context.Context, name string, dest interface{}) (bool, error)
	Set(ctx context.Context, name string, value interface{})
}

// Queries is the read-only facade over the catalog, the registry and the
// ledger. Reports never mutate anything, and an empty result is a valid
// answer, not an error.
type Queries struct {
	reportRepo   Repository
	bookRepo     book.Repository
	customerRepo customer.Repository
	purchaseRepo purchase.Repository
	cache        Cache
}

// NewQueries creates the report facade. cache may be nil.
func NewQueries(
	reportRepo Repository,
	bookRepo book.Repository,
	customerRepo customer.Repository,
	purchaseRepo purchase.Repository,
	cache Cache,
) *Queries {
	return &Queries{
		reportRepo:   reportRepo,
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		purchaseRepo: purchaseRepo,
		cache:        cache,
	}
}

// Overview returns the headline counters.
func (q *Queries) Overview(ctx context.Context) (*Totals, error) {
	return q.reportRepo.Totals(ctx)
}

// ListBooks runs a paged catalog search.
func (q *Queries) ListBooks(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.PageSize <= 0 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return q.bookRepo.List(ctx, params)
}

// PopularBooks ranks books by units sold. The aggregate scans the whole
// ledger, so it goes through the cache.
func (q *Queries) PopularBooks(ctx context.Context, limit int) ([]*PopularBook, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	key := fmt.Sprintf("popular:%d", limit)
	if q.cache != nil {
		var cached []*PopularBook
		if hit, _ := q.cache.Get(ctx, key, &cached); hit {
			return cached, nil
		}
	}

	rows, err := q.reportRepo.PopularBooks(ctx, limit)
	if err != nil {
		return nil, err
	}
	if q.cache != nil {
		q.cache.Set(ctx, key, rows)
	}
	return rows, nil
}

// NewestBooks lists titles added within the last N days.
func (q *Queries) NewestBooks(ctx context.Context, days int) ([]*RecentBook, error) {
	if days <= 0 {
		days = DefaultNewestDays
	}
	since := time.Now().AddDate(0, 0, -days)
	return q.reportRepo.NewestBooks(ctx, since)
}

// LowStock lists books under the restock threshold, emptiest first.
func (q *Queries) LowStock(ctx context.Context, threshold int) ([]*LowStockBook, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return q.reportRepo.LowStockBooks(ctx, threshold)
}

// Revenue sums the ledger, all-time and trailing 30 days. Cached.
func (q *Queries) Revenue(ctx context.Context) (*RevenueTotals, error) {
	const key = "revenue"
	if q.cache != nil {
		var cached RevenueTotals
		if hit, _ := q.cache.Get(ctx, key, &cached); hit {
			return &cached, nil
		}
	}

	totals, err := q.reportRepo.Revenue(ctx, revenueTrailingWindow)
	if err != nil {
		return nil, err
	}
	if q.cache != nil {
		q.cache.Set(ctx, key, totals)
	}
	return totals, nil
}

// CustomersByCountry counts registered customers per country.
func (q *Queries) CustomersByCountry(ctx context.Context) ([]*CountryCount, error) {
	return q.reportRepo.CustomersByCountry(ctx)
}

// HistoryEntry is one purchase in a customer's history, as rendered to the
// caller.
type HistoryEntry struct {
	PurchaseID uint       `json:"purchase_id"`
	BookID     uint       `json:"book_id"`
	BookTitle  string     `json:"book_title"`
	Quantity   int        `json:"quantity"`
	UnitPrice  int64      `json:"unit_price"`
	Total      int64      `json:"total"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// HistoryResponse is a customer's purchase history page.
type HistoryResponse struct {
	CustomerID   uint            `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Entries      []*HistoryEntry `json:"entries"`
	Total        int64           `json:"total"`
}

// PurchaseHistory resolves the customer reference and returns their ledger
// entries joined with book titles, most recent first.
func (q *Queries) PurchaseHistory(ctx context.Context, ref customer.Ref, page, pageSize int) (*HistoryResponse, error) {
	if ref.IsZero() {
		return nil, customer.ErrEmptyRef
	}
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	c, err := q.customerRepo.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	rows, total, err := q.purchaseRepo.HistoryByCustomerID(ctx, c.ID, page, pageSize)
	if err != nil {
		return nil, err
	}

	entries := make([]*HistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = &HistoryEntry{
			PurchaseID: row.PurchaseID,
			BookID:     row.BookID,
			BookTitle:  row.BookTitle,
			Quantity:   row.Quantity,
			UnitPrice:  row.UnitPrice,
			Total:      row.Total,
			CreatedAt:  row.CreatedAt,
			ExpiresAt:  row.ExpiresAt,
		}
	}

	return &HistoryResponse{
		CustomerID:   c.ID,
		CustomerName: c.Name,
		Entries:      entries,
		Total:        total,
	}, nil
}
