package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/purchase"
)

type fakeReportRepo struct {
	popularCalls int
	revenueCalls int
	popular      []*PopularBook
	revenue      RevenueTotals
}

func (r *fakeReportRepo) Totals(ctx context.Context) (*Totals, error) {
	return &Totals{Books: 2, Customers: 1, Purchases: 3}, nil
}

func (r *fakeReportRepo) PopularBooks(ctx context.Context, limit int) ([]*PopularBook, error) {
	r.popularCalls++
	if limit < len(r.popular) {
		return r.popular[:limit], nil
	}
	return r.popular, nil
}

func (r *fakeReportRepo) NewestBooks(ctx context.Context, since time.Time) ([]*RecentBook, error) {
	return nil, nil
}

func (r *fakeReportRepo) LowStockBooks(ctx context.Context, threshold int) ([]*LowStockBook, error) {
	return []*LowStockBook{{BookID: 101, Title: "Dune", Stock: threshold - 1}}, nil
}

func (r *fakeReportRepo) Revenue(ctx context.Context, trailingWindow time.Duration) (*RevenueTotals, error) {
	r.revenueCalls++
	totals := r.revenue
	return &totals, nil
}

func (r *fakeReportRepo) CustomersByCountry(ctx context.Context) ([]*CountryCount, error) {
	return []*CountryCount{{Country: "Poland", Customers: 2}}, nil
}

// fakeCache stores values in memory without TTL or serialization.
type fakeCache struct {
	store map[string]interface{}
	hits  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]interface{})}
}

func (c *fakeCache) Get(ctx context.Context, name string, dest interface{}) (bool, error) {
	value, ok := c.store[name]
	if !ok {
		return false, nil
	}
	c.hits++
	switch d := dest.(type) {
	case *[]*PopularBook:
		*d = value.([]*PopularBook)
	case *RevenueTotals:
		*d = value.(RevenueTotals)
	default:
		return false, nil
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, name string, value interface{}) {
	switch v := value.(type) {
	case []*PopularBook:
		c.store[name] = v
	case *RevenueTotals:
		c.store[name] = *v
	}
}

type fakeCustomerRepo struct {
	customers map[uint]*customer.Customer
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }
func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}
func (r *fakeCustomerRepo) FindByRef(ctx context.Context, ref customer.Ref) (*customer.Customer, error) {
	if ref.IsID() {
		return r.FindByID(ctx, ref.ID())
	}
	for _, c := range r.customers {
		if c.Name == ref.Name() {
			return c, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}
func (r *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return nil, customer.ErrCustomerNotFound
}
func (r *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }
func (r *fakeCustomerRepo) DeleteByID(ctx context.Context, id uint) (int64, error) { return 0, nil }
func (r *fakeCustomerRepo) List(ctx context.Context, page, pageSize int) ([]*customer.Customer, int64, error) {
	return nil, 0, nil
}

type fakePurchaseRepo struct {
	history []*purchase.HistoryEntry
}

func (r *fakePurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error { return nil }
func (r *fakePurchaseRepo) FindByID(ctx context.Context, id uint) (*purchase.Purchase, error) {
	return nil, purchase.ErrPurchaseNotFound
}
func (r *fakePurchaseRepo) DeleteByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	return 0, nil
}
func (r *fakePurchaseRepo) CountByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	return int64(len(r.history)), nil
}
func (r *fakePurchaseRepo) HistoryByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*purchase.HistoryEntry, int64, error) {
	return r.history, int64(len(r.history)), nil
}

func TestPopularBooks_CachesResult(t *testing.T) {
	repo := &fakeReportRepo{popular: []*PopularBook{{BookID: 101, Title: "Dune", UnitsSold: 7}}}
	cache := newFakeCache()
	q := NewQueries(repo, nil, nil, nil, cache)

	first, err := q.PopularBooks(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.popularCalls)

	second, err := q.PopularBooks(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// Second read was served from cache.
	assert.Equal(t, 1, repo.popularCalls)
	assert.Equal(t, 1, cache.hits)
}

func TestPopularBooks_WorksWithoutCache(t *testing.T) {
	repo := &fakeReportRepo{popular: []*PopularBook{{BookID: 101, Title: "Dune", UnitsSold: 7}}}
	q := NewQueries(repo, nil, nil, nil, nil)

	rows, err := q.PopularBooks(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, repo.popularCalls)
}

func TestRevenue_CachesResult(t *testing.T) {
	repo := &fakeReportRepo{revenue: RevenueTotals{AllTime: 10000, Trailing30Days: 2500}}
	cache := newFakeCache()
	q := NewQueries(repo, nil, nil, nil, cache)

	first, err := q.Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10000), first.AllTime)

	second, err := q.Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.AllTime, second.AllTime)
	assert.Equal(t, 1, repo.revenueCalls)
}

func TestPurchaseHistory_ResolvesRef(t *testing.T) {
	customers := &fakeCustomerRepo{customers: map[uint]*customer.Customer{
		201: {ID: 201, Name: "Alice", Email: "alice@example.com"},
	}}
	purchases := &fakePurchaseRepo{history: []*purchase.HistoryEntry{
		{PurchaseID: 1, BookID: 101, BookTitle: "Dune", Quantity: 2, UnitPrice: 2590, Total: 5180},
	}}
	q := NewQueries(&fakeReportRepo{}, nil, customers, purchases, nil)

	resp, err := q.PurchaseHistory(context.Background(), customer.ByName("Alice"), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, uint(201), resp.CustomerID)
	assert.Equal(t, "Alice", resp.CustomerName)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Dune", resp.Entries[0].BookTitle)
	assert.Equal(t, int64(1), resp.Total)
}

func TestPurchaseHistory_EmptyRef(t *testing.T) {
	q := NewQueries(&fakeReportRepo{}, nil, &fakeCustomerRepo{}, &fakePurchaseRepo{}, nil)

	_, err := q.PurchaseHistory(context.Background(), customer.Ref{}, 1, 20)
	assert.ErrorIs(t, err, customer.ErrEmptyRef)
}

func TestLowStock_DefaultThreshold(t *testing.T) {
	q := NewQueries(&fakeReportRepo{}, nil, nil, nil, nil)

	rows, err := q.LowStock(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, DefaultLowStockThreshold-1, rows[0].Stock)
}
