package inventory

import (
	"context"
	"strings"
	"sync"

	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/purchase"
)

// In-memory fakes for the use case tests. They mirror the repository
// contracts, including the guarded stock update and reference resolution.

type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookRepo struct {
	mu     sync.Mutex
	books  map[uint]*book.Book
	nextID uint

	updateStockCalls int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uint]*book.Book), nextID: 101}
}

func (r *fakeBookRepo) add(b *book.Book) *book.Book {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	copied := *b
	r.books[b.ID] = &copied
	return b
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.add(b)
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookRepo) FindByRef(ctx context.Context, ref book.Ref) (*book.Book, error) {
	if ref.IsID() {
		return r.FindByID(ctx, ref.ID())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.books {
		if b.Title == ref.Title() {
			copied := *b
			return &copied, nil
		}
	}
	for _, b := range r.books {
		if strings.Contains(b.Title, ref.Title()) {
			copied := *b
			return &copied, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	copied := *b
	r.books[b.ID] = &copied
	return nil
}

func (r *fakeBookRepo) DeleteByRef(ctx context.Context, ref book.Ref) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, b := range r.books {
		if (ref.IsID() && id == ref.ID()) || (!ref.IsID() && b.Title == ref.Title()) {
			delete(r.books, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*book.Book
	for _, b := range r.books {
		copied := *b
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) UpdateStock(ctx context.Context, id uint, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateStockCalls++
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Stock += delta
	return nil
}

func (r *fakeBookRepo) stock(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.books[id].Stock
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	customers map[uint]*customer.Customer
	nextID    uint
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uint]*customer.Customer), nextID: 201}
}

func (r *fakeCustomerRepo) add(c *customer.Customer) *customer.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.nextID
	r.nextID++
	copied := *c
	r.customers[c.ID] = &copied
	return c
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	for _, existing := range r.customers {
		if existing.Email == c.Email {
			r.mu.Unlock()
			return customer.ErrEmailDuplicate
		}
	}
	r.mu.Unlock()
	r.add(c)
	return nil
}

func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCustomerRepo) FindByRef(ctx context.Context, ref customer.Ref) (*customer.Customer, error) {
	if ref.IsID() {
		return r.FindByID(ctx, ref.ID())
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Name == ref.Name() {
			copied := *c
			return &copied, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[c.ID]; !ok {
		return customer.ErrCustomerNotFound
	}
	copied := *c
	r.customers[c.ID] = &copied
	return nil
}

func (r *fakeCustomerRepo) DeleteByID(ctx context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return 0, nil
	}
	delete(r.customers, id)
	return 1, nil
}

func (r *fakeCustomerRepo) List(ctx context.Context, page, pageSize int) ([]*customer.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*customer.Customer
	for _, c := range r.customers {
		copied := *c
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

type fakePurchaseRepo struct {
	mu      sync.Mutex
	entries map[uint]*purchase.Purchase
	nextID  uint
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{entries: make(map[uint]*purchase.Purchase), nextID: 1}
}

func (r *fakePurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	copied := *p
	r.entries[p.ID] = &copied
	return nil
}

func (r *fakePurchaseRepo) FindByID(ctx context.Context, id uint) (*purchase.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.entries[id]
	if !ok {
		return nil, purchase.ErrPurchaseNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePurchaseRepo) DeleteByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, p := range r.entries {
		if p.CustomerID == customerID {
			delete(r.entries, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakePurchaseRepo) CountByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.entries {
		if p.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func (r *fakePurchaseRepo) HistoryByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*purchase.HistoryEntry, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*purchase.HistoryEntry
	for _, p := range r.entries {
		if p.CustomerID == customerID {
			out = append(out, &purchase.HistoryEntry{
				PurchaseID: p.ID,
				BookID:     p.BookID,
				Quantity:   p.Quantity,
				UnitPrice:  p.UnitPrice,
				Total:      p.Total,
				CreatedAt:  p.CreatedAt,
				ExpiresAt:  p.ExpiresAt,
			})
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakePurchaseRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	routingKey string
	payload    interface{}
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{routingKey: routingKey, payload: event})
	return nil
}
