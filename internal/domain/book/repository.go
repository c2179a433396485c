package book

import (
	"context"
)

// Repository is the persistence contract for books. The interface lives in
// the domain layer and is implemented by infrastructure/persistence/mysql,
// which also makes the application layer testable against fakes.
type Repository interface {
	// Create inserts the book and assigns its identifier. Identifier
	// assignment happens inside the same transaction as the insert, so
	// concurrent creates never share an id.
	Create(ctx context.Context, book *Book) error

	// FindByID returns the book or ErrBookNotFound.
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByRef resolves an explicit reference. Title references match
	// exactly first, then by substring; the first match wins.
	FindByRef(ctx context.Context, ref Ref) (*Book, error)

	// Update persists all fields of the book.
	Update(ctx context.Context, book *Book) error

	// DeleteByRef removes every book matching the reference and returns the
	// number of rows removed. Zero rows is not an error; callers map it to a
	// not-found status.
	DeleteByRef(ctx context.Context, ref Ref) (int64, error)

	// List runs a paged catalog query.
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID loads the book under SELECT ... FOR UPDATE. Only meaningful
	// inside a transaction; used by the purchase flow to serialize
	// concurrent stock checks.
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock atomically applies a stock delta, guarded so the result
	// can never be negative. Returns ErrInsufficientStock when the guard
	// rejects the write and ErrBookNotFound when the id does not exist.
	UpdateStock(ctx context.Context, id uint, delta int) error
}

// ListParams are the paging/search knobs for List.
type ListParams struct {
	Page     int
	PageSize int
	Keyword  string // matches title, author or genre
	Author   string // exact author filter
	Genre    string // exact genre filter
	SortBy   string // price_asc | price_desc | created_at_desc
}
