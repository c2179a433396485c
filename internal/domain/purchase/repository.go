package purchase

import (
	"context"
)

// Repository is the persistence contract for the purchase ledger. Entries
// are append-only: there is deliberately no Update method.
type Repository interface {
	// Create appends a ledger entry. The identifier comes from the store's
	// auto-increment. Must run inside the same transaction as the stock
	// decrement it belongs to.
	Create(ctx context.Context, p *Purchase) error

	// FindByID returns the entry or ErrPurchaseNotFound.
	FindByID(ctx context.Context, id uint) (*Purchase, error)

	// DeleteByCustomerID removes all entries of a customer and returns the
	// count. Only called from the customer-removal cascade, inside its
	// transaction.
	DeleteByCustomerID(ctx context.Context, customerID uint) (int64, error)

	// CountByCustomerID returns the number of ledger entries for a customer.
	CountByCustomerID(ctx context.Context, customerID uint) (int64, error)

	// HistoryByCustomerID returns the customer's entries joined with book
	// titles, most recent first, paged.
	HistoryByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*HistoryEntry, int64, error)
}
