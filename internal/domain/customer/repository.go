package customer

import (
	"context"
)

// Repository is the persistence contract for customers.
type Repository interface {
	// Create inserts the customer and assigns its identifier inside the
	// same transaction as the insert. Duplicate emails surface as
	// ErrEmailDuplicate.
	Create(ctx context.Context, customer *Customer) error

	// FindByID returns the customer or ErrCustomerNotFound.
	FindByID(ctx context.Context, id uint) (*Customer, error)

	// FindByRef resolves an explicit reference (id or exact name).
	FindByRef(ctx context.Context, ref Ref) (*Customer, error)

	// FindByEmail returns the customer or ErrCustomerNotFound.
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Update persists all fields of the customer.
	Update(ctx context.Context, customer *Customer) error

	// DeleteByID removes the customer row only. Cascading the purchase
	// ledger is the removal use case's job, inside one transaction with
	// this delete.
	DeleteByID(ctx context.Context, id uint) (int64, error)

	// List returns all customers, newest first, paged.
	List(ctx context.Context, page, pageSize int) ([]*Customer, int64, error)
}
