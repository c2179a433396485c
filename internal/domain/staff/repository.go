package staff

import (
	"context"
)

// Repository is the persistence contract for staff accounts.
type Repository interface {
	// Create inserts the account. Duplicate emails surface as
	// ErrEmailDuplicate.
	Create(ctx context.Context, s *Staff) error

	// FindByID returns the account or ErrStaffNotFound.
	FindByID(ctx context.Context, id uint) (*Staff, error)

	// FindByEmail returns the account or ErrStaffNotFound.
	FindByEmail(ctx context.Context, email string) (*Staff, error)
}
