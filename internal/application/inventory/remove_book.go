package inventory

import (
	"context"

	"github.com/pkozlowski/bookstore/internal/domain/book"
)

// RemoveBookUseCase deletes catalog entries by reference.
type RemoveBookUseCase struct {
	bookSvc book.Service
}

// NewRemoveBookUseCase creates the use case.
func NewRemoveBookUseCase(bookSvc book.Service) *RemoveBookUseCase {
	return &RemoveBookUseCase{bookSvc: bookSvc}
}

// RemoveBookResponse reports how many entries matched. Zero is not an error;
// the handler renders it as a nothing-to-remove success.
type RemoveBookResponse struct {
	Removed int64 `json:"removed"`
}

// Execute removes every book matching the reference. Ledger entries that
// point at the removed book stay: the ledger outlives the catalog.
func (uc *RemoveBookUseCase) Execute(ctx context.Context, ref book.Ref) (*RemoveBookResponse, error) {
	removed, err := uc.bookSvc.RemoveBook(ctx, ref)
	if err != nil {
		return nil, err
	}
	return &RemoveBookResponse{Removed: removed}, nil
}
