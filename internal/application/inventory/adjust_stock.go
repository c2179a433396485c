package inventory

import (
	"context"

	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/pkg/metrics"
)

// AdjustStockUseCase applies a signed restock/correction delta to a book.
type AdjustStockUseCase struct {
	bookRepo  book.Repository
	txManager TxManager
}

// NewAdjustStockUseCase creates the use case.
func NewAdjustStockUseCase(bookRepo book.Repository, txManager TxManager) *AdjustStockUseCase {
	return &AdjustStockUseCase{bookRepo: bookRepo, txManager: txManager}
}

// AdjustStockResponse reports the stock after the adjustment.
type AdjustStockResponse struct {
	BookID uint `json:"book_id"`
	Stock  int  `json:"stock"`
}

// Execute applies the delta under the row lock. Delta 0 short-circuits to a
// plain read: MySQL reports zero affected rows for a no-change update, which
// the guarded UpdateStock would misread as an insufficient-stock rejection.
func (uc *AdjustStockUseCase) Execute(ctx context.Context, bookID uint, delta int) (*AdjustStockResponse, error) {
	if delta == 0 {
		b, err := uc.bookRepo.FindByID(ctx, bookID)
		if err != nil {
			return nil, err
		}
		return &AdjustStockResponse{BookID: b.ID, Stock: b.Stock}, nil
	}

	var newStock int
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.LockByID(txCtx, bookID)
		if err != nil {
			return err
		}
		if b.Stock+delta < 0 {
			return book.ErrInvalidStockDelta
		}
		if err := uc.bookRepo.UpdateStock(txCtx, bookID, delta); err != nil {
			return err
		}
		newStock = b.Stock + delta
		return nil
	})
	if err != nil {
		return nil, err
	}

	if metrics.StockAdjustmentsTotal != nil {
		direction := "increase"
		if delta < 0 {
			direction = "decrease"
		}
		metrics.StockAdjustmentsTotal.WithLabelValues(direction).Inc()
	}

	return &AdjustStockResponse{BookID: bookID, Stock: newStock}, nil
}
