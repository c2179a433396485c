package inventory

import (
	"context"
	"log"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/purchase"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
	"github.com/pkozlowski/bookstore/pkg/metrics"
	"github.com/pkozlowski/bookstore/pkg/mq"
)

// BuyBookUseCase records a sale. This is the core write path of the system:
// the stock check, the ledger insert and the stock decrement are one
// transaction, so the ledger and the catalog can never disagree.
type BuyBookUseCase struct {
	bookRepo     book.Repository
	customerRepo customer.Repository
	purchaseRepo purchase.Repository
	txManager    TxManager
	publisher    EventPublisher
}

// NewBuyBookUseCase creates the purchase use case. publisher may be nil when
// the broker is disabled.
func NewBuyBookUseCase(
	bookRepo book.Repository,
	customerRepo customer.Repository,
	purchaseRepo purchase.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *BuyBookUseCase {
	return &BuyBookUseCase{
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		purchaseRepo: purchaseRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// BuyBookRequest identifies the buyer and the book by reference (id or
// name/title), with an optional access duration in months.
type BuyBookRequest struct {
	CustomerRef customer.Ref
	BookRef     book.Ref
	Quantity    int
	Months      int
}

// BuyBookResponse is the recorded purchase plus the stock that remains.
type BuyBookResponse struct {
	PurchaseID     uint       `json:"purchase_id"`
	CustomerID     uint       `json:"customer_id"`
	CustomerName   string     `json:"customer_name"`
	BookID         uint       `json:"book_id"`
	BookTitle      string     `json:"book_title"`
	Quantity       int        `json:"quantity"`
	UnitPrice      int64      `json:"unit_price"`
	Total          int64      `json:"total"`
	RemainingStock int        `json:"remaining_stock"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// Execute runs the purchase.
//
// Flow: resolve both references, then in one transaction lock the book row
// (SELECT ... FOR UPDATE), check stock, append the ledger entry with a price
// snapshot, and decrement stock through the guarded update. Any failure
// rolls the whole unit back. The lock serializes concurrent purchases of the
// same book, so two buyers can never both pass the stock check on the same
// units.
func (uc *BuyBookUseCase) Execute(ctx context.Context, req BuyBookRequest) (*BuyBookResponse, error) {
	start := time.Now()

	if req.Quantity <= 0 {
		uc.countFailure("invalid_quantity")
		return nil, purchase.ErrInvalidQuantity
	}
	if req.Months < 0 {
		uc.countFailure("invalid_quantity")
		return nil, purchase.ErrInvalidDuration
	}

	buyer, err := uc.customerRepo.FindByRef(ctx, req.CustomerRef)
	if err != nil {
		uc.countFailure("not_found")
		return nil, err
	}

	// Resolve the title reference outside the transaction; the lock below
	// re-reads by id, so the resolved row cannot go stale in a harmful way
	// (a concurrently deleted book fails the locked re-read).
	resolved, err := uc.bookRepo.FindByRef(ctx, req.BookRef)
	if err != nil {
		uc.countFailure("not_found")
		return nil, err
	}

	var (
		entry     *purchase.Purchase
		remaining int
		title     string
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.LockByID(txCtx, resolved.ID)
		if err != nil {
			return err
		}

		if b.Stock < req.Quantity {
			return apperrors.Newf(apperrors.CodeInsufficientStock,
				"insufficient stock for %q: %d available, %d requested",
				b.Title, b.Stock, req.Quantity)
		}

		// Price snapshot comes from the locked row, never from the request.
		entry = purchase.NewPurchase(buyer.ID, b.ID, req.Quantity, b.Price, req.Months)
		if err := uc.purchaseRepo.Create(txCtx, entry); err != nil {
			return err
		}

		if err := uc.bookRepo.UpdateStock(txCtx, b.ID, -req.Quantity); err != nil {
			return err
		}

		remaining = b.Stock - req.Quantity
		title = b.Title
		return nil
	})
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeInsufficientStock) {
			uc.countFailure("insufficient_stock")
		} else {
			uc.countFailure("error")
		}
		return nil, err
	}

	if metrics.PurchasesTotal != nil {
		metrics.PurchasesTotal.Inc()
		metrics.PurchaseDuration.Observe(time.Since(start).Seconds())
	}

	// Events are best effort, after commit. A broker outage must never undo
	// a sale that is already durable.
	if uc.publisher != nil {
		event := mq.PurchaseCompletedEvent{
			PurchaseID: entry.ID,
			CustomerID: buyer.ID,
			BookID:     entry.BookID,
			Quantity:   entry.Quantity,
			Total:      entry.Total,
			OccurredAt: entry.CreatedAt,
		}
		if err := uc.publisher.Publish(ctx, mq.RoutingKeyPurchaseCompleted, event); err != nil {
			log.Printf("[mq] publishing purchase.completed for purchase %d: %v", entry.ID, err)
		}
	}

	return &BuyBookResponse{
		PurchaseID:     entry.ID,
		CustomerID:     buyer.ID,
		CustomerName:   buyer.Name,
		BookID:         entry.BookID,
		BookTitle:      title,
		Quantity:       entry.Quantity,
		UnitPrice:      entry.UnitPrice,
		Total:          entry.Total,
		RemainingStock: remaining,
		CreatedAt:      entry.CreatedAt,
		ExpiresAt:      entry.ExpiresAt,
	}, nil
}

func (uc *BuyBookUseCase) countFailure(reason string) {
	if metrics.PurchasesFailedTotal != nil {
		metrics.PurchasesFailedTotal.WithLabelValues(reason).Inc()
	}
}
