package customer

import (
	"context"
	"log"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/purchase"
	"github.com/pkozlowski/bookstore/pkg/mq"
)

// TxManager is the slice of the transaction manager the use cases need.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher is the slice of the broker publisher the use cases need.
// A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// RemoveUseCase deletes a customer together with their purchase ledger rows.
type RemoveUseCase struct {
	customerRepo customer.Repository
	purchaseRepo purchase.Repository
	txManager    TxManager
	publisher    EventPublisher
}

// NewRemoveUseCase creates the use case. publisher may be nil.
func NewRemoveUseCase(
	customerRepo customer.Repository,
	purchaseRepo purchase.Repository,
	txManager TxManager,
	publisher EventPublisher,
) *RemoveUseCase {
	return &RemoveUseCase{
		customerRepo: customerRepo,
		purchaseRepo: purchaseRepo,
		txManager:    txManager,
		publisher:    publisher,
	}
}

// RemoveResponse reports what the cascade removed.
type RemoveResponse struct {
	CustomerID       uint  `json:"customer_id"`
	Removed          int64 `json:"removed"`
	PurchasesDropped int64 `json:"purchases_dropped"`
}

// Execute resolves the reference, then deletes the purchase rows and the
// customer in one transaction. Either both survive or neither does; a
// customer can never linger with orphaned ledger rows, nor vanish leaving
// rows that point nowhere.
func (uc *RemoveUseCase) Execute(ctx context.Context, ref customer.Ref) (*RemoveResponse, error) {
	if ref.IsZero() {
		return nil, customer.ErrEmptyRef
	}

	target, err := uc.customerRepo.FindByRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	var resp RemoveResponse
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		dropped, err := uc.purchaseRepo.DeleteByCustomerID(txCtx, target.ID)
		if err != nil {
			return err
		}

		removed, err := uc.customerRepo.DeleteByID(txCtx, target.ID)
		if err != nil {
			return err
		}

		resp = RemoveResponse{
			CustomerID:       target.ID,
			Removed:          removed,
			PurchasesDropped: dropped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil && resp.Removed > 0 {
		event := mq.CustomerRemovedEvent{
			CustomerID:       resp.CustomerID,
			PurchasesDropped: resp.PurchasesDropped,
			OccurredAt:       time.Now(),
		}
		if err := uc.publisher.Publish(ctx, mq.RoutingKeyCustomerRemoved, event); err != nil {
			log.Printf("[mq] publishing customer.removed for customer %d: %v", resp.CustomerID, err)
		}
	}

	return &resp, nil
}
