package mq

import "time"

// Routing keys on the store exchange.
const (
	RoutingKeyPurchaseCompleted = "purchase.completed"
	RoutingKeyCustomerRemoved   = "customer.removed"
	RoutingKeyBookAdded         = "book.added"
)

// PurchaseCompletedEvent is emitted after a purchase transaction commits.
type PurchaseCompletedEvent struct {
	PurchaseID uint      `json:"purchase_id"`
	CustomerID uint      `json:"customer_id"`
	BookID     uint      `json:"book_id"`
	Quantity   int       `json:"quantity"`
	Total      int64     `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CustomerRemovedEvent is emitted after a customer and their purchase rows
// are removed.
type CustomerRemovedEvent struct {
	CustomerID       uint      `json:"customer_id"`
	PurchasesDropped int64     `json:"purchases_dropped"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// BookAddedEvent is emitted when a title enters the catalog.
type BookAddedEvent struct {
	BookID     uint      `json:"book_id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	OccurredAt time.Time `json:"occurred_at"`
}
