package inventory

import "context"

// TxManager is the slice of the transaction manager the use cases need.
// Declared here so unit tests can substitute an in-memory implementation.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher is the slice of the broker publisher the use cases need.
// A nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}
