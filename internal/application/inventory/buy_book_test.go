package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/internal/domain/customer"
	"github.com/pkozlowski/bookstore/internal/domain/purchase"
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
	"github.com/pkozlowski/bookstore/pkg/mq"
)

type buyFixture struct {
	uc        *BuyBookUseCase
	books     *fakeBookRepo
	customers *fakeCustomerRepo
	purchases *fakePurchaseRepo
	publisher *fakePublisher
}

func newBuyFixture() *buyFixture {
	books := newFakeBookRepo()
	customers := newFakeCustomerRepo()
	purchases := newFakePurchaseRepo()
	publisher := &fakePublisher{}

	return &buyFixture{
		uc:        NewBuyBookUseCase(books, customers, purchases, fakeTxManager{}, publisher),
		books:     books,
		customers: customers,
		purchases: purchases,
		publisher: publisher,
	}
}

func (f *buyFixture) seedBook(title string, price int64, stock int) *book.Book {
	return f.books.add(&book.Book{Title: title, Author: "Frank Herbert", Price: price, Stock: stock})
}

func (f *buyFixture) seedCustomer(name string) *customer.Customer {
	return f.customers.add(&customer.Customer{Name: name, Email: name + "@example.com"})
}

func TestBuyBook_Success(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 5)
	c := f.seedCustomer("alice")

	resp, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByID(c.ID),
		BookRef:     book.ByID(b.ID),
		Quantity:    2,
	})
	require.NoError(t, err)

	assert.Equal(t, c.ID, resp.CustomerID)
	assert.Equal(t, b.ID, resp.BookID)
	assert.Equal(t, "Dune", resp.BookTitle)
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, int64(2590), resp.UnitPrice)
	assert.Equal(t, int64(5180), resp.Total)
	assert.Equal(t, 3, resp.RemainingStock)
	assert.Nil(t, resp.ExpiresAt)

	// Exactly one ledger row, stock decremented by exactly the quantity.
	assert.Equal(t, 1, f.purchases.count())
	assert.Equal(t, 3, f.books.stock(b.ID))
}

func TestBuyBook_ByTitleAndNameRefs(t *testing.T) {
	f := newBuyFixture()
	f.seedBook("Dune", 2590, 5)
	f.seedCustomer("alice")

	resp, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByName("alice"),
		BookRef:     book.ByTitle("Dune"),
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", resp.BookTitle)
	assert.Equal(t, "alice", resp.CustomerName)
}

func TestBuyBook_InsufficientStock(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 2)
	c := f.seedCustomer("alice")

	_, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByID(c.ID),
		BookRef:     book.ByID(b.ID),
		Quantity:    3,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientStock))
	// The rejection names the available quantity.
	assert.Contains(t, err.Error(), "2 available")

	// Nothing changed.
	assert.Equal(t, 0, f.purchases.count())
	assert.Equal(t, 2, f.books.stock(b.ID))
	assert.Empty(t, f.publisher.events)
}

func TestBuyBook_InvalidQuantity(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 5)
	c := f.seedCustomer("alice")

	for _, quantity := range []int{0, -1} {
		_, err := f.uc.Execute(context.Background(), BuyBookRequest{
			CustomerRef: customer.ByID(c.ID),
			BookRef:     book.ByID(b.ID),
			Quantity:    quantity,
		})
		assert.ErrorIs(t, err, purchase.ErrInvalidQuantity)
	}

	assert.Equal(t, 0, f.purchases.count())
	assert.Equal(t, 5, f.books.stock(b.ID))
}

func TestBuyBook_NegativeDuration(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 5)
	c := f.seedCustomer("alice")

	_, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByID(c.ID),
		BookRef:     book.ByID(b.ID),
		Quantity:    1,
		Months:      -1,
	})
	assert.ErrorIs(t, err, purchase.ErrInvalidDuration)
}

func TestBuyBook_WithExpiry(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 5)
	c := f.seedCustomer("alice")

	resp, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByID(c.ID),
		BookRef:     book.ByID(b.ID),
		Quantity:    1,
		Months:      3,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ExpiresAt)
	assert.Equal(t, resp.CreatedAt.AddDate(0, 3, 0), *resp.ExpiresAt)
}

func TestBuyBook_UnknownCustomer(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 5)

	_, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByID(999),
		BookRef:     book.ByID(b.ID),
		Quantity:    1,
	})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
	assert.Equal(t, 5, f.books.stock(b.ID))
}

func TestBuyBook_UnknownBook(t *testing.T) {
	f := newBuyFixture()
	c := f.seedCustomer("alice")

	_, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByID(c.ID),
		BookRef:     book.ByTitle("no such title"),
		Quantity:    1,
	})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Equal(t, 0, f.purchases.count())
}

func TestBuyBook_PublishesEvent(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 5)
	c := f.seedCustomer("alice")

	resp, err := f.uc.Execute(context.Background(), BuyBookRequest{
		CustomerRef: customer.ByID(c.ID),
		BookRef:     book.ByID(b.ID),
		Quantity:    2,
	})
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, mq.RoutingKeyPurchaseCompleted, f.publisher.events[0].routingKey)
	event, ok := f.publisher.events[0].payload.(mq.PurchaseCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, resp.PurchaseID, event.PurchaseID)
	assert.Equal(t, int64(5180), event.Total)
}

// Two buys of 3 against stock 5: the first drains the stock below the
// second's quantity, so the second is rejected and changes nothing. The
// concurrent variant of this (row lock serialization) runs against a real
// MySQL in the integration suite.
func TestBuyBook_SecondBuyExceedingStockRejected(t *testing.T) {
	f := newBuyFixture()
	b := f.seedBook("Dune", 2590, 5)
	c := f.seedCustomer("alice")

	req := BuyBookRequest{
		CustomerRef: customer.ByID(c.ID),
		BookRef:     book.ByID(b.ID),
		Quantity:    3,
	}

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientStock))

	assert.Equal(t, 2, f.books.stock(b.ID))
	assert.Equal(t, 1, f.purchases.count())
}
