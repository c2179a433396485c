package inventory

import (
	"context"
	"log"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/book"
	"github.com/pkozlowski/bookstore/pkg/mq"
)

// AddBookUseCase adds a title to the catalog.
type AddBookUseCase struct {
	bookSvc   book.Service
	publisher EventPublisher
}

// NewAddBookUseCase creates the use case. publisher may be nil.
func NewAddBookUseCase(bookSvc book.Service, publisher EventPublisher) *AddBookUseCase {
	return &AddBookUseCase{bookSvc: bookSvc, publisher: publisher}
}

// AddBookRequest carries the new catalog entry. Price is in cents.
type AddBookRequest struct {
	Title  string
	Author string
	Genre  string
	Price  int64
	Stock  int
}

// AddBookResponse returns the assigned identifier with the stored fields.
type AddBookResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre,omitempty"`
	Price     int64     `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// Execute validates and persists the book; the identifier is assigned inside
// the insert transaction.
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	b, err := uc.bookSvc.AddBook(ctx, req.Title, req.Author, req.Genre, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		event := mq.BookAddedEvent{
			BookID:     b.ID,
			Title:      b.Title,
			Author:     b.Author,
			OccurredAt: b.CreatedAt,
		}
		if err := uc.publisher.Publish(ctx, mq.RoutingKeyBookAdded, event); err != nil {
			log.Printf("[mq] publishing book.added for book %d: %v", b.ID, err)
		}
	}

	return &AddBookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		Price:     b.Price,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt,
	}, nil
}
