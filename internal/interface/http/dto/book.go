package dto

import (
	"fmt"
	"time"

	"github.com/pkozlowski/bookstore/internal/domain/book"
)

// AddBookRequest is the add-book payload. Price is in cents.
type AddBookRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author" binding:"required"`
	Genre  string `json:"genre"`
	Price  int64  `json:"price" binding:"min=0"`
	Stock  int    `json:"stock" binding:"min=0"`
}

// AdjustStockRequest carries a signed stock delta.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

// BookResponse is the catalog entry as rendered to clients.
type BookResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Genre        string    `json:"genre,omitempty"`
	Price        int64     `json:"price"`
	PriceDisplay string    `json:"price_display"`
	Stock        int       `json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewBookResponse converts a domain book.
func NewBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:           b.ID,
		Title:        b.Title,
		Author:       b.Author,
		Genre:        b.Genre,
		Price:        b.Price,
		PriceDisplay: FormatPrice(b.Price),
		Stock:        b.Stock,
		CreatedAt:    b.CreatedAt,
	}
}

// NewBookListResponse converts a page of domain books.
func NewBookListResponse(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, len(books))
	for i, b := range books {
		out[i] = NewBookResponse(b)
	}
	return out
}

// FormatPrice renders cents as a decimal amount ("2590" -> "25.90").
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}
