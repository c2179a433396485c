package book

import (
	"time"
)

// Book is the catalog aggregate root. Price is stored in cents to avoid
// float rounding. Stock is the count of sellable units and must never go
// negative; every mutation path enforces that.
type Book struct {
	ID        uint
	Title     string
	Author    string
	Genre     string // optional
	Price     int64  // cents
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBook creates a book entity. Callers validate inputs via the domain
// service first; the factory only fills timestamps.
func NewBook(title, author, genre string, price int64, stock int) *Book {
	now := time.Now()
	return &Book{
		Title:     title,
		Author:    author,
		Genre:     genre,
		Price:     price,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DecrStock removes quantity units from stock. Rejects non-positive
// quantities and anything that would drive stock below zero.
func (b *Book) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if b.Stock < quantity {
		return ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IncrStock adds quantity units to stock (restock, cancelled purchase).
func (b *Book) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// AdjustStock applies a signed delta. Delta 0 is a no-op.
func (b *Book) AdjustStock(delta int) error {
	if delta == 0 {
		return nil
	}
	if b.Stock+delta < 0 {
		return ErrInvalidStockDelta
	}
	b.Stock += delta
	b.UpdatedAt = time.Now()
	return nil
}

// UpdatePrice changes the unit price. Prices are non-negative; zero is
// allowed (promotional items in the source data).
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice < 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}
