package book

import (
	"context"
	"strings"
)

// Service holds catalog business rules that span the entity and the store:
// input validation on add, reference resolution, removal counting.
type Service interface {
	// AddBook validates and persists a new catalog entry.
	AddBook(ctx context.Context, title, author, genre string, price int64, stock int) (*Book, error)

	// GetBook resolves a reference to a single book.
	GetBook(ctx context.Context, ref Ref) (*Book, error)

	// RemoveBook deletes by reference and returns the rows removed.
	RemoveBook(ctx context.Context, ref Ref) (int64, error)

	// ListBooks runs a paged catalog query.
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

type service struct {
	repo Repository
}

// NewService creates the catalog domain service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook validates and persists a new book.
// Rules: title and author required, price >= 0, stock >= 0. The title+author
// uniqueness constraint is enforced by the store's unique index; the
// repository maps the duplicate-key error to ErrTitleAuthorDuplicate.
func (s *service) AddBook(ctx context.Context, title, author, genre string, price int64, stock int) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if title == "" || author == "" {
		return nil, ErrMissingFields
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	b := NewBook(title, author, strings.TrimSpace(genre), price, stock)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetBook(ctx context.Context, ref Ref) (*Book, error) {
	if ref.IsZero() {
		return nil, ErrEmptyRef
	}
	return s.repo.FindByRef(ctx, ref)
}

func (s *service) RemoveBook(ctx context.Context, ref Ref) (int64, error) {
	if ref.IsZero() {
		return 0, ErrEmptyRef
	}
	return s.repo.DeleteByRef(ctx, ref)
}

func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}
