package book

import (
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// Book domain errors.
var (
	// ErrBookNotFound - no book matched the reference.
	ErrBookNotFound = apperrors.New(apperrors.CodeBookNotFound, "book not found")

	// ErrTitleAuthorDuplicate - the title+author pair already exists.
	ErrTitleAuthorDuplicate = apperrors.New(apperrors.CodeDuplicateEntry, "a book with this title and author already exists")

	// ErrInvalidPrice - price must be a non-negative amount.
	ErrInvalidPrice = apperrors.New(apperrors.CodeValidation, "price must not be negative")

	// ErrInvalidStock - stock must be a non-negative integer.
	ErrInvalidStock = apperrors.New(apperrors.CodeValidation, "stock must not be negative")

	// ErrMissingFields - title and author are required.
	ErrMissingFields = apperrors.New(apperrors.CodeValidation, "title and author are required")

	// ErrInvalidQuantity - quantity must be greater than zero.
	ErrInvalidQuantity = apperrors.New(apperrors.CodeInvalidQuantity, "quantity must be greater than zero")

	// ErrInvalidStockDelta - the adjustment would drive stock negative.
	ErrInvalidStockDelta = apperrors.New(apperrors.CodeInvalidQuantity, "stock adjustment would drive stock below zero")

	// ErrInsufficientStock - requested quantity exceeds available stock.
	ErrInsufficientStock = apperrors.New(apperrors.CodeInsufficientStock, "insufficient stock")

	// ErrEmptyRef - an empty reference was supplied.
	ErrEmptyRef = apperrors.New(apperrors.CodeValidation, "book reference must not be empty")
)
