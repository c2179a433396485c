package purchase

import (
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// Purchase domain errors.
var (
	// ErrPurchaseNotFound - no ledger entry matched.
	ErrPurchaseNotFound = apperrors.New(apperrors.CodePurchaseNotFound, "purchase not found")

	// ErrInvalidQuantity - quantity must be greater than zero.
	ErrInvalidQuantity = apperrors.New(apperrors.CodeInvalidQuantity, "quantity must be greater than zero")

	// ErrInvalidDuration - the access duration must not be negative.
	ErrInvalidDuration = apperrors.New(apperrors.CodeValidation, "access duration must not be negative")
)
