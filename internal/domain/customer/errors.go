package customer

import (
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// Customer domain errors.
var (
	// ErrCustomerNotFound - no customer matched the reference.
	ErrCustomerNotFound = apperrors.New(apperrors.CodeCustomerNotFound, "customer not found")

	// ErrEmailDuplicate - the email is already registered.
	ErrEmailDuplicate = apperrors.New(apperrors.CodeEmailDuplicate, "email is already registered")

	// ErrInvalidEmail - the email does not match local@domain.tld.
	ErrInvalidEmail = apperrors.New(apperrors.CodeValidation, "invalid email address")

	// ErrMissingFields - name and email are required.
	ErrMissingFields = apperrors.New(apperrors.CodeValidation, "name and email are required")

	// ErrEmptyRef - an empty reference was supplied.
	ErrEmptyRef = apperrors.New(apperrors.CodeValidation, "customer reference must not be empty")
)
