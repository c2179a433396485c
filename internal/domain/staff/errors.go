package staff

import (
	apperrors "github.com/pkozlowski/bookstore/pkg/errors"
)

// Staff domain errors.
var (
	// ErrStaffNotFound - no staff account matched.
	ErrStaffNotFound = apperrors.New(apperrors.CodeStaffNotFound, "staff account not found")

	// ErrEmailDuplicate - the email is already registered.
	ErrEmailDuplicate = apperrors.New(apperrors.CodeEmailDuplicate, "email is already registered")

	// ErrWeakPassword - 8-20 characters with letters and digits required.
	ErrWeakPassword = apperrors.New(apperrors.CodeWeakPassword, "password must be 8-20 characters and contain letters and digits")
)
