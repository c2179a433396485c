package errors

import (
	"errors"
	"fmt"
)

// AppError is the error type every operation hands back to the caller.
// Code is a business error code (not an HTTP status) so clients can branch
// on failure kind. Err keeps the underlying cause for logs only; it is never
// serialized to the client.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap makes AppError work with errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a business code and a user-facing message.
func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf is New with a formatted message.
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap converts a low-level failure (database, broker, cache) into an
// internal AppError. The cause stays attached for logging.
func Wrap(err error, message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{Code: CodeInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// Error codes.
// 4xxxx: caller errors (bad input, business rule violations)
// 5xxxx: server errors (store failures, broker failures)
const (
	// System errors (50000-50099)
	CodeInternal      = 50000
	CodeDatabaseError = 50001
	CodeCacheError    = 50002
	CodeBrokerError   = 50003

	// Authentication (40100-40199)
	CodeUnauthorized    = 40100
	CodeInvalidToken    = 40101
	CodeTokenExpired    = 40102
	CodeInvalidPassword = 40103

	// Missing resources (40400-40499)
	CodeNotFound         = 40400
	CodeCustomerNotFound = 40401
	CodeBookNotFound     = 40402
	CodePurchaseNotFound = 40403
	CodeStaffNotFound    = 40404

	// Business rules (40000-40099)
	CodeBusinessError     = 40000
	CodeInsufficientStock = 40001
	CodeInvalidQuantity   = 40002
	CodeEmailDuplicate    = 40003
	CodeWeakPassword      = 40005
	CodeDuplicateEntry    = 40009

	// Validation (40900-40999)
	CodeValidation = 40900
	CodeBindError  = 40901
)

// Predefined errors shared across packages.
var (
	ErrInternal      = New(CodeInternal, "internal error")
	ErrDatabaseError = New(CodeDatabaseError, "database error")
	ErrCacheError    = New(CodeCacheError, "cache service error")

	ErrUnauthorized    = New(CodeUnauthorized, "authentication required")
	ErrInvalidToken    = New(CodeInvalidToken, "invalid token")
	ErrTokenExpired    = New(CodeTokenExpired, "token expired")
	ErrInvalidPassword = New(CodeInvalidPassword, "wrong password")

	ErrValidation = New(CodeValidation, "invalid parameters")
	ErrBindError  = New(CodeBindError, "malformed request body")
)

// IsAppError reports whether err carries an AppError anywhere in its chain.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts the AppError from err, wrapping unknown errors as
// internal so the caller always gets a coded result.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "internal error")
}

// IsCode reports whether err is an AppError with the given business code.
func IsCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
