package domain

import (
	"errors"
	"net/http"
)

// ErrorCode classifies an AppError.
type ErrorCode int

// Error codes for business logic errors.
const (
	CodeNotFound ErrorCode = iota + 1
	CodeAlreadyExists
	CodeValidation
	CodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case CodeNotFound:
		return "not_found"
	case CodeAlreadyExists:
		return "already_exists"
	case CodeValidation:
		return "validation"
	case CodeInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError represents a business logic error with a code, message, and optional wrapped error.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *AppError with the same code that is either
// that code's category sentinel (ErrNotFound, ErrValidation, ...) or carries
// the same message. errors.Is(err, ErrValidation) therefore matches every
// validation error, while errors.Is(err, ErrInvalidPage) matches only that one.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || e.Code != t.Code {
		return false
	}
	return t == categorySentinel(t.Code) || e.Message == t.Message
}

// Category sentinels, one per code.
var (
	ErrNotFound      = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &AppError{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation    = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &AppError{Code: CodeInternal, Message: "internal error"}
)

// Pagination errors. Their messages are part of the API.
var (
	ErrInvalidPage  = &AppError{Code: CodeValidation, Message: "Page must be greater than 0"}
	ErrInvalidLimit = &AppError{Code: CodeValidation, Message: "Limit must be greater than 0"}
)

func categorySentinel(code ErrorCode) *AppError {
	switch code {
	case CodeNotFound:
		return ErrNotFound
	case CodeAlreadyExists:
		return ErrAlreadyExists
	case CodeValidation:
		return ErrValidation
	case CodeInternal:
		return ErrInternal
	default:
		return nil
	}
}

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HTTPStatusCode maps an error to an HTTP status code. Anything that is not a
// not-found, conflict or validation AppError is a 500.
func HTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
