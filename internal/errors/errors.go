package errors

import "fmt"

// ErrorCode represents a Nutrilog error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrValidation     ErrorCode = "VALIDATION"      // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// Error represents a structured error with code, status, and details.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a food, user, or resource that
// cannot be resolved.
func NewNotFound(kind, identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewValidation creates a 422 error naming the offending field.
func NewValidation(field, msg string) *Error {
	return &Error{
		Code:    ErrValidation,
		Status:  422,
		Message: fmt.Sprintf("invalid %s: %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a nutrilog Error with the given code.
func Is(err error, code ErrorCode) bool {
	if nErr, ok := err.(*Error); ok {
		return nErr.Code == code
	}
	return false
}
