package errors

import (
	goerrors "errors"
	"fmt"
)

// AppError is the error type shared by all domain components. The HTTP layer
// is the only place that reads StatusCode; everything below it deals in the
// Code kind only.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// WithMessage returns a copy of the error carrying a request-specific message.
// The sentinel values in codes.go stay untouched.
func (e *AppError) WithMessage(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    fmt.Sprintf(format, args...),
		StatusCode: e.StatusCode,
	}
}

// Is makes AppError work with the stdlib errors.Is by comparing kinds.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Is re-exports the stdlib matcher so callers need a single errors import.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}
