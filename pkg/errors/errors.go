package errors

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField      = errors.New("required field missing")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrSourceUnavailable = errors.New("source unavailable")
)

const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitInvalid           = 2
	ExitMissingField      = 3
	ExitSourceUnavailable = 4
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// MissingField reports a required column absent from an input schema.
func MissingField(source string, field string) *AppError {
	return Newf(ErrMissingField, ExitMissingField, "column %q not found in %s", field, source)
}

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrMissingField):
		return ExitMissingField
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidConfig):
		return ExitInvalid
	case errors.Is(err, ErrSourceUnavailable):
		return ExitSourceUnavailable
	default:
		return ExitFailure
	}
}
