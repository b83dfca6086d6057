package apperror

import (
	"errors"
	"fmt"
)

// Sentinel kinds; wrap with AppError for a descriptive message and use
// errors.Is against these to branch on the kind.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNoChange            = errors.New("no change")
	ErrValidation          = errors.New("validation error")
)

type AppError struct {
	Err     error  // kind sentinel
	Message string // human-readable message surfaced to the caller
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether err wraps the given kind sentinel.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

func InvalidCategory(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidCategory,
		Message: message,
	}
}

func InsufficientCredits(category int) *AppError {
	return &AppError{
		Err:     ErrInsufficientCredits,
		Message: fmt.Sprintf("not enough free or paid credits in category %d", category),
	}
}

func NoChange() *AppError {
	return &AppError{
		Err:     ErrNoChange,
		Message: "no changes detected",
	}
}

func Validation(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
