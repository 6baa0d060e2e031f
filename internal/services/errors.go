package services

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of unknown record ids. The API layer maps it to
// a 404 response.
var ErrNotFound = errors.New("record not found")

// ValidationError marks rejected input (empty text, out-of-range rating).
// The API layer maps it to a 400 response.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
