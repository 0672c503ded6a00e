package services

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("prescription not found")

// ValidationError reports a rejected field. Message is shown to API clients as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " 字段是必需的"}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
