package core

import "errors"

// ErrNotFound is returned when a record, or a record it references, does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a missing or malformed input field. Message is
// user-facing and is returned to clients as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
