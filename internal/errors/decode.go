package errors

import (
	"errors"
	"fmt"
)

// DecodeError is returned when inline button data cannot be parsed.
type DecodeError struct {
	Data   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed callback data %q: %s", e.Data, e.Reason)
}

// NewDecodeError creates a DecodeError for the given raw data.
func NewDecodeError(data, reason string) *DecodeError {
	return &DecodeError{Data: data, Reason: reason}
}

// IsDecodeError reports whether err is a DecodeError (even when wrapped).
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}
