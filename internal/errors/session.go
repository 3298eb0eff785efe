package errors

import (
	"errors"
	"fmt"
)

// NoActiveSessionError is returned when a conversation paginates without a remembered search.
type NoActiveSessionError struct {
	ConversationID int64
}

func (e *NoActiveSessionError) Error() string {
	return fmt.Sprintf("no active search for conversation %d", e.ConversationID)
}

// NewNoActiveSessionError creates a NoActiveSessionError.
func NewNoActiveSessionError(conversationID int64) *NoActiveSessionError {
	return &NoActiveSessionError{ConversationID: conversationID}
}

// IsNoActiveSessionError reports whether err is a NoActiveSessionError (even when wrapped).
func IsNoActiveSessionError(err error) bool {
	var sessErr *NoActiveSessionError
	return errors.As(err, &sessErr)
}
