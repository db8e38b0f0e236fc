// Error handling utilities for the cards API.

package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/osaxon/nc-tech-test/pkg/card"
	"github.com/osaxon/nc-tech-test/pkg/store"
)

// Client-facing error messages. Details stay in the server log.
const (
	ErrMsgListCards   = "There was an error getting the cards."
	ErrMsgGetCard     = "There was an error getting the card."
	ErrMsgCreateCard  = "There was an error creating the card."
	ErrMsgDeleteCard  = "There was an error deleting the card."
	ErrMsgCardMissing = "Card not found"
	ErrMsgInvalidJSON = "Invalid JSON in request body"
	ErrMsgInternal    = "An internal error occurred"

	invalidCardPrefix   = "Invalid card: "
	invalidFilterPrefix = "Invalid filter: "
)

// sanitizeError logs err in full and returns the fixed client message for the
// failed operation.
func sanitizeError(err error, log *slog.Logger, operation, message string, details ...any) string {
	if log != nil {
		args := []any{"operation", operation, "error", err}
		var se *store.StorageError
		if errors.As(err, &se) {
			args = append(args, "storage_op", se.Op, "path", se.Path)
		}
		args = append(args, details...)
		log.Error("operation failed", args...)
	}
	return message
}

// filterMessage renders a filter error for the client.
func filterMessage(err error) string {
	reason := strings.TrimPrefix(err.Error(), card.ErrInvalidFilter.Error()+": ")
	return invalidFilterPrefix + reason
}
