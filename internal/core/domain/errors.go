package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyMessage indicates a chat submission with no content.
	// Rejected locally; never reaches the transport layer.
	ErrEmptyMessage = errors.New("empty message")

	// ErrSendInProgress indicates a chat turn is already pending.
	// At most one send may be in flight per conversation.
	ErrSendInProgress = errors.New("send already in progress")

	// ErrDeleteCancelled indicates the user declined the delete
	// confirmation. No transport call is made.
	ErrDeleteCancelled = errors.New("delete cancelled")

	// ErrInvalidProvider indicates an unknown LLM provider name.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
