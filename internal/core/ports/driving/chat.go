package driving

import (
	"context"

	"github.com/localrag/ragchat-cli/internal/core/domain"
)

// ChatService owns the conversation transcript and the lifecycle of
// chat turns. The transcript is append-only and lives for the lifetime
// of the service; it is never persisted.
//
// Asynchronous callers (the TUI) drive a turn in three steps: Submit
// validates and optimistically appends the user message, Send performs
// the network call, and Resolve appends the assistant reply or the
// error placeholder. Synchronous callers use Ask, which chains all
// three.
type ChatService interface {
	// Submit validates text and starts a turn. The user message is
	// appended to the history before any network activity. Returns
	// domain.ErrEmptyMessage for blank input and
	// domain.ErrSendInProgress while a turn is pending; in both cases
	// the history is untouched.
	Submit(text string) (domain.TurnRequest, error)

	// Send performs the network call for a submitted turn.
	Send(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error)

	// Resolve completes the turn identified by req.ID. On success the
	// assistant reply is appended; on failure a fixed error placeholder
	// is appended instead, keeping turn alternation intact. Completions
	// for superseded turns are discarded; Resolve reports whether the
	// completion was accepted.
	Resolve(requestID string, reply domain.TurnReply, sendErr error) bool

	// Ask runs a full turn synchronously. The reply is returned even
	// though it is also appended to the history.
	Ask(ctx context.Context, text string) (domain.TurnReply, error)

	// History returns a copy of the transcript in insertion order.
	History() []domain.Message

	// Pending reports whether a turn is in flight.
	Pending() bool

	// Sources returns the citations from the most recent successful turn.
	Sources() []domain.SourceRef

	// Provider returns the active provider and model override.
	Provider() (domain.Provider, string)

	// SetProvider switches the provider and model for subsequent turns.
	// The history is preserved across switches.
	SetProvider(provider domain.Provider, model string)

	// Reset clears the transcript.
	Reset()
}
