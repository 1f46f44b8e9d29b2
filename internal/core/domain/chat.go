package domain

// TurnRequest is one chat turn submitted to the server.
//
// History carries the transcript as it existed before this turn; the
// newly typed text travels only in Message and is never duplicated
// inside History. The server is stateless across turns, so the full
// context is replayed on every request.
type TurnRequest struct {
	// ID identifies this attempt so a completion can be matched back
	// to the submission that produced it.
	ID string

	// Message is the user's text for this turn.
	Message string

	// Provider selects the LLM backend.
	Provider Provider

	// Model optionally overrides the provider's default model.
	Model string

	// History is the pre-submission transcript snapshot.
	History []Message
}

// TurnReply is the server's answer to a chat turn.
type TurnReply struct {
	// Response is the assistant's answer text.
	Response string

	// Sources lists the retrieval citations backing the answer.
	Sources []SourceRef
}
