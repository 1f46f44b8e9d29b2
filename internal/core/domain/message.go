package domain

import "strings"

// Role identifies the author of a conversation message.
type Role string

const (
	// RoleUser marks a message typed by the user.
	RoleUser Role = "user"

	// RoleAssistant marks a response generated by the backend.
	RoleAssistant Role = "assistant"

	// RoleSystem marks an instruction message. The client never creates
	// these itself; the server may inject them when building prompts.
	RoleSystem Role = "system"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Message is a single entry in the conversation transcript.
// Messages are immutable once created: they are appended to the
// history in insertion order and never mutated or removed.
type Message struct {
	// Role is the author of the message.
	Role Role

	// Content is the message text.
	Content string
}

// NewUserMessage creates a user message with trimmed content.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: strings.TrimSpace(content)}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
