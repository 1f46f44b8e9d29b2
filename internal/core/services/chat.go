package services

import (
	"context"
	"strings"
	"sync"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/mutation"
	"github.com/localrag/ragchat-cli/internal/core/ports/driven"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
	"github.com/localrag/ragchat-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// AssistantErrorText is appended as the assistant turn when a send
// fails, so the transcript keeps alternating and the failure is not
// silently dropped.
const AssistantErrorText = "Error communicating with server."

// ChatService owns the conversation transcript.
//
// The transcript is append-only: user messages are appended
// optimistically before the network call, assistant messages (or the
// error placeholder) strictly after the matching call completes. At
// most one turn is in flight at a time.
type ChatService struct {
	mu       sync.Mutex
	gateway  driven.BackendGateway
	history  []domain.Message
	sources  []domain.SourceRef
	provider domain.Provider
	model    string

	send *mutation.Controller[domain.TurnReply]
}

// NewChatService creates a chat service talking to the given gateway.
func NewChatService(gateway driven.BackendGateway, provider domain.Provider, model string) *ChatService {
	if !provider.Valid() {
		provider = domain.DefaultProvider
	}

	s := &ChatService{
		gateway:  gateway,
		provider: provider,
		model:    model,
	}
	s.send = mutation.New[domain.TurnReply]().
		OnSuccess(s.appendReply).
		OnError(s.appendFailure)
	return s
}

// Submit validates text and starts a turn. The user message is appended
// to the history before any network call is issued, so the user's own
// message can never display after the assistant's reply.
func (s *ChatService) Submit(text string) (domain.TurnRequest, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.TurnRequest{}, domain.ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.send.Pending() {
		return domain.TurnRequest{}, domain.ErrSendInProgress
	}

	// The server receives the history as it existed before this turn;
	// the new text travels only in the Message field.
	snapshot := make([]domain.Message, len(s.history))
	copy(snapshot, s.history)

	s.history = append(s.history, domain.NewUserMessage(trimmed))

	token := s.send.Begin()
	return domain.TurnRequest{
		ID:       token,
		Message:  trimmed,
		Provider: s.provider,
		Model:    s.model,
		History:  snapshot,
	}, nil
}

// Send performs the network call for a submitted turn.
func (s *ChatService) Send(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error) {
	logger.Debug("chat: sending turn %s via %s", req.ID, req.Provider)
	return s.gateway.SendMessage(ctx, req)
}

// Resolve completes the turn identified by requestID. Completions for
// superseded turns are discarded.
func (s *ChatService) Resolve(requestID string, reply domain.TurnReply, sendErr error) bool {
	if sendErr != nil {
		logger.Debug("chat: turn %s failed: %v", requestID, sendErr)
		return s.send.Fail(requestID, sendErr)
	}
	return s.send.Succeed(requestID, reply)
}

// Ask runs a full turn synchronously.
func (s *ChatService) Ask(ctx context.Context, text string) (domain.TurnReply, error) {
	req, err := s.Submit(text)
	if err != nil {
		return domain.TurnReply{}, err
	}

	reply, err := s.Send(ctx, req)
	s.Resolve(req.ID, reply, err)
	if err != nil {
		return domain.TurnReply{}, err
	}
	return reply, nil
}

// appendReply is the success hook: exactly one assistant message per
// completed turn.
func (s *ChatService) appendReply(reply domain.TurnReply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, domain.NewAssistantMessage(reply.Response))
	s.sources = reply.Sources
}

// appendFailure is the error hook: the placeholder keeps the length
// delta identical to the success case.
func (s *ChatService) appendFailure(error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, domain.NewAssistantMessage(AssistantErrorText))
	s.sources = nil
}

// History returns a copy of the transcript in insertion order.
func (s *ChatService) History() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Pending reports whether a turn is in flight.
func (s *ChatService) Pending() bool {
	return s.send.Pending()
}

// Sources returns the citations from the most recent successful turn.
func (s *ChatService) Sources() []domain.SourceRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.SourceRef, len(s.sources))
	copy(out, s.sources)
	return out
}

// Provider returns the active provider and model override.
func (s *ChatService) Provider() (domain.Provider, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider, s.model
}

// SetProvider switches the provider and model for subsequent turns.
// History accumulated under the previous provider is kept as-is.
func (s *ChatService) SetProvider(provider domain.Provider, model string) {
	if !provider.Valid() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = provider
	s.model = model
}

// Reset clears the transcript.
func (s *ChatService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.sources = nil
}
