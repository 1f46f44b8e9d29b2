package mcp

import (
	"context"
	"io"
	"time"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	reply   domain.TurnReply
	history []domain.Message
	sources []domain.SourceRef
	err     error
}

func (m *mockChatService) Submit(_ string) (domain.TurnRequest, error) {
	return domain.TurnRequest{}, m.err
}

func (m *mockChatService) Send(_ context.Context, _ domain.TurnRequest) (domain.TurnReply, error) {
	return m.reply, m.err
}

func (m *mockChatService) Resolve(_ string, _ domain.TurnReply, _ error) bool {
	return true
}

func (m *mockChatService) Ask(_ context.Context, _ string) (domain.TurnReply, error) {
	return m.reply, m.err
}

func (m *mockChatService) History() []domain.Message {
	return m.history
}

func (m *mockChatService) Pending() bool {
	return false
}

func (m *mockChatService) Sources() []domain.SourceRef {
	return m.sources
}

func (m *mockChatService) Provider() (domain.Provider, string) {
	return domain.DefaultProvider, ""
}

func (m *mockChatService) SetProvider(_ domain.Provider, _ string) {}

func (m *mockChatService) Reset() {}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	records []domain.DocumentRecord
	err     error
}

func (m *mockCatalogService) Refresh(_ context.Context) error {
	return m.err
}

func (m *mockCatalogService) Poll(_ context.Context) error {
	return m.err
}

func (m *mockCatalogService) Invalidate(_ context.Context) error {
	return m.err
}

func (m *mockCatalogService) Snapshot() []domain.DocumentRecord {
	return m.records
}

func (m *mockCatalogService) Get(documentID string) (domain.DocumentRecord, bool) {
	for _, rec := range m.records {
		if rec.ID == documentID {
			return rec, true
		}
	}
	return domain.DocumentRecord{}, false
}

func (m *mockCatalogService) State() driving.CatalogState {
	return driving.CatalogReady
}

func (m *mockCatalogService) Err() error {
	return m.err
}

func (m *mockCatalogService) Delete(_ context.Context, _ string, _ driving.ConfirmFunc) error {
	return m.err
}

func (m *mockCatalogService) Interval() time.Duration {
	return domain.DefaultPollInterval
}

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	result domain.UploadResult
	err    error
}

func (m *mockUploadService) Upload(_ context.Context, _ string) (domain.UploadResult, error) {
	return m.result, m.err
}

func (m *mockUploadService) UploadReader(
	_ context.Context,
	_ string,
	_ io.Reader,
) (domain.UploadResult, error) {
	return m.result, m.err
}

func (m *mockUploadService) Pending() bool {
	return false
}
