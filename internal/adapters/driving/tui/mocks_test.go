package tui

import (
	"context"
	"io"
	"time"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

type mockChatService struct {
	submitFunc  func(text string) (domain.TurnRequest, error)
	sendFunc    func(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error)
	resolveFunc func(requestID string, reply domain.TurnReply, sendErr error) bool
	history     []domain.Message
	pending     bool
}

func (m *mockChatService) Submit(text string) (domain.TurnRequest, error) {
	if m.submitFunc != nil {
		return m.submitFunc(text)
	}
	return domain.TurnRequest{ID: "req-1", Message: text}, nil
}

func (m *mockChatService) Send(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error) {
	if m.sendFunc != nil {
		return m.sendFunc(ctx, req)
	}
	return domain.TurnReply{Response: "reply"}, nil
}

func (m *mockChatService) Resolve(requestID string, reply domain.TurnReply, sendErr error) bool {
	if m.resolveFunc != nil {
		return m.resolveFunc(requestID, reply, sendErr)
	}
	return true
}

func (m *mockChatService) Ask(context.Context, string) (domain.TurnReply, error) {
	return domain.TurnReply{}, nil
}

func (m *mockChatService) History() []domain.Message   { return m.history }
func (m *mockChatService) Pending() bool               { return m.pending }
func (m *mockChatService) Sources() []domain.SourceRef { return nil }

func (m *mockChatService) Provider() (domain.Provider, string) {
	return domain.DefaultProvider, ""
}

func (m *mockChatService) SetProvider(domain.Provider, string) {}
func (m *mockChatService) Reset()                              {}

type mockCatalogService struct {
	refreshFunc func(ctx context.Context) error
	snapshot    []domain.DocumentRecord
	state       driving.CatalogState
}

func (m *mockCatalogService) Refresh(ctx context.Context) error {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil
}

func (m *mockCatalogService) Poll(ctx context.Context) error       { return m.Refresh(ctx) }
func (m *mockCatalogService) Invalidate(ctx context.Context) error { return m.Refresh(ctx) }

func (m *mockCatalogService) Snapshot() []domain.DocumentRecord { return m.snapshot }

func (m *mockCatalogService) Get(id string) (domain.DocumentRecord, bool) {
	for _, doc := range m.snapshot {
		if doc.ID == id {
			return doc, true
		}
	}
	return domain.DocumentRecord{}, false
}

func (m *mockCatalogService) State() driving.CatalogState { return m.state }
func (m *mockCatalogService) Err() error                  { return nil }

func (m *mockCatalogService) Delete(context.Context, string, driving.ConfirmFunc) error {
	return nil
}

func (m *mockCatalogService) Interval() time.Duration { return domain.DefaultPollInterval }

type mockUploadService struct {
	uploadFunc func(ctx context.Context, path string) (domain.UploadResult, error)
}

func (m *mockUploadService) Upload(ctx context.Context, path string) (domain.UploadResult, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, path)
	}
	return domain.UploadResult{}, nil
}

func (m *mockUploadService) UploadReader(_ context.Context, filename string, _ io.Reader) (domain.UploadResult, error) {
	return domain.UploadResult{Filename: filename}, nil
}

func (m *mockUploadService) Pending() bool { return false }

type mockModelService struct{}

func (m *mockModelService) List(context.Context) ([]string, error) {
	return []string{"llama3.2"}, nil
}

type mockSettingsService struct{}

func (m *mockSettingsService) Get() domain.Settings                   { return domain.DefaultSettings() }
func (m *mockSettingsService) Save(domain.Settings) error             { return nil }
func (m *mockSettingsService) SetProvider(domain.Provider, string) error { return nil }
func (m *mockSettingsService) SetServerURL(string) error              { return nil }
