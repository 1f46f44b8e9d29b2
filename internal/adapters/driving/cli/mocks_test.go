package cli

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
	return m.reply.Sources
}

func (m *mockChatService) Provider() (domain.Provider, string) {
	return domain.DefaultProvider, ""
}

func (m *mockChatService) SetProvider(_ domain.Provider, _ string) {}

func (m *mockChatService) Reset() {}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	records    []domain.DocumentRecord
	err        error
	deletedIDs []string
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

func (m *mockCatalogService) Delete(
	_ context.Context,
	documentID string,
	confirm driving.ConfirmFunc,
) error {
	if m.err != nil {
		return m.err
	}
	doc, _ := m.Get(documentID)
	if confirm != nil && !confirm(doc) {
		return domain.ErrDeleteCancelled
	}
	m.deletedIDs = append(m.deletedIDs, documentID)
	return nil
}

func (m *mockCatalogService) Interval() time.Duration {
	return domain.DefaultPollInterval
}

// mockUploadService is a mock implementation of driving.UploadService.
type mockUploadService struct {
	result domain.UploadResult
	err    error
	paths  []string
}

func (m *mockUploadService) Upload(_ context.Context, path string) (domain.UploadResult, error) {
	if m.err != nil {
		return domain.UploadResult{}, m.err
	}
	m.paths = append(m.paths, path)
	return m.result, nil
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

// mockModelService is a mock implementation of driving.ModelService.
type mockModelService struct {
	models []string
	err    error
}

func (m *mockModelService) List(_ context.Context) ([]string, error) {
	return m.models, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() domain.Settings {
	return m.settings.Normalise()
}

func (m *mockSettingsService) Save(settings domain.Settings) error {
	if m.err != nil {
		return m.err
	}
	m.settings = settings
	return nil
}

func (m *mockSettingsService) SetProvider(provider domain.Provider, model string) error {
	if m.err != nil {
		return m.err
	}
	m.settings.Provider = provider
	m.settings.Model = model
	return nil
}

func (m *mockSettingsService) SetServerURL(url string) error {
	if m.err != nil {
		return m.err
	}
	m.settings.ServerURL = url
	return nil
}

// setupTestServices wires mock services into the command vars and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldChat := chatService
	oldCatalog := catalogService
	oldUpload := uploadService
	oldModels := modelService
	oldSettings := settingsService
	oldWired := servicesWired

	page := 2
	chatService = &mockChatService{
		reply: domain.TurnReply{
			Response: "The report covers Q3 revenue.",
			Sources: []domain.SourceRef{
				{Source: "report.pdf", Page: &page, Snippet: "Q3 revenue grew"},
			},
		},
	}
	catalogService = &mockCatalogService{
		records: []domain.DocumentRecord{
			{ID: "doc-1", Source: "report.pdf", Chunks: 12, EmbeddingModel: "nomic-embed-text"},
			{ID: "doc-2", Source: "notes.md", Chunks: 3},
		},
	}
	uploadService = &mockUploadService{
		result: domain.UploadResult{Filename: "report.pdf", Chunks: 12},
	}
	modelService = &mockModelService{
		models: []string{"llama3.2", "mistral"},
	}
	settingsService = &mockSettingsService{
		settings: domain.DefaultSettings(),
	}
	servicesWired = true

	return func() {
		chatService = oldChat
		catalogService = oldCatalog
		uploadService = oldUpload
		modelService = oldModels
		settingsService = oldSettings
		servicesWired = oldWired
	}
}
