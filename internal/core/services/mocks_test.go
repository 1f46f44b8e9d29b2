package services

import (
	"context"
	"io"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driven"
)

// mockGateway implements driven.BackendGateway for testing.
type mockGateway struct {
	UploadFunc         func(ctx context.Context, filename string, content io.Reader) (domain.UploadResult, error)
	SendMessageFunc    func(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error)
	ListModelsFunc     func(ctx context.Context) ([]string, error)
	ListDocumentsFunc  func(ctx context.Context) ([]domain.DocumentRecord, error)
	DeleteDocumentFunc func(ctx context.Context, documentID string) error
}

var _ driven.BackendGateway = (*mockGateway)(nil)

func (m *mockGateway) Upload(ctx context.Context, filename string, content io.Reader) (domain.UploadResult, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, content)
	}
	return domain.UploadResult{}, nil
}

func (m *mockGateway) SendMessage(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error) {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, req)
	}
	return domain.TurnReply{}, nil
}

func (m *mockGateway) ListModels(ctx context.Context) ([]string, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return nil, nil
}

func (m *mockGateway) ListDocuments(ctx context.Context) ([]domain.DocumentRecord, error) {
	if m.ListDocumentsFunc != nil {
		return m.ListDocumentsFunc(ctx)
	}
	return nil, nil
}

func (m *mockGateway) DeleteDocument(ctx context.Context, documentID string) error {
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(ctx, documentID)
	}
	return nil
}
