package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/mutation"
	"github.com/localrag/ragchat-cli/internal/core/ports/driven"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
	"github.com/localrag/ragchat-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService sends documents to the server for ingestion.
type UploadService struct {
	gateway driven.BackendGateway
	send    *mutation.Controller[domain.UploadResult]
}

// NewUploadService creates an upload service talking to the gateway.
func NewUploadService(gateway driven.BackendGateway) *UploadService {
	return &UploadService{
		gateway: gateway,
		send:    mutation.New[domain.UploadResult](),
	}
}

// Upload reads the file at path and sends it for ingestion.
func (s *UploadService) Upload(ctx context.Context, path string) (domain.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return s.UploadReader(ctx, filepath.Base(path), f)
}

// UploadReader sends already-open content under the given filename.
func (s *UploadService) UploadReader(ctx context.Context, filename string, content io.Reader) (domain.UploadResult, error) {
	token := s.send.Begin()

	result, err := s.gateway.Upload(ctx, filename, content)
	if err != nil {
		s.send.Fail(token, err)
		return domain.UploadResult{}, fmt.Errorf("upload %s: %w", filename, err)
	}

	s.send.Succeed(token, result)
	logger.Debug("upload: %s ingested as %d chunks", result.Filename, result.Chunks)
	return result, nil
}

// Pending reports whether an upload is in flight.
func (s *UploadService) Pending() bool {
	return s.send.Pending()
}
