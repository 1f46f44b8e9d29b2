package driving

import (
	"context"
	"io"

	"github.com/localrag/ragchat-cli/internal/core/domain"
)

// UploadService sends documents to the server for ingestion.
type UploadService interface {
	// Upload reads the file at path and sends it for ingestion.
	Upload(ctx context.Context, path string) (domain.UploadResult, error)

	// UploadReader sends already-open content under the given filename.
	UploadReader(ctx context.Context, filename string, content io.Reader) (domain.UploadResult, error)

	// Pending reports whether an upload is in flight.
	Pending() bool
}

// ModelService lists the models available on the local provider.
type ModelService interface {
	// List returns model names in server order.
	List(ctx context.Context) ([]string, error)
}
