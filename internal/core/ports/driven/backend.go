package driven

import (
	"context"
	"io"

	"github.com/localrag/ragchat-cli/internal/core/domain"
)

// BackendGateway is the transport boundary to the RAG server.
//
// Every call is stateless beyond its explicit arguments: the server keeps
// no session, so chat history is replayed in full on each turn. The
// gateway normalises all transport failures (connection refused, timeout,
// non-2xx status, malformed body) into a single error type and performs
// no retries; re-triggering is always a caller decision.
type BackendGateway interface {
	// Upload sends a file for ingestion. The resulting DocumentRecord is
	// not returned synchronously; it appears on the next catalog refresh.
	Upload(ctx context.Context, filename string, content io.Reader) (domain.UploadResult, error)

	// SendMessage submits one chat turn and returns the assistant reply.
	SendMessage(ctx context.Context, req domain.TurnRequest) (domain.TurnReply, error)

	// ListModels returns the locally available model names, in server order.
	ListModels(ctx context.Context) ([]string, error)

	// ListDocuments returns the full document catalog.
	ListDocuments(ctx context.Context) ([]domain.DocumentRecord, error)

	// DeleteDocument removes an ingested document and its chunks.
	DeleteDocument(ctx context.Context, documentID string) error
}
