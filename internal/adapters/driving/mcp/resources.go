package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// URIScheme is the custom URI scheme for ragchat resources.
	uriScheme = "ragchat://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the document catalog.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Catalog of all documents indexed on the server",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	// Template for a single catalog entry.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "Catalog entry for a specific document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)

	// Static resource for the conversation transcript.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "transcript",
		Name:        "transcript",
		Description: "The current conversation transcript",
		MIMEType:    "application/json",
	}, s.handleTranscriptResource)
}

// handleCatalogResource returns the cached document catalog.
func (s *Server) handleCatalogResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	if err := s.ports.Catalog.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("refreshing catalog: %w", err)
	}

	records := s.ports.Catalog.Snapshot()

	infos := make([]DocumentOutput, len(records))
	for i := range records {
		infos[i] = DocumentOutput{
			ID:             records[i].ID,
			Source:         records[i].Source,
			Chunks:         records[i].Chunks,
			EmbeddingModel: records[i].EmbeddingModel,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling catalog: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentResource returns the catalog entry for a specific document.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: ragchat://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	record, ok := s.ports.Catalog.Get(docID)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info := DocumentOutput{
		ID:             record.ID,
		Source:         record.Source,
		Chunks:         record.Chunks,
		EmbeddingModel: record.EmbeddingModel,
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleTranscriptResource returns the conversation transcript.
func (s *Server) handleTranscriptResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	history := s.ports.Chat.History()

	type turn struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	turns := make([]turn, len(history))
	for i := range history {
		turns[i] = turn{
			Role:    string(history[i].Role),
			Content: history[i].Content,
		}
	}

	data, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling transcript: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like ragchat://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
