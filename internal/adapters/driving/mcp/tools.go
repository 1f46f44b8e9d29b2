package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to ask about the indexed documents"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Sources []SourceOutput `json:"sources,omitempty"`
}

// SourceOutput represents a single retrieval citation.
type SourceOutput struct {
	Source  string `json:"source"`
	Page    *int   `json:"page,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct{}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput represents a single catalog entry.
type DocumentOutput struct {
	ID             string `json:"id"`
	Source         string `json:"source"`
	Chunks         int    `json:"chunks"`
	EmbeddingModel string `json:"embedding_model,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered from the indexed documents",
	}, s.handleAsk)

	if s.ports.Catalog != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List the documents currently indexed on the server",
		}, s.handleListDocuments)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Chat.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:  reply.Response,
		Sources: make([]SourceOutput, len(reply.Sources)),
	}

	for i := range reply.Sources {
		output.Sources[i] = SourceOutput{
			Source:  reply.Sources[i].Source,
			Page:    reply.Sources[i].Page,
			Snippet: reply.Sources[i].Snippet,
		}
	}

	return nil, output, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	if err := s.ports.Catalog.Refresh(ctx); err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	records := s.ports.Catalog.Snapshot()

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(records)),
		Count:     len(records),
	}

	for i := range records {
		output.Documents[i] = DocumentOutput{
			ID:             records[i].ID,
			Source:         records[i].Source,
			Chunks:         records[i].Chunks,
			EmbeddingModel: records[i].EmbeddingModel,
		}
	}

	return nil, output, nil
}
