package mcp

import (
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions against the indexed documents.
	Chat driving.ChatService

	// Catalog exposes the server document catalog.
	Catalog driving.CatalogService

	// Upload sends documents for ingestion.
	Upload driving.UploadService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	// Catalog and Upload are optional
	return nil
}
