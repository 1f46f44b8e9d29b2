// Package tui provides the interactive terminal user interface for ragchat.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat owns the conversation transcript and turn lifecycle.
	Chat driving.ChatService

	// Catalog caches the server document catalog.
	Catalog driving.CatalogService

	// Upload sends documents for ingestion.
	Upload driving.UploadService

	// Models lists the models available on the local provider.
	Models driving.ModelService

	// Settings manages the persisted client configuration.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	chat driving.ChatService,
	catalog driving.CatalogService,
	upload driving.UploadService,
) *Ports {
	return &Ports{
		Chat:    chat,
		Catalog: catalog,
		Upload:  upload,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Upload == nil {
		return ErrMissingUploadService
	}
	return nil
}
