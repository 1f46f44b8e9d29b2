package driving

import "github.com/localrag/ragchat-cli/internal/core/domain"

// SettingsService manages the persisted client configuration.
type SettingsService interface {
	// Get retrieves current settings with defaults applied.
	Get() domain.Settings

	// Save persists settings.
	Save(settings domain.Settings) error

	// SetProvider updates the default provider and model.
	SetProvider(provider domain.Provider, model string) error

	// SetServerURL updates the server base endpoint.
	SetServerURL(url string) error
}
