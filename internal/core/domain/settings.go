package domain

import "time"

// Default configuration values.
const (
	// DefaultServerURL is the RAG server base endpoint.
	DefaultServerURL = "http://localhost:8000"

	// DefaultPollInterval is how often the document catalog refreshes.
	DefaultPollInterval = 10 * time.Second
)

// Settings holds the client configuration.
type Settings struct {
	// ServerURL is the base endpoint of the RAG server.
	ServerURL string

	// Provider is the default LLM provider for chat turns.
	Provider Provider

	// Model optionally pins a model for the default provider.
	Model string

	// PollInterval is the catalog auto-refresh period.
	PollInterval time.Duration
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		ServerURL:    DefaultServerURL,
		Provider:     DefaultProvider,
		PollInterval: DefaultPollInterval,
	}
}

// Normalise fills zero-valued fields with defaults and discards an
// invalid provider.
func (s Settings) Normalise() Settings {
	if s.ServerURL == "" {
		s.ServerURL = DefaultServerURL
	}
	if !s.Provider.Valid() {
		s.Provider = DefaultProvider
	}
	if s.PollInterval <= 0 {
		s.PollInterval = DefaultPollInterval
	}
	return s
}
