package services

import (
	"fmt"
	"time"

	"github.com/localrag/ragchat-cli/internal/core/domain"
	"github.com/localrag/ragchat-cli/internal/core/ports/driven"
	"github.com/localrag/ragchat-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyServerURL    = "server.url"
	keyChatProvider = "chat.provider"
	keyChatModel    = "chat.model"
	keyPollSeconds  = "catalog.poll_interval_seconds"
)

// SettingsService manages the persisted client configuration.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a settings service backed by the store.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings with defaults applied.
func (s *SettingsService) Get() domain.Settings {
	settings := domain.Settings{
		ServerURL: s.configStore.GetString(keyServerURL),
		Provider:  domain.Provider(s.configStore.GetString(keyChatProvider)),
		Model:     s.configStore.GetString(keyChatModel),
	}
	if secs := s.configStore.GetInt(keyPollSeconds); secs > 0 {
		settings.PollInterval = time.Duration(secs) * time.Second
	}
	return settings.Normalise()
}

// Save persists settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	settings = settings.Normalise()

	if err := s.configStore.Set(keyServerURL, settings.ServerURL); err != nil {
		return fmt.Errorf("save server url: %w", err)
	}
	if err := s.configStore.Set(keyChatProvider, settings.Provider.String()); err != nil {
		return fmt.Errorf("save provider: %w", err)
	}
	if err := s.configStore.Set(keyChatModel, settings.Model); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := s.configStore.Set(keyPollSeconds, int(settings.PollInterval/time.Second)); err != nil {
		return fmt.Errorf("save poll interval: %w", err)
	}
	return nil
}

// SetProvider updates the default provider and model.
func (s *SettingsService) SetProvider(provider domain.Provider, model string) error {
	if !provider.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidProvider, provider)
	}

	settings := s.Get()
	settings.Provider = provider
	settings.Model = model
	return s.Save(settings)
}

// SetServerURL updates the server base endpoint.
func (s *SettingsService) SetServerURL(url string) error {
	if url == "" {
		return fmt.Errorf("%w: server url must not be empty", domain.ErrInvalidInput)
	}

	settings := s.Get()
	settings.ServerURL = url
	return s.Save(settings)
}
