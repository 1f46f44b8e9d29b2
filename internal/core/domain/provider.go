package domain

import "fmt"

// Provider identifies an LLM backend provider the server can route to.
type Provider string

const (
	// ProviderOllama routes to a local Ollama instance. This is the only
	// provider with a client-visible model list (GET /models).
	ProviderOllama Provider = "ollama"

	// ProviderOpenAI routes to OpenAI. Requires a server-side API key.
	ProviderOpenAI Provider = "openai"

	// ProviderGemini routes to Google Gemini. Requires a server-side API key.
	ProviderGemini Provider = "gemini"

	// ProviderAnthropic routes to Anthropic. Requires a server-side API key.
	ProviderAnthropic Provider = "anthropic"
)

// DefaultProvider is used when no provider has been configured.
const DefaultProvider = ProviderOllama

// AllProviders lists the supported providers in display order.
func AllProviders() []Provider {
	return []Provider{ProviderOllama, ProviderOpenAI, ProviderGemini, ProviderAnthropic}
}

// Valid reports whether the provider is one of the supported values.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI, ProviderGemini, ProviderAnthropic:
		return true
	}
	return false
}

// String returns the wire representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Local reports whether the provider runs without a remote API key.
func (p Provider) Local() bool {
	return p == ProviderOllama
}

// ParseProvider converts a string into a Provider.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidProvider, s)
	}
	return p, nil
}
