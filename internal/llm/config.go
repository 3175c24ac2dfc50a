package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// ProviderType represents the type of LLM provider.
type ProviderType string

const (
	ProviderOpenAI    ProviderType = "openai"
	ProviderGroq      ProviderType = "groq"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderGoogle    ProviderType = "google"
	ProviderOllama    ProviderType = "ollama"
	ProviderMock      ProviderType = "mock"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// Default models per provider type.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI:    "gpt-3.5-turbo",
	ProviderGroq:      "mixtral-8x7b-32768",
	ProviderAnthropic: "claude-3-haiku-20240307",
	ProviderGoogle:    "gemini-1.5-flash",
	ProviderOllama:    "llama3",
	ProviderMock:      "mock-model",
}

// LLMConfig contains the root LLM provider configuration.
// It specifies which provider to use by default and the settings
// for each provider that may be selected per request.
type LLMConfig struct {
	DefaultProvider string                    `mapstructure:"default_provider" yaml:"default_provider" validate:"required"`
	Providers       map[string]ProviderConfig `mapstructure:"providers" yaml:"providers" validate:"required,min=1,dive"`
}

// Validate ensures the default provider exists and every provider configuration is usable.
func (c *LLMConfig) Validate() error {
	if c.DefaultProvider == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "default_provider cannot be empty")
	}

	if len(c.Providers) == 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "providers map cannot be empty")
	}

	if _, exists := c.Providers[c.DefaultProvider]; !exists {
		return types.NewError(
			types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("default_provider '%s' not found in providers map", c.DefaultProvider),
		)
	}

	for _, name := range c.ProviderNames() {
		provider := c.Providers[name]
		if err := provider.Validate(); err != nil {
			return types.WrapError(
				types.CONFIG_VALIDATION_FAILED,
				fmt.Sprintf("provider '%s' validation failed", name),
				err,
			)
		}
	}

	return nil
}

// ProviderNames returns the configured provider names in sorted order.
func (c *LLMConfig) ProviderNames() []string {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProviderConfig contains configuration for a specific LLM provider.
type ProviderConfig struct {
	Type        ProviderType `mapstructure:"type" yaml:"type" validate:"required,oneof=openai groq anthropic google ollama mock"`
	APIKey      string       `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string       `mapstructure:"base_url" yaml:"base_url" validate:"omitempty,url"`
	Model       string       `mapstructure:"model" yaml:"model"`
	Temperature float64      `mapstructure:"temperature" yaml:"temperature" validate:"min=0,max=2"`
	MaxTokens   int          `mapstructure:"max_tokens" yaml:"max_tokens" validate:"min=0"`

	// Responses are replayed in order by the mock provider.
	Responses []string `mapstructure:"responses" yaml:"responses"`
}

// RequiresAPIKey reports whether the provider type talks to a hosted API.
func (p *ProviderConfig) RequiresAPIKey() bool {
	switch p.Type {
	case ProviderOllama, ProviderMock:
		return false
	default:
		return true
	}
}

// Validate ensures all required fields for the provider type are present.
func (p *ProviderConfig) Validate() error {
	if p.Type == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "provider type cannot be empty")
	}

	if _, known := defaultModels[p.Type]; !known {
		return types.NewError(
			types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("invalid provider type '%s', must be one of: openai, groq, anthropic, google, ollama, mock", p.Type),
		)
	}

	if p.RequiresAPIKey() && p.APIKey == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("api_key is required for %s providers", p.Type))
	}

	if p.Temperature < 0 || p.Temperature > 2 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("temperature must be between 0 and 2, got %g", p.Temperature))
	}

	if p.MaxTokens < 0 {
		return types.NewError(types.CONFIG_VALIDATION_FAILED,
			fmt.Sprintf("max_tokens must be non-negative, got %d", p.MaxTokens))
	}

	return nil
}

// GetModel returns the configured model or the default for the provider type.
func (p *ProviderConfig) GetModel() string {
	if p.Model != "" {
		return p.Model
	}
	return defaultModels[p.Type]
}

// GetBaseURL returns the base URL for a provider, with defaults for known providers.
func (p *ProviderConfig) GetBaseURL() string {
	if p.BaseURL != "" {
		return p.BaseURL
	}

	switch p.Type {
	case ProviderOpenAI:
		return "https://api.openai.com/v1"
	case ProviderGroq:
		return GroqBaseURL
	case ProviderOllama:
		return "http://localhost:11434"
	default:
		return ""
	}
}

// NormalizeProviderName normalizes provider names to lowercase for consistent lookup.
func NormalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
