package providers

import (
	"context"
	"fmt"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// defaultMockResponses keep the mock provider usable with no configuration:
// one Cypher statement followed by one answer.
var defaultMockResponses = []string{
	"MATCH (p:Project) RETURN p.name AS project LIMIT 10",
	"Here is what I found in the graph.",
}

// NewProvider creates a new LLM provider based on the configuration
func NewProvider(ctx context.Context, name string, cfg llm.ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Type {
	case llm.ProviderOpenAI:
		return NewOpenAIProvider(name, cfg)

	case llm.ProviderGroq:
		return NewGroqProvider(name, cfg)

	case llm.ProviderAnthropic:
		return NewAnthropicProvider(name, cfg)

	case llm.ProviderGoogle:
		return NewGoogleProvider(ctx, name, cfg)

	case llm.ProviderOllama:
		return NewOllamaProvider(name, cfg)

	case llm.ProviderMock:
		responses := cfg.Responses
		if len(responses) == 0 {
			responses = defaultMockResponses
		}
		return NewNamedMockProvider(name, responses), nil

	default:
		return nil, types.NewError(llm.ErrProviderInvalidInput, fmt.Sprintf("unknown provider type: %s", cfg.Type))
	}
}

// NewRegistry builds every configured provider and registers it.
// The configured default provider becomes the registry default.
func NewRegistry(ctx context.Context, cfg llm.LLMConfig) (*llm.DefaultLLMRegistry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registry := llm.NewLLMRegistry()
	for _, name := range cfg.ProviderNames() {
		provider, err := NewProvider(ctx, llm.NormalizeProviderName(name), cfg.Providers[name])
		if err != nil {
			return nil, types.WrapError(llm.ErrProviderInitFailed,
				fmt.Sprintf("failed to initialize provider %q", name), err)
		}
		if err := registry.RegisterProvider(provider); err != nil {
			return nil, err
		}
	}

	if err := registry.SetDefault(cfg.DefaultProvider); err != nil {
		return nil, err
	}

	return registry, nil
}
