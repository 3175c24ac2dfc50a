package providers

import (
	"os"

	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
)

// NewAnthropicProvider creates a provider for Anthropic's Claude models
func NewAnthropicProvider(name string, cfg llm.ProviderConfig) (*LangchainProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewAuthError(name, nil)
	}

	model := cfg.GetModel()
	opts := []anthropic.Option{
		anthropic.WithToken(apiKey),
		anthropic.WithModel(model),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	client, err := anthropic.New(opts...)
	if err != nil {
		return nil, llm.TranslateError(name, err)
	}

	return NewLangchainProvider(name, model, client), nil
}
