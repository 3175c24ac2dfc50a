package providers

import (
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
)

// NewOllamaProvider creates a provider for a local Ollama server. No API key is needed.
func NewOllamaProvider(name string, cfg llm.ProviderConfig) (*LangchainProvider, error) {
	model := cfg.GetModel()

	client, err := ollama.New(
		ollama.WithServerURL(cfg.GetBaseURL()),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, llm.TranslateError(name, err)
	}

	return NewLangchainProvider(name, model, client), nil
}
