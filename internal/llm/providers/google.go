package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
)

// NewGoogleProvider creates a provider for Google's Gemini models
func NewGoogleProvider(ctx context.Context, name string, cfg llm.ProviderConfig) (*LangchainProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	if apiKey == "" {
		return nil, llm.NewAuthError(name, nil)
	}

	model := cfg.GetModel()
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, llm.TranslateError(name, err)
	}

	return NewLangchainProvider(name, model, client), nil
}
