package providers

import (
	"os"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
)

// NewOpenAIProvider creates a provider for OpenAI's chat models.
func NewOpenAIProvider(name string, cfg llm.ProviderConfig) (*LangchainProvider, error) {
	return newOpenAICompatible(name, cfg, "OPENAI_API_KEY")
}

// NewGroqProvider creates a provider for Groq, which serves an OpenAI-compatible API.
func NewGroqProvider(name string, cfg llm.ProviderConfig) (*LangchainProvider, error) {
	return newOpenAICompatible(name, cfg, "GROQ_API_KEY")
}

func newOpenAICompatible(name string, cfg llm.ProviderConfig, keyEnv string) (*LangchainProvider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(keyEnv)
	}

	if apiKey == "" {
		return nil, llm.NewAuthError(name, nil)
	}

	model := cfg.GetModel()
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}

	if baseURL := cfg.GetBaseURL(); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, llm.TranslateError(name, err)
	}

	return NewLangchainProvider(name, model, client), nil
}
