package providers

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// LangchainProvider implements LLMProvider on top of any langchaingo model client.
// The per-vendor constructors differ only in how they build the client.
type LangchainProvider struct {
	name   string
	model  string
	client llms.Model
}

// NewLangchainProvider wraps an already constructed langchaingo client.
func NewLangchainProvider(name, model string, client llms.Model) *LangchainProvider {
	return &LangchainProvider{
		name:   name,
		model:  model,
		client: client,
	}
}

// Name returns the provider name
func (p *LangchainProvider) Name() string {
	return p.name
}

// Model returns the default model
func (p *LangchainProvider) Model() string {
	return p.model
}

// Complete sends a completion request
func (p *LangchainProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if req.Model == "" {
		req.Model = p.model
	}

	resp, err := p.client.GenerateContent(ctx, toSchemaMessages(req), buildCallOptions(req)...)
	if err != nil {
		return nil, llm.TranslateError(p.name, err)
	}

	return fromLangchainResponse(resp, req.Model), nil
}

// Health sends a one-token completion to verify credentials and reachability.
func (p *LangchainProvider) Health(ctx context.Context) types.HealthStatus {
	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req := llm.NewCompletionRequest(p.model,
		[]llm.Message{llm.NewUserMessage("ping")},
		llm.WithMaxTokens(1),
	)

	if _, err := p.Complete(healthCtx, req); err != nil {
		return types.Unhealthy(err.Error())
	}

	return types.Healthy(p.name + " " + p.model + " reachable")
}
