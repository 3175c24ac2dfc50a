package llm

import (
	"context"
	"strings"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// LLMProvider defines the interface that all LLM providers must implement.
// It provides a unified abstraction over the hosted and local model services
// the service can be configured with (OpenAI, Groq, Anthropic, Google, Ollama).
type LLMProvider interface {
	// Name returns the registered provider name (e.g., "openai", "groq")
	Name() string

	// Model returns the model used when a request does not name one
	Model() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks the health status of the provider and its connectivity
	Health(ctx context.Context) types.HealthStatus
}

// TextCompleter is the capability the query generator and the answer synthesizer need:
// prompt text in, completion text out.
type TextCompleter interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
}

// Completer adapts an LLMProvider to TextCompleter.
// Each CompleteText call sends one user message built from the prompt,
// with the options given at construction applied to every request.
type Completer struct {
	provider LLMProvider
	opts     []CompletionOption
}

// NewCompleter wraps provider. Options are applied to every request in order.
func NewCompleter(provider LLMProvider, opts ...CompletionOption) *Completer {
	return &Completer{provider: provider, opts: opts}
}

// Provider returns the wrapped provider.
func (c *Completer) Provider() LLMProvider {
	return c.provider
}

// CompleteText implements TextCompleter.
func (c *Completer) CompleteText(ctx context.Context, prompt string) (string, error) {
	req := NewCompletionRequest(c.provider.Model(), []Message{NewUserMessage(prompt)}, c.opts...)
	if err := req.Validate(); err != nil {
		return "", types.WrapError(ErrInvalidRequest, "invalid completion request", err)
	}

	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return "", types.NewError(ErrInvalidResponse,
			"provider "+c.provider.Name()+" returned an empty completion")
	}
	return text, nil
}
