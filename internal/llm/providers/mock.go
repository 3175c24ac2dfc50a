package providers

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// MockCall represents a recorded call to the mock provider
type MockCall struct {
	Request llm.CompletionRequest
}

// MockProvider implements LLMProvider with canned responses.
// Responses are replayed in order and wrap around; queued errors are returned first.
// It backs the "mock" provider type for local runs without an API key.
type MockProvider struct {
	mu            sync.RWMutex
	name          string
	responses     []string
	responseIndex int
	errs          []error
	calls         []MockCall
}

// NewMockProvider creates a new mock provider named "mock"
func NewMockProvider(responses []string) *MockProvider {
	return NewNamedMockProvider("mock", responses)
}

// NewNamedMockProvider creates a mock provider registered under name.
func NewNamedMockProvider(name string, responses []string) *MockProvider {
	return &MockProvider{
		name:      name,
		responses: responses,
	}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return p.name
}

// Model returns the mock model name
func (p *MockProvider) Model() string {
	return "mock-model"
}

// Complete returns the next canned response
func (p *MockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, llm.TranslateError(p.name, err)
	}

	p.mu.Lock()
	p.calls = append(p.calls, MockCall{Request: req})

	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		p.mu.Unlock()
		return nil, err
	}

	if len(p.responses) == 0 {
		p.mu.Unlock()
		return nil, llm.NewProviderUnavailableError(p.name, nil)
	}

	response := p.responses[p.responseIndex%len(p.responses)]
	p.responseIndex++
	p.mu.Unlock()

	return &llm.CompletionResponse{
		ID:    uuid.New().String(),
		Model: p.Model(),
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: response,
		},
		FinishReason: llm.FinishReasonStop,
		Usage: llm.CompletionTokenUsage{
			PromptTokens:     10,
			CompletionTokens: len(response) / 4,
			TotalTokens:      10 + len(response)/4,
		},
	}, nil
}

// Health always reports healthy
func (p *MockProvider) Health(ctx context.Context) types.HealthStatus {
	return types.Healthy("mock provider")
}

// QueueError makes the next Complete call fail with err.
func (p *MockProvider) QueueError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, err)
}

// GetCalls returns all recorded calls (thread-safe)
func (p *MockProvider) GetCalls() []MockCall {
	p.mu.RLock()
	defer p.mu.RUnlock()

	calls := make([]MockCall, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// SetResponses replaces all responses
func (p *MockProvider) SetResponses(responses []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.responses = responses
	p.responseIndex = 0
}
