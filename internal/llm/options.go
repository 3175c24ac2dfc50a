package llm

// CompletionOption is a functional option for configuring completion requests.
type CompletionOption func(*CompletionRequest)

// WithTemperature sets the temperature for the completion request.
// Query generation wants 0 so the same question yields the same Cypher.
func WithTemperature(temperature float64) CompletionOption {
	return func(req *CompletionRequest) {
		req.Temperature = temperature
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(maxTokens int) CompletionOption {
	return func(req *CompletionRequest) {
		req.MaxTokens = maxTokens
	}
}

// WithStopSequences sets sequences that will stop generation when encountered.
func WithStopSequences(sequences ...string) CompletionOption {
	return func(req *CompletionRequest) {
		req.StopSequences = sequences
	}
}

// WithSystemPrompt sets a system prompt for the completion request.
func WithSystemPrompt(prompt string) CompletionOption {
	return func(req *CompletionRequest) {
		req.SystemPrompt = prompt
	}
}

// WithModel overrides the provider's default model.
func WithModel(model string) CompletionOption {
	return func(req *CompletionRequest) {
		req.Model = model
	}
}

// ApplyOptions applies a list of options to a completion request.
func ApplyOptions(req *CompletionRequest, opts ...CompletionOption) {
	for _, opt := range opts {
		opt(req)
	}
}

// NewCompletionRequest creates a new completion request with the given model and messages.
//
// Example:
//
//	req := NewCompletionRequest("gpt-3.5-turbo",
//	    []Message{NewUserMessage("Which projects use Python?")},
//	    WithTemperature(0),
//	)
func NewCompletionRequest(model string, messages []Message, opts ...CompletionOption) CompletionRequest {
	req := CompletionRequest{
		Model:    model,
		Messages: messages,
	}

	ApplyOptions(&req, opts...)
	return req
}
