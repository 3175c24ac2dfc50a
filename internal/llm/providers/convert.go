package providers

import (
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
)

// toSchemaMessages converts request messages to langchaingo MessageContent.
// A request-level system prompt is sent as a leading system message.
func toSchemaMessages(req llm.CompletionRequest) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(req.Messages)+1)

	if req.SystemPrompt != "" {
		result = append(result, llms.TextParts(schema.ChatMessageTypeSystem, req.SystemPrompt))
	}

	for _, msg := range req.Messages {
		role := schema.ChatMessageTypeHuman
		switch msg.Role {
		case llm.RoleSystem:
			role = schema.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = schema.ChatMessageTypeAI
		}
		result = append(result, llms.TextParts(role, msg.Content))
	}

	return result
}

// buildCallOptions converts a completion request to langchaingo call options
func buildCallOptions(req llm.CompletionRequest) []llms.CallOption {
	callOpts := make([]llms.CallOption, 0, 4)

	callOpts = append(callOpts, llms.WithTemperature(req.Temperature))

	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	if len(req.StopSequences) > 0 {
		callOpts = append(callOpts, llms.WithStopWords(req.StopSequences))
	}

	if req.Model != "" {
		callOpts = append(callOpts, llms.WithModel(req.Model))
	}

	return callOpts
}

// fromLangchainResponse converts a langchaingo response to a CompletionResponse
func fromLangchainResponse(resp *llms.ContentResponse, model string) *llm.CompletionResponse {
	out := &llm.CompletionResponse{
		ID:           uuid.New().String(),
		Model:        model,
		Message:      llm.Message{Role: llm.RoleAssistant},
		FinishReason: llm.FinishReasonStop,
	}
	if resp == nil || len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	out.Message.Content = choice.Content

	switch choice.StopReason {
	case "length", "max_tokens", "MAX_TOKENS":
		out.FinishReason = llm.FinishReasonLength
	case "content_filter", "SAFETY":
		out.FinishReason = llm.FinishReasonContentFilter
	}

	// OpenAI-compatible clients report usage under these keys
	out.Usage = llm.CompletionTokenUsage{
		PromptTokens:     intInfo(choice.GenerationInfo, "PromptTokens"),
		CompletionTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
		TotalTokens:      intInfo(choice.GenerationInfo, "TotalTokens"),
	}

	return out
}

func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
