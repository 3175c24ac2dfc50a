package generator

import (
	"context"
	"strings"

	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// LLMGenerator asks a language model for a Cypher statement.
// It does not check the statement; the executor does.
type LLMGenerator struct {
	completer llm.TextCompleter
	logger    *observability.TracedLogger
}

// New creates an LLMGenerator on top of completer.
func New(completer llm.TextCompleter, logger *observability.TracedLogger) *LLMGenerator {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &LLMGenerator{completer: completer, logger: logger}
}

// Generate implements qa.Generator.
func (g *LLMGenerator) Generate(ctx context.Context, question string, desc *schema.Description, prior []qa.Attempt) (qa.GeneratedQuery, error) {
	prompt, err := BuildPrompt(question, desc, prior)
	if err != nil {
		return qa.GeneratedQuery{}, qa.NewGenerationError("failed to build prompt", err)
	}

	g.logger.Debug(ctx, "generating cypher", "prior_attempts", len(prior), "prompt", prompt)

	completion, err := g.completer.CompleteText(ctx, prompt)
	if err != nil {
		return qa.GeneratedQuery{}, qa.NewGenerationError("language model did not return a query", err)
	}

	query, explanation := ExtractCypher(completion)
	if strings.TrimSpace(query) == "" {
		return qa.GeneratedQuery{}, types.NewError(qa.ErrGenerationFailed, "language model returned an empty query")
	}

	g.logger.Debug(ctx, "cypher generated", "cypher", query)

	return qa.GeneratedQuery{
		Text:        query,
		Attempt:     len(prior) + 1,
		Explanation: explanation,
	}, nil
}
