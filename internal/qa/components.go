package qa

import (
	"context"

	"github.com/Kamal2131/langchain-neo4j/internal/schema"
)

// SchemaSource describes the graph schema.
type SchemaSource interface {
	Describe(ctx context.Context) (*schema.Description, error)
}

// Generator produces a candidate query. prior holds every earlier attempt of
// the same question, oldest first, and is empty on the first call.
// Errors are coded ErrGenerationFailed.
type Generator interface {
	Generate(ctx context.Context, question string, desc *schema.Description, prior []Attempt) (GeneratedQuery, error)
}

// Executor runs a candidate query. Rejected or timed out queries come back as a
// failed ExecutionResult. Only an unreachable store is returned as an error,
// coded ErrStoreUnavailable.
type Executor interface {
	Execute(ctx context.Context, q GeneratedQuery) (ExecutionResult, error)
}

// Synthesizer turns rows into an answer.
type Synthesizer interface {
	// Synthesize answers question from rows. Errors are coded ErrSynthesisFailed.
	Synthesize(ctx context.Context, question string, rows []map[string]any) (string, error)

	// Explain describes why question could not be answered.
	Explain(ctx context.Context, question string, category, lastError string) string

	// Fallback renders rows without the model.
	Fallback(columns []string, rows []map[string]any) string
}
