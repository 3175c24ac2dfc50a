package qa

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

type fakeSchema struct {
	desc *schema.Description
	err  error
}

func (f *fakeSchema) Describe(ctx context.Context) (*schema.Description, error) {
	return f.desc, f.err
}

// fakeGenerator returns queries in order and records the history it saw.
type fakeGenerator struct {
	mu      sync.Mutex
	queries []string
	errs    map[int]error
	priors  [][]Attempt
}

func (f *fakeGenerator) Generate(ctx context.Context, question string, desc *schema.Description, prior []Attempt) (GeneratedQuery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.priors = append(f.priors, prior)
	n := len(f.priors)
	if err := f.errs[n]; err != nil {
		return GeneratedQuery{}, err
	}
	text := fmt.Sprintf("MATCH (n) RETURN n // %d", n)
	if n <= len(f.queries) {
		text = f.queries[n-1]
	}
	return GeneratedQuery{Text: text}, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.priors)
}

type executeStep struct {
	result ExecutionResult
	err    error
}

// fakeExecutor replays steps; the last step repeats.
type fakeExecutor struct {
	mu       sync.Mutex
	steps    []executeStep
	executed []GeneratedQuery
}

func (f *fakeExecutor) Execute(ctx context.Context, q GeneratedQuery) (ExecutionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.executed = append(f.executed, q)
	i := len(f.executed) - 1
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	return f.steps[i].result, f.steps[i].err
}

type fakeSynthesizer struct {
	err       error
	explained string
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, question string, rows []map[string]any) (string, error) {
	if len(rows) == 0 {
		return "no results", nil
	}
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("found %d", len(rows)), nil
}

func (f *fakeSynthesizer) Explain(ctx context.Context, question string, category, lastError string) string {
	f.explained = lastError
	return "could not answer: " + lastError
}

func (f *fakeSynthesizer) Fallback(columns []string, rows []map[string]any) string {
	return "table"
}

func rejected(msg string) executeStep {
	return executeStep{result: Failed(ErrQueryRejected, msg)}
}

func succeeded(n int) executeStep {
	rows := make([]map[string]any, n)
	for i := range rows {
		rows[i] = map[string]any{"name": fmt.Sprintf("row-%d", i)}
	}
	return executeStep{result: Succeeded(rows, []string{"name"})}
}

func unavailable() executeStep {
	return executeStep{err: NewStoreUnavailableError("graph store unavailable", errors.New("connection refused"))}
}

var errModelDown = types.NewError(ErrGenerationFailed, "model unreachable")

var sampleSchema = &schema.Description{
	Labels:            []string{"Project"},
	RelationshipTypes: []string{},
	Properties:        map[string][]string{"Project": {"name", "status"}},
}
