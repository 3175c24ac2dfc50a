package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// DefaultTimeout bounds a single query when none is configured.
const DefaultTimeout = 10 * time.Second

// Executor runs generated queries against the graph in read mode.
type Executor struct {
	client  graph.GraphClient
	timeout time.Duration
	logger  *observability.TracedLogger
}

// New creates an Executor. A zero timeout selects DefaultTimeout.
func New(client graph.GraphClient, timeout time.Duration, logger *observability.TracedLogger) *Executor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Executor{client: client, timeout: timeout, logger: logger}
}

// Execute implements qa.Executor. Mutating statements are rejected without
// contacting the store. Store errors other than unavailability come back as a
// failed result carrying the store's message.
func (e *Executor) Execute(ctx context.Context, q qa.GeneratedQuery) (qa.ExecutionResult, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return qa.Failed(qa.ErrQueryRejected, "query is empty"), nil
	}

	if reason := CheckReadOnly(text); reason != "" {
		e.logger.Warn(ctx, "mutating query rejected", "attempt", q.Attempt, "reason", reason)
		return qa.Failed(qa.ErrQueryRejected,
			fmt.Sprintf("query rejected: %s is not allowed, only read queries may be run", reason)), nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	started := time.Now()
	result, err := e.client.Query(queryCtx, text, nil)
	if err != nil {
		return e.mapError(ctx, q, err)
	}

	e.logger.Debug(ctx, "query executed",
		"attempt", q.Attempt,
		"rows", len(result.Records),
		"duration_ms", time.Since(started).Milliseconds())

	return qa.Succeeded(result.Records, result.Columns), nil
}

func (e *Executor) mapError(ctx context.Context, q qa.GeneratedQuery, err error) (qa.ExecutionResult, error) {
	switch {
	case graph.IsUnavailable(err):
		return qa.ExecutionResult{}, qa.NewStoreUnavailableError("graph store unavailable", err)

	case ctx.Err() != nil:
		return qa.ExecutionResult{}, types.WrapError(qa.ErrCanceled, "request abandoned", ctx.Err())

	case graph.IsTimeout(err), graph.IsCanceled(err):
		return qa.Failed(qa.ErrQueryTimeout,
			fmt.Sprintf("query did not finish within %s: %s", e.timeout, graph.StoreMessage(err))), nil

	default:
		message := graph.StoreMessage(err)
		e.logger.Debug(ctx, "query rejected by store", "attempt", q.Attempt, "error", message)
		return qa.Failed(qa.ErrQueryRejected, message), nil
	}
}
