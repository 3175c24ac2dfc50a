package qa

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// DefaultMaxAttempts is the attempt budget when none is configured.
const DefaultMaxAttempts = 3

// Controller alternates generation and execution until an attempt succeeds,
// a fatal error occurs or the attempt budget is spent. Attempts run one after
// another because each depends on the failure of the previous one.
type Controller struct {
	generator         Generator
	executor          Executor
	maxAttempts       int
	generationTimeout time.Duration
	logger            *observability.TracedLogger
	metrics           *observability.Metrics
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMaxAttempts sets the attempt budget. Values below 1 are ignored.
func WithMaxAttempts(n int) ControllerOption {
	return func(c *Controller) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithGenerationTimeout bounds each call to the generator.
func WithGenerationTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.generationTimeout = d
	}
}

// WithControllerLogger sets the logger.
func WithControllerLogger(logger *observability.TracedLogger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithControllerMetrics sets the metrics sink.
func WithControllerMetrics(m *observability.Metrics) ControllerOption {
	return func(c *Controller) {
		c.metrics = m
	}
}

// NewController creates a Controller.
func NewController(generator Generator, executor Executor, opts ...ControllerOption) *Controller {
	c := &Controller{
		generator:   generator,
		executor:    executor,
		maxAttempts: DefaultMaxAttempts,
		logger:      observability.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxAttempts returns the attempt budget.
func (c *Controller) MaxAttempts() int {
	return c.maxAttempts
}

// Resolve runs the generate and execute loop for one question.
func (c *Controller) Resolve(ctx context.Context, question string, desc *schema.Description) Resolution {
	var res Resolution

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			res.Err = types.WrapError(ErrCanceled, "request abandoned", err)
			return res
		}

		attemptCtx, span := observability.StartSpan(ctx, "qa.attempt", attribute.Int("attempt", attempt))
		started := time.Now()

		query, err := c.generate(attemptCtx, question, desc, res.History)
		if err != nil {
			observability.EndSpan(span, err)
			c.metrics.ObserveAttempt("generation_failed")
			if ctx.Err() != nil {
				res.Err = types.WrapError(ErrCanceled, "request abandoned", ctx.Err())
				return res
			}
			c.logger.Warn(ctx, "query generation failed", "attempt", attempt, "error", err)
			res.Err = err
			return res
		}
		query.Attempt = attempt

		result, err := c.executor.Execute(attemptCtx, query)
		if err != nil {
			observability.EndSpan(span, err)
			c.metrics.ObserveAttempt("store_unavailable")
			res.History = append(res.History, Attempt{
				Query:    query,
				Result:   Failed(ErrStoreUnavailable, messageOf(err)),
				Duration: time.Since(started),
			})
			if ctx.Err() != nil {
				res.Err = types.WrapError(ErrCanceled, "request abandoned", ctx.Err())
				return res
			}
			c.logger.Error(ctx, "graph store unavailable", "attempt", attempt, "error", err)
			res.Err = err
			return res
		}

		res.History = append(res.History, Attempt{Query: query, Result: result, Duration: time.Since(started)})

		if result.OK() {
			span.SetAttributes(attribute.Int("rows", len(result.Rows())))
			observability.EndSpan(span, nil)
			c.metrics.ObserveAttempt("success")
			res.Final = &res.History[len(res.History)-1]
			c.logger.Info(ctx, "query succeeded", "attempt", attempt, "rows", len(result.Rows()))
			return res
		}

		failure := result.Failure()
		span.SetAttributes(attribute.String("failure", string(failure.Category)))
		observability.EndSpan(span, nil)
		c.metrics.ObserveAttempt(attemptResultLabel(failure.Category))
		c.logger.Info(ctx, "query attempt failed",
			"attempt", attempt,
			"category", failure.Category,
			"error", failure.Message)

		if !IsRetryableCategory(failure.Category) {
			return res
		}
	}

	return res
}

// generate calls the generator under the generation timeout with a copy of the history.
func (c *Controller) generate(ctx context.Context, question string, desc *schema.Description, prior []Attempt) (GeneratedQuery, error) {
	if c.generationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.generationTimeout)
		defer cancel()
	}

	history := make([]Attempt, len(prior))
	copy(history, prior)

	query, err := c.generator.Generate(ctx, question, desc, history)
	if err != nil {
		if types.CodeOf(err) != ErrGenerationFailed {
			err = NewGenerationError("query generation failed", err)
		}
		return GeneratedQuery{}, err
	}
	return query, nil
}

func attemptResultLabel(category types.ErrorCode) string {
	switch category {
	case ErrQueryRejected:
		return "rejected"
	case ErrQueryTimeout:
		return "timeout"
	default:
		return "failed"
	}
}
