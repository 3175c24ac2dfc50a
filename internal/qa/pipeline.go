package qa

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// PipelineConfig bounds one run of the pipeline.
type PipelineConfig struct {
	// Deadline bounds the whole question. Zero means no deadline beyond the caller's.
	Deadline time.Duration

	// SchemaTimeout bounds schema introspection so a slow store cannot eat the attempt budget.
	SchemaTimeout time.Duration

	// SynthesisTimeout bounds the answer synthesis call.
	SynthesisTimeout time.Duration

	// Provider and Model are reported in every Outcome.
	Provider string
	Model    string
}

// Pipeline answers questions. It holds no per-request state and is safe for
// concurrent use when its components are.
type Pipeline struct {
	schema      SchemaSource
	controller  *Controller
	synthesizer Synthesizer
	cfg         PipelineConfig
	logger      *observability.TracedLogger
	metrics     *observability.Metrics
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *observability.TracedLogger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *observability.Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// NewPipeline creates a Pipeline.
func NewPipeline(source SchemaSource, controller *Controller, synthesizer Synthesizer, cfg PipelineConfig, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		schema:      source,
		controller:  controller,
		synthesizer: synthesizer,
		cfg:         cfg,
		logger:      observability.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Provider returns the provider name reported in outcomes.
func (p *Pipeline) Provider() string {
	return p.cfg.Provider
}

// Model returns the model name reported in outcomes.
func (p *Pipeline) Model() string {
	return p.cfg.Model
}

// Answer runs the whole pipeline for question. It never returns nil and never
// panics: every failure is reported through the Outcome's Status and Answer.
// includeQuery only decides whether the successful query text is attached.
func (p *Pipeline) Answer(ctx context.Context, question string, includeQuery bool) (outcome *Outcome) {
	started := time.Now()
	question = strings.TrimSpace(question)

	requestID := observability.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = types.NewID().String()
		ctx = observability.WithRequestID(ctx, requestID)
	}

	if p.cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Deadline)
		defer cancel()
	}

	ctx, span := observability.StartSpan(ctx, "qa.answer",
		attribute.String("provider", p.cfg.Provider),
		attribute.String("model", p.cfg.Model))

	out := &Outcome{
		RequestID: requestID,
		Question:  question,
		Provider:  p.cfg.Provider,
		Model:     p.cfg.Model,
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(ctx, "pipeline panic", "panic", fmt.Sprint(r))
			out.Status = StatusFailed
			out.FailureCategory = ErrGenerationFailed
			out.Answer = p.explain(ctx, question, ErrGenerationFailed, "internal error")
			out.Query = ""
		}
		out.Duration = time.Since(started)
		span.SetAttributes(
			attribute.String("status", string(out.Status)),
			attribute.Int("attempts", out.Attempts))
		span.End()
		p.metrics.ObservePipeline(string(out.Status), out.Duration)
		p.logger.Info(ctx, "question processed",
			"status", out.Status,
			"attempts", out.Attempts,
			"duration_ms", out.Duration.Milliseconds())
		outcome = out
	}()

	p.logger.Info(ctx, "processing question", "question", question, "provider", p.cfg.Provider)

	schemaCtx, schemaSpan := observability.StartSpan(ctx, "qa.schema")
	if p.cfg.SchemaTimeout > 0 {
		var cancelSchema context.CancelFunc
		schemaCtx, cancelSchema = context.WithTimeout(schemaCtx, p.cfg.SchemaTimeout)
		defer cancelSchema()
	}
	desc, err := p.schema.Describe(schemaCtx)
	observability.EndSpan(schemaSpan, err)
	if err != nil {
		storeErr := NewStoreUnavailableError("could not read the graph schema", err)
		p.logger.Error(ctx, "schema unavailable", "error", err)
		out.Status = StatusStoreUnavailable
		out.FailureCategory = ErrStoreUnavailable
		out.Answer = p.explain(ctx, question, ErrStoreUnavailable, messageOf(storeErr))
		return out
	}

	res := p.controller.Resolve(ctx, question, desc)
	out.Attempts = len(res.History)
	out.History = res.History

	if !res.Succeeded() {
		category, message := res.LastFailure()
		out.FailureCategory = category
		if types.HasCode(res.Err, ErrStoreUnavailable) {
			out.Status = StatusStoreUnavailable
		} else {
			out.Status = StatusFailed
		}
		if category == "" {
			out.FailureCategory = ErrGenerationFailed
		}
		out.Answer = p.explain(ctx, question, out.FailureCategory, message)
		return out
	}

	final := res.Final
	if includeQuery {
		out.Query = final.Query.Text
	}

	rows := final.Result.Rows()
	if len(rows) == 0 {
		out.Status = StatusNoResults
	} else {
		out.Status = StatusAnswered
	}

	out.Answer = p.synthesize(ctx, question, final.Result)
	return out
}

func (p *Pipeline) synthesize(ctx context.Context, question string, result ExecutionResult) string {
	synthCtx := ctx
	if p.cfg.SynthesisTimeout > 0 {
		var cancel context.CancelFunc
		synthCtx, cancel = context.WithTimeout(ctx, p.cfg.SynthesisTimeout)
		defer cancel()
	}

	synthCtx, span := observability.StartSpan(synthCtx, "qa.synthesize",
		attribute.Int("rows", len(result.Rows())))
	answer, err := p.synthesizer.Synthesize(synthCtx, question, result.Rows())
	observability.EndSpan(span, err)
	if err == nil {
		return answer
	}

	p.logger.Warn(ctx, "answer synthesis failed, rendering rows", "error", err)
	return p.synthesizer.Fallback(result.Columns(), result.Rows())
}

func (p *Pipeline) explain(ctx context.Context, question string, category types.ErrorCode, message string) string {
	return p.synthesizer.Explain(ctx, question, string(category), message)
}
