// Package engine assembles question-answering pipelines from the configured
// graph client and language model providers.
package engine

import (
	"context"

	"github.com/Kamal2131/langchain-neo4j/internal/config"
	"github.com/Kamal2131/langchain-neo4j/internal/executor"
	"github.com/Kamal2131/langchain-neo4j/internal/generator"
	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/synth"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Engine owns the shared dependencies of every pipeline: the graph client,
// the provider registry and the pipeline limits. Pipelines are cheap and are
// built per request so the provider can be chosen per question.
type Engine struct {
	graph     graph.GraphClient
	registry  *llm.DefaultLLMRegistry
	inspector *schema.Inspector
	executor  *executor.Executor
	cfg       config.PipelineConfig
	logger    *observability.TracedLogger
	metrics   *observability.Metrics
}

// New creates an Engine. metrics may be nil.
func New(client graph.GraphClient, registry *llm.DefaultLLMRegistry, cfg config.PipelineConfig,
	logger *observability.TracedLogger, metrics *observability.Metrics) *Engine {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Engine{
		graph:     client,
		registry:  registry,
		inspector: schema.NewInspector(client, schema.WithLogger(logger.Named("schema"))),
		executor:  executor.New(client, cfg.ExecutionTimeout, logger.Named("executor")),
		cfg:       cfg,
		logger:    logger,
		metrics:   metrics,
	}
}

// Inspector returns the schema inspector shared by all pipelines.
func (e *Engine) Inspector() *schema.Inspector {
	return e.inspector
}

// Graph returns the graph client.
func (e *Engine) Graph() graph.GraphClient {
	return e.graph
}

// DefaultProvider returns the name of the default provider.
func (e *Engine) DefaultProvider() string {
	return e.registry.DefaultName()
}

// Providers lists the configured providers.
func (e *Engine) Providers() []string {
	return e.registry.ListProviders()
}

// Pipeline builds a pipeline bound to the named provider, or the default one when name is empty.
func (e *Engine) Pipeline(name string) (*qa.Pipeline, error) {
	provider, err := e.registry.Resolve(name)
	if err != nil {
		return nil, err
	}

	completer := llm.NewCompleter(provider, llm.WithTemperature(e.cfg.Temperature))

	controller := qa.NewController(
		generator.New(completer, e.logger.Named("generator")),
		e.executor,
		qa.WithMaxAttempts(e.cfg.MaxAttempts),
		qa.WithGenerationTimeout(e.cfg.GenerationTimeout),
		qa.WithControllerLogger(e.logger.Named("controller")),
		qa.WithControllerMetrics(e.metrics),
	)

	return qa.NewPipeline(
		e.inspector,
		controller,
		synth.New(completer, e.cfg.MaxResultRows, e.logger.Named("synth")),
		qa.PipelineConfig{
			Deadline:         e.cfg.Deadline(),
			SchemaTimeout:    e.cfg.SchemaTimeout,
			SynthesisTimeout: e.cfg.SynthesisTimeout,
			Provider:         provider.Name(),
			Model:            provider.Model(),
		},
		qa.WithLogger(e.logger.Named("pipeline")),
		qa.WithMetrics(e.metrics),
	), nil
}

// Answer answers question with the named provider. The only error is an unknown provider;
// everything else is reported in the Outcome.
func (e *Engine) Answer(ctx context.Context, question string, includeQuery bool, provider string) (*qa.Outcome, error) {
	pipeline, err := e.Pipeline(provider)
	if err != nil {
		return nil, err
	}
	return pipeline.Answer(ctx, question, includeQuery), nil
}

// Health is the service health as reported by the health endpoint.
type Health struct {
	Status         types.HealthState  `json:"status"`
	Neo4jConnected bool               `json:"neo4j_connected"`
	Provider       string             `json:"llm_provider"`
	Graph          types.HealthStatus `json:"graph"`
}

// Health probes the graph store. An unreachable store makes the service degraded.
// Providers are not probed.
func (e *Engine) Health(ctx context.Context) Health {
	graphHealth := e.graph.Health(ctx)

	h := Health{
		Status:         types.HealthStateHealthy,
		Neo4jConnected: graphHealth.IsHealthy(),
		Provider:       e.registry.DefaultName(),
		Graph:          graphHealth,
	}
	if !h.Neo4jConnected {
		h.Status = types.HealthStateDegraded
	}
	return h
}
