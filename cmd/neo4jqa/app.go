package main

import (
	"context"
	"os"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
	"github.com/Kamal2131/langchain-neo4j/internal/config"
	"github.com/Kamal2131/langchain-neo4j/internal/engine"
	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/llm/providers"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
)

// app holds the long-lived pieces a command needs.
type app struct {
	cfg     *config.Config
	logger  *observability.TracedLogger
	graph   graph.GraphClient
	engine  *engine.Engine
	metrics *observability.Metrics
}

type appOptions struct {
	// withEngine builds the language model providers and the engine.
	withEngine bool
	// tolerateGraph keeps going when Neo4j cannot be reached, so health
	// endpoints can report it.
	tolerateGraph bool
	metrics       *observability.Metrics
}

func newLogger(cfg *config.Config) (*observability.TracedLogger, error) {
	handler, err := observability.NewHandler(os.Stderr, cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "invalid logging configuration", err)
	}
	return observability.NewTracedLogger(handler, "neo4jqa"), nil
}

// newApp connects to Neo4j and, when asked, builds the engine.
func newApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	client, err := graph.NewNeo4jClient(cfg.GraphConfig())
	if err != nil {
		return nil, internal.WrapError(internal.ExitConfigError, "invalid neo4j configuration", err)
	}

	a := &app{cfg: cfg, logger: logger, graph: client, metrics: opts.metrics}

	if err := client.Connect(ctx); err != nil {
		if !opts.tolerateGraph {
			return nil, internal.WrapError(internal.ExitStoreError, "cannot connect to neo4j at "+cfg.Neo4j.URI, err)
		}
		logger.Warn(ctx, "neo4j is not reachable, continuing in degraded mode; requests will redial", "uri", cfg.Neo4j.URI, "error", err)
	}

	if opts.withEngine {
		registry, err := providers.NewRegistry(ctx, cfg.LLM)
		if err != nil {
			_ = client.Close(ctx)
			return nil, err
		}
		a.engine = engine.New(client, registry, cfg.Pipeline, logger.Named("engine"), opts.metrics)
	}

	return a, nil
}

// Close releases the graph connection.
func (a *app) Close(ctx context.Context) {
	if err := a.graph.Close(ctx); err != nil {
		a.logger.Warn(ctx, "failed to close neo4j connection", "error", err)
	}
}
