package main

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Kamal2131/langchain-neo4j/internal/api"
	"github.com/Kamal2131/langchain-neo4j/internal/config"
	"github.com/Kamal2131/langchain-neo4j/internal/jobs"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the background task workers",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides server.host)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := appConfig
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}

	tracer, err := observability.InitTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = observability.ShutdownTracing(context.Background(), tracer) }()

	metrics := observability.NewMetrics()
	a, err := newApp(ctx, cfg, appOptions{withEngine: true, tolerateGraph: true, metrics: metrics})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	store, err := newJobStore(cfg.Jobs)
	if err != nil {
		return err
	}
	defer store.Close()

	runner := jobs.NewRunner(store, a.engine, cfg.Jobs.Workers, cfg.Jobs.QueueSize,
		jobs.WithLogger(a.logger.Named("jobs")), jobs.WithMetrics(metrics))
	server := api.NewServer(cfg, a.engine, runner, a.logger.Named("api"), metrics)

	a.logger.Info(ctx, "starting neo4jqa",
		"addr", server.Addr(),
		"environment", cfg.App.Environment,
		"llm_provider", a.engine.DefaultProvider(),
		"jobs_backend", cfg.Jobs.Backend)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(gctx) })
	g.Go(func() error { return server.Run(gctx) })
	return g.Wait()
}

func newJobStore(cfg config.JobsConfig) (jobs.Store, error) {
	if cfg.Backend == "redis" {
		return jobs.NewRedisStore(jobs.RedisOptions{
			URL:    cfg.RedisURL,
			Prefix: cfg.KeyPrefix,
			TTL:    cfg.ResultTTL,
		})
	}
	return jobs.NewMemoryStore(cfg.ResultTTL), nil
}
