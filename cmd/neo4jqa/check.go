package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
	"github.com/Kamal2131/langchain-neo4j/internal/config"
	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/llm/providers"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Test the connections to Neo4j, the language model providers and the task store",
	RunE:  runCheck,
}

// checkResult is one line of the check report.
type checkResult struct {
	Component string            `json:"component"`
	Status    types.HealthState `json:"status"`
	Message   string            `json:"message"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := appConfig

	results := []checkResult{checkGraph(ctx, cfg), checkProviders(ctx, cfg)}
	if cfg.Jobs.Backend == "redis" {
		results = append(results, checkJobStore(ctx, cfg))
	}

	out := formatter(cmd)
	failed := 0
	for _, r := range results {
		if r.Status != types.HealthStateHealthy {
			failed++
		}
	}

	if globalFlags.GetOutputFormat() == internal.FormatJSON {
		if err := out.PrintJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			line := fmt.Sprintf("%-10s %s", r.Component, r.Message)
			if r.Status == types.HealthStateHealthy {
				_ = out.PrintSuccess(line)
			} else {
				_ = out.PrintError(line)
			}
		}
	}

	if failed > 0 {
		return internal.NewCLIError(internal.ExitStoreError, fmt.Sprintf("%d of %d checks failed", failed, len(results)))
	}
	return nil
}

func checkGraph(ctx context.Context, cfg *config.Config) checkResult {
	res := checkResult{Component: "neo4j"}

	client, err := graph.NewNeo4jClient(cfg.GraphConfig())
	if err != nil {
		res.Status, res.Message = types.HealthStateUnhealthy, err.Error()
		return res
	}
	defer func() { _ = client.Close(context.Background()) }()

	if err := client.Connect(ctx); err != nil {
		res.Status, res.Message = types.HealthStateUnhealthy, fmt.Sprintf("%s: %v", cfg.Neo4j.URI, err)
		return res
	}

	h := client.Health(ctx)
	res.Status, res.Message = h.State, fmt.Sprintf("%s: %s", cfg.Neo4j.URI, h.Message)
	return res
}

func checkProviders(ctx context.Context, cfg *config.Config) checkResult {
	res := checkResult{Component: "llm"}

	registry, err := providers.NewRegistry(ctx, cfg.LLM)
	if err != nil {
		res.Status, res.Message = types.HealthStateUnhealthy, err.Error()
		return res
	}

	h := registry.Health(ctx)
	res.Status = h.State
	res.Message = fmt.Sprintf("default %s (%s)", registry.DefaultName(), h.Message)
	return res
}

func checkJobStore(ctx context.Context, cfg *config.Config) checkResult {
	res := checkResult{Component: "redis"}

	store, err := newJobStore(cfg.Jobs)
	if err != nil {
		res.Status, res.Message = types.HealthStateUnhealthy, err.Error()
		return res
	}
	defer store.Close()

	h := store.Health(ctx)
	res.Status, res.Message = h.State, h.Message
	return res
}
