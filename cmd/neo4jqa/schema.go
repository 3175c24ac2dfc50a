package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
)

var schemaDescribe bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show node and relationship counts, or the schema given to the model",
	RunE:  runSchema,
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaDescribe, "describe", false, "Print the schema description used in prompts")
}

func runSchema(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, appConfig, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	inspector := schema.NewInspector(a.graph, schema.WithLogger(a.logger.Named("schema")))
	out := formatter(cmd)

	if schemaDescribe {
		desc, err := inspector.Describe(ctx)
		if err != nil {
			return err
		}
		if globalFlags.GetOutputFormat() == internal.FormatJSON {
			return out.PrintJSON(desc)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), desc.String())
		return err
	}

	stats, err := inspector.Stats(ctx)
	if err != nil {
		return err
	}
	if globalFlags.GetOutputFormat() == internal.FormatJSON {
		return out.PrintJSON(stats)
	}

	_ = out.PrintHeading("Nodes")
	if err := out.PrintTable([]string{"label", "count"}, countRows(stats.NodeCounts)); err != nil {
		return err
	}
	_ = out.PrintHeading("Relationships")
	if err := out.PrintTable([]string{"type", "count"}, countRows(stats.RelationshipCounts)); err != nil {
		return err
	}
	return out.PrintSuccess(fmt.Sprintf("%d nodes, %d relationships", stats.TotalNodes, stats.TotalRelationships))
}

// countRows renders counts as table rows sorted by name.
func countRows(counts map[string]int64) [][]string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.FormatInt(counts[name], 10)})
	}
	return rows
}
