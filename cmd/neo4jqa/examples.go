package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
)

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "List sample questions for the built-in dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.GetOutputFormat() == internal.FormatJSON {
			return formatter(cmd).PrintJSON(qa.Samples())
		}
		for i, q := range qa.Samples() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q); err != nil {
				return err
			}
		}
		return nil
	},
}
