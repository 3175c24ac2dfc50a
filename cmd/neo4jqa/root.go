package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
	"github.com/Kamal2131/langchain-neo4j/internal/config"
	"github.com/Kamal2131/langchain-neo4j/internal/util"
	"github.com/Kamal2131/langchain-neo4j/pkg/version"
)

// appConfig is loaded by the root command before any subcommand runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "neo4jqa",
	Short: "Ask questions about a Neo4j graph in plain English",
	Long: `neo4jqa turns natural-language questions into Cypher, runs them
read-only against Neo4j, retries with the database's error message when
a query fails, and answers in plain English.

Run 'neo4jqa serve' for the HTTP API or 'neo4jqa ask' for the terminal.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig validates global flags and loads the configuration file.
// A missing file is fine: defaults and environment variables are used.
func loadConfig(cmd *cobra.Command, args []string) error {
	if err := ParseGlobalFlags(globalFlags); err != nil {
		return err
	}

	switch cmd.Name() {
	case "version", "examples", "help", "completion":
		return nil
	}

	configFile, err := util.ConfigPath(globalFlags.ConfigFile, config.DefaultHomeDir())
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "invalid config path", err)
	}

	loader := config.NewConfigLoader(config.NewValidator())
	var cfg *config.Config
	if globalFlags.ConfigFile != "" {
		cfg, err = loader.Load(configFile)
	} else {
		cfg, err = loader.LoadWithDefaults(configFile)
	}
	if err != nil {
		return err
	}
	cfg.Logging.Level = globalFlags.LogLevel(cfg.Logging.Level)

	appConfig = cfg
	return nil
}

func init() {
	RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(examplesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if globalFlags.GetOutputFormat() == internal.FormatJSON {
			return internal.NewJSONFormatter(cmd.OutOrStdout()).PrintJSON(version.Info())
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
		return err
	},
}

// formatter returns the formatter selected by --output, writing to the command's stdout.
func formatter(cmd *cobra.Command) internal.Formatter {
	return internal.NewFormatter(globalFlags.GetOutputFormat(), cmd.OutOrStdout())
}
