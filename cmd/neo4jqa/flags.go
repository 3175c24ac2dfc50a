package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kamal2131/langchain-neo4j/cmd/neo4jqa/internal"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose      bool
	Quiet        bool
	OutputFormat string
	ConfigFile   string
}

var globalFlags = &GlobalFlags{}

// RegisterGlobalFlags registers persistent flags on the root command
func RegisterGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	cmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVarP(&globalFlags.OutputFormat, "output", "o", "text", "Output format (text|json)")
	cmd.PersistentFlags().StringVar(&globalFlags.ConfigFile, "config", "", "Path to config file (default: $NEO4JQA_HOME/config.yaml)")
}

// ParseGlobalFlags validates the global flags
func ParseGlobalFlags(flags *GlobalFlags) error {
	format := flags.OutputFormat
	if format != string(internal.FormatText) && format != string(internal.FormatJSON) {
		return internal.NewCLIError(internal.ExitError, fmt.Sprintf("invalid output format %q (want text or json)", format))
	}

	if flags.Verbose && flags.Quiet {
		return internal.NewCLIError(internal.ExitError, "--verbose and --quiet cannot be used together")
	}

	return nil
}

// GetOutputFormat returns the parsed OutputFormat
func (f *GlobalFlags) GetOutputFormat() internal.OutputFormat {
	if f.OutputFormat == string(internal.FormatJSON) {
		return internal.FormatJSON
	}
	return internal.FormatText
}

// IsVerbose returns true if verbose mode is enabled
func (f *GlobalFlags) IsVerbose() bool {
	return f.Verbose && !f.Quiet
}

// IsQuiet returns true if quiet mode is enabled
func (f *GlobalFlags) IsQuiet() bool {
	return f.Quiet
}

// LogLevel picks the log level: the flags win over the configured level.
func (f *GlobalFlags) LogLevel(configured string) string {
	switch {
	case f.IsVerbose():
		return "debug"
	case f.IsQuiet():
		return "error"
	default:
		return configured
	}
}
