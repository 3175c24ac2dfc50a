package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Exit code constants for the CLI
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitNoAnswer indicates a question that could not be answered
	ExitNoAnswer = 2
	// ExitTimeout indicates the operation timed out
	ExitTimeout = 3
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitProviderError indicates a language model provider error
	ExitProviderError = 11
	// ExitStoreError indicates the graph store could not be used
	ExitStoreError = 12
)

// CLIError represents a CLI-specific error with an exit code
type CLIError struct {
	Code    int
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WrapError creates a new CLIError wrapping an existing error
func WrapError(code int, message string, err error) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewCLIError creates a new CLIError with the given code and message
func NewCLIError(code int, message string) *CLIError {
	return &CLIError{
		Code:    code,
		Message: message,
	}
}

// HandleError prints err to the command's error output and returns the exit code for it.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}

	if errors.Is(err, context.DeadlineExceeded) {
		cmd.PrintErrln("Operation timed out")
		return ExitTimeout
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		cmd.PrintErrln("Error:", cliErr.Message)
		if cliErr.Cause != nil && IsVerbose() {
			cmd.PrintErrln("Cause:", cliErr.Cause)
		}
		return cliErr.Code
	}

	var appErr *types.AppError
	if errors.As(err, &appErr) {
		cmd.PrintErrln("Error:", appErr.Message)
		if appErr.Cause != nil && IsVerbose() {
			cmd.PrintErrln("Cause:", appErr.Cause)
		}
		return exitCodeFor(err)
	}

	cmd.PrintErrln("Error:", err)
	return ExitError
}

// exitCodeFor maps service error codes to CLI exit codes.
func exitCodeFor(err error) int {
	code := types.CodeOf(err)
	switch {
	case strings.HasPrefix(string(code), "CONFIG_"):
		return ExitConfigError
	case strings.HasPrefix(string(code), "LLM_"):
		return ExitProviderError
	case graph.IsUnavailable(err),
		types.HasCode(err, schema.ErrCodeStoreUnavailable),
		types.HasCode(err, qa.ErrStoreUnavailable):
		return ExitStoreError
	case graph.IsTimeout(err), types.HasCode(err, qa.ErrQueryTimeout):
		return ExitTimeout
	default:
		return ExitError
	}
}

// IsVerbose checks if verbose mode is enabled via environment variable or flag.
// It works before flags are parsed, for panic recovery.
func IsVerbose() bool {
	if os.Getenv("NEO4JQA_VERBOSE") != "" {
		return true
	}

	for _, arg := range os.Args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}

	return false
}
