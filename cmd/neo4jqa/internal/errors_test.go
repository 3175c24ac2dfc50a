package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  string
	}{
		{name: "nil", err: nil, wantCode: ExitSuccess},
		{name: "canceled", err: fmt.Errorf("ask: %w", context.Canceled), wantCode: ExitCancelled, wantOut: "Operation cancelled"},
		{name: "deadline", err: context.DeadlineExceeded, wantCode: ExitTimeout, wantOut: "Operation timed out"},
		{name: "cli error", err: NewCLIError(ExitNoAnswer, "no answer"), wantCode: ExitNoAnswer, wantOut: "Error: no answer"},
		{
			name:     "config",
			err:      types.WrapError(types.CONFIG_VALIDATION_FAILED, "configuration validation failed", errors.New("port")),
			wantCode: ExitConfigError,
			wantOut:  "configuration validation failed",
		},
		{name: "provider", err: types.NewError(llm.ErrProviderNotFound, "provider bard not found"), wantCode: ExitProviderError},
		{
			name:     "graph unavailable",
			err:      types.WrapError(schema.ErrCodeStoreUnavailable, "store down", types.NewError(graph.ErrCodeGraphConnectionFailed, "refused")),
			wantCode: ExitStoreError,
		},
		{name: "generic", err: errors.New("boom"), wantCode: ExitError, wantOut: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			buf := &bytes.Buffer{}
			cmd.SetErr(buf)

			assert.Equal(t, tt.wantCode, HandleError(cmd, tt.err))
			assert.Contains(t, buf.String(), tt.wantOut)
		})
	}
}

func TestCLIError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := WrapError(ExitStoreError, "cannot reach neo4j", cause)

	assert.Equal(t, "cannot reach neo4j: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "no answer", NewCLIError(ExitNoAnswer, "no answer").Error())
}
