package schema

import (
	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Schema error codes
const (
	ErrCodeStoreUnavailable    types.ErrorCode = "SCHEMA_STORE_UNAVAILABLE"
	ErrCodeIntrospectionFailed types.ErrorCode = "SCHEMA_INTROSPECTION_FAILED"
)

func wrapStoreError(step string, err error) error {
	if graph.IsUnavailable(err) {
		return types.WrapError(ErrCodeStoreUnavailable, "graph store unavailable while reading "+step, err)
	}
	return types.WrapError(ErrCodeIntrospectionFailed, "failed to read "+step, err)
}
