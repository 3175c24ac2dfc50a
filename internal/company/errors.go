package company

import (
	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Company error codes
const (
	ErrCodeNotFound         types.ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeStoreUnavailable types.ErrorCode = "COMPANY_STORE_UNAVAILABLE"
	ErrCodeQueryFailed      types.ErrorCode = "COMPANY_QUERY_FAILED"
)

func wrapStoreError(what string, err error) error {
	if graph.IsUnavailable(err) {
		return types.WrapError(ErrCodeStoreUnavailable, "graph store unavailable while reading "+what, err)
	}
	return types.WrapError(ErrCodeQueryFailed, "failed to read "+what, err)
}
