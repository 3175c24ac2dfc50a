package graph

import (
	"errors"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Graph database error codes
const (
	// Connection errors
	ErrCodeGraphConnectionFailed types.ErrorCode = "GRAPH_CONNECTION_FAILED"
	ErrCodeGraphConnectionClosed types.ErrorCode = "GRAPH_CONNECTION_CLOSED"

	// Configuration errors
	ErrCodeGraphInvalidConfig types.ErrorCode = "GRAPH_INVALID_CONFIG"

	// Query errors
	ErrCodeGraphQueryFailed   types.ErrorCode = "GRAPH_QUERY_FAILED"
	ErrCodeGraphQueryTimeout  types.ErrorCode = "GRAPH_QUERY_TIMEOUT"
	ErrCodeGraphQueryCanceled types.ErrorCode = "GRAPH_QUERY_CANCELED"
	ErrCodeGraphInvalidQuery  types.ErrorCode = "GRAPH_INVALID_QUERY"

	// Write errors
	ErrCodeGraphNodeNotFound             types.ErrorCode = "GRAPH_NODE_NOT_FOUND"
	ErrCodeGraphNodeCreateFailed         types.ErrorCode = "GRAPH_NODE_CREATE_FAILED"
	ErrCodeGraphRelationshipCreateFailed types.ErrorCode = "GRAPH_RELATIONSHIP_CREATE_FAILED"
	ErrCodeGraphClearFailed              types.ErrorCode = "GRAPH_CLEAR_FAILED"
)

// IsUnavailable reports whether err means the store could not be reached at all,
// as opposed to the store refusing a particular statement.
func IsUnavailable(err error) bool {
	return types.HasCode(err, ErrCodeGraphConnectionFailed) ||
		types.HasCode(err, ErrCodeGraphConnectionClosed)
}

// IsTimeout reports whether err is a per-query timeout.
func IsTimeout(err error) bool {
	return types.HasCode(err, ErrCodeGraphQueryTimeout)
}

// IsCanceled reports whether the caller abandoned the query.
func IsCanceled(err error) bool {
	return types.HasCode(err, ErrCodeGraphQueryCanceled)
}

// StoreMessage returns the message the store reported for a failed query.
// For errors produced by this package the store's text is kept as the AppError message.
func StoreMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
