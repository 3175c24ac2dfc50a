package qa

import (
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Pipeline error codes. They double as failure categories of an ExecutionResult.
const (
	// ErrStoreUnavailable means the graph store could not be reached. Fatal.
	ErrStoreUnavailable types.ErrorCode = "QA_STORE_UNAVAILABLE"

	// ErrQueryRejected means the store, or the read-only guard, refused the query. Retryable.
	ErrQueryRejected types.ErrorCode = "QA_QUERY_REJECTED"

	// ErrQueryTimeout means the query ran past its per-attempt timeout. Retryable.
	ErrQueryTimeout types.ErrorCode = "QA_QUERY_TIMEOUT"

	// ErrGenerationFailed means no query text could be obtained from the model.
	ErrGenerationFailed types.ErrorCode = "QA_GENERATION_FAILED"

	// ErrSynthesisFailed means the model could not turn rows into an answer.
	ErrSynthesisFailed types.ErrorCode = "QA_SYNTHESIS_FAILED"

	// ErrCanceled means the caller abandoned the request.
	ErrCanceled types.ErrorCode = "QA_CANCELED"
)

// IsRetryableCategory reports whether a failed attempt of this category may be followed by another.
func IsRetryableCategory(code types.ErrorCode) bool {
	return code == ErrQueryRejected || code == ErrQueryTimeout
}

// NewStoreUnavailableError wraps cause as a StoreUnavailable error.
func NewStoreUnavailableError(message string, cause error) *types.AppError {
	return types.WrapError(ErrStoreUnavailable, message, cause)
}

// NewGenerationError wraps cause as a GenerationFailed error.
func NewGenerationError(message string, cause error) *types.AppError {
	return types.WrapError(ErrGenerationFailed, message, cause)
}

// NewSynthesisError wraps cause as a SynthesisFailed error.
func NewSynthesisError(message string, cause error) *types.AppError {
	return &types.AppError{
		Code:      ErrSynthesisFailed,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}
