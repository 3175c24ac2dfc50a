package jobs

import (
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Job error codes
const (
	ErrCodeJobNotFound    types.ErrorCode = "JOB_NOT_FOUND"
	ErrCodeJobQueueFull   types.ErrorCode = "JOB_QUEUE_FULL"
	ErrCodeJobStoreFailed types.ErrorCode = "JOB_STORE_FAILED"
)

func notFound(id types.ID) error {
	return types.NewError(ErrCodeJobNotFound, "task "+id.String()+" not found")
}
