package jobs

import (
	"context"
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// State is the lifecycle state of a job: PENDING, then PROGRESS, then SUCCESS or FAILURE.
type State string

const (
	StatePending  State = "PENDING"
	StateProgress State = "PROGRESS"
	StateSuccess  State = "SUCCESS"
	StateFailure  State = "FAILURE"
)

// IsTerminal reports whether the job will not change state again.
func (s State) IsTerminal() bool {
	return s == StateSuccess || s == StateFailure
}

// Job is one asynchronously answered question.
type Job struct {
	ID           types.ID    `json:"task_id"`
	Question     string      `json:"question"`
	IncludeQuery bool        `json:"include_cypher"`
	Provider     string      `json:"provider,omitempty"`
	State        State       `json:"status"`
	Outcome      *qa.Outcome `json:"result,omitempty"`
	Error        string      `json:"error,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Request is what a caller submits.
type Request struct {
	Question     string
	IncludeQuery bool
	Provider     string
}

// Store persists jobs until their TTL runs out.
type Store interface {
	// Save inserts or replaces job.
	Save(ctx context.Context, job *Job) error

	// Get returns the job, or an error coded ErrCodeJobNotFound.
	Get(ctx context.Context, id types.ID) (*Job, error)

	// Health reports whether the store can be used.
	Health(ctx context.Context) types.HealthStatus

	Close() error
}

// Answerer answers one question. engine.Engine implements it.
type Answerer interface {
	Answer(ctx context.Context, question string, includeQuery bool, provider string) (*qa.Outcome, error)
}
