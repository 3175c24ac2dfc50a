package api

import (
	"github.com/Kamal2131/langchain-neo4j/internal/jobs"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
)

// QueryRequest is the body of POST /api/v1/query and POST /api/v1/query/async.
type QueryRequest struct {
	Question      string `json:"question" validate:"required,min=3,max=500"`
	IncludeCypher bool   `json:"include_cypher"`
	Provider      string `json:"provider,omitempty" validate:"omitempty,max=64"`
}

// QueryMetadata describes how an answer was produced.
type QueryMetadata struct {
	Provider        string `json:"provider"`
	Model           string `json:"model"`
	RequestID       string `json:"request_id"`
	DurationMS      int64  `json:"duration_ms"`
	FailureCategory string `json:"failure_category,omitempty"`
}

// QueryResponse is the answer to one question.
type QueryResponse struct {
	Question    string        `json:"question"`
	Answer      string        `json:"answer"`
	CypherQuery string        `json:"cypher_query,omitempty"`
	Attempts    int           `json:"attempts"`
	Status      qa.Status     `json:"status"`
	Metadata    QueryMetadata `json:"metadata"`
}

func newQueryResponse(out *qa.Outcome) QueryResponse {
	return QueryResponse{
		Question:    out.Question,
		Answer:      out.Answer,
		CypherQuery: out.Query,
		Attempts:    out.Attempts,
		Status:      out.Status,
		Metadata: QueryMetadata{
			Provider:        out.Provider,
			Model:           out.Model,
			RequestID:       out.RequestID,
			DurationMS:      out.Duration.Milliseconds(),
			FailureCategory: string(out.FailureCategory),
		},
	}
}

// AsyncQueryResponse acknowledges a queued question.
type AsyncQueryResponse struct {
	TaskID  string     `json:"task_id"`
	Status  jobs.State `json:"status"`
	Message string     `json:"message"`
}

// TaskStatusResponse reports where a queued question is.
type TaskStatusResponse struct {
	TaskID  string     `json:"task_id"`
	Status  jobs.State `json:"status"`
	Message string     `json:"message"`
	Ready   bool       `json:"ready"`
	Error   string     `json:"error,omitempty"`
}

// TaskResultResponse carries the answer of a finished task.
type TaskResultResponse struct {
	TaskID string         `json:"task_id"`
	Status jobs.State     `json:"status"`
	Result *QueryResponse `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status         string         `json:"status"`
	Neo4jConnected bool           `json:"neo4j_connected"`
	Details        map[string]any `json:"details,omitempty"`
}

// SchemaStatsResponse is the body of GET /api/v1/health/schema.
type SchemaStatsResponse struct {
	Nodes              map[string]int64 `json:"nodes"`
	Relationships      map[string]int64 `json:"relationships"`
	TotalNodes         int64            `json:"total_nodes"`
	TotalRelationships int64            `json:"total_relationships"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
