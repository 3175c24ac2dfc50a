package qa

import (
	"encoding/json"
	"time"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// GeneratedQuery is one candidate query. Retries produce new values.
type GeneratedQuery struct {
	Text        string `json:"text"`
	Attempt     int    `json:"attempt"`
	Explanation string `json:"explanation,omitempty"`
}

// Failure describes why an attempt produced no rows.
type Failure struct {
	Category types.ErrorCode `json:"category"`
	Message  string          `json:"message"`
}

// ExecutionResult is either a set of rows or a Failure, never both.
// Build it with Succeeded or Failed.
type ExecutionResult struct {
	rows    []map[string]any
	columns []string
	failure *Failure
}

// Succeeded returns a successful result. A nil rows slice is treated as no rows.
func Succeeded(rows []map[string]any, columns []string) ExecutionResult {
	if rows == nil {
		rows = []map[string]any{}
	}
	if columns == nil {
		columns = []string{}
	}
	return ExecutionResult{rows: rows, columns: columns}
}

// Failed returns a failed result carrying the store's or the guard's message.
func Failed(category types.ErrorCode, message string) ExecutionResult {
	return ExecutionResult{failure: &Failure{Category: category, Message: message}}
}

// OK reports whether the result is the success variant.
func (r ExecutionResult) OK() bool {
	return r.failure == nil && r.rows != nil
}

// Rows returns the result rows, or nil for a failure.
func (r ExecutionResult) Rows() []map[string]any {
	return r.rows
}

// Columns returns the result columns in query order, or nil for a failure.
func (r ExecutionResult) Columns() []string {
	return r.columns
}

// Failure returns the failure, or nil for a success.
func (r ExecutionResult) Failure() *Failure {
	return r.failure
}

// MarshalJSON renders a summary of the result. Rows are not included.
func (r ExecutionResult) MarshalJSON() ([]byte, error) {
	if r.failure != nil {
		return json.Marshal(struct {
			OK    bool     `json:"ok"`
			Error *Failure `json:"error"`
		}{OK: false, Error: r.failure})
	}
	return json.Marshal(struct {
		OK       bool     `json:"ok"`
		RowCount int      `json:"row_count"`
		Columns  []string `json:"columns"`
	}{OK: true, RowCount: len(r.rows), Columns: r.columns})
}

// Attempt pairs a generated query with what happened when it ran.
type Attempt struct {
	Query    GeneratedQuery  `json:"query"`
	Result   ExecutionResult `json:"result"`
	Duration time.Duration   `json:"duration_ns"`
}

// Status is the final state of one question.
type Status string

const (
	StatusAnswered         Status = "answered"
	StatusNoResults        Status = "no_results"
	StatusFailed           Status = "failed"
	StatusStoreUnavailable Status = "store_unavailable"
)

// Succeeded reports whether the status is backed by a successful attempt.
func (s Status) Succeeded() bool {
	return s == StatusAnswered || s == StatusNoResults
}

// Outcome is the result of answering one question. It is built once and not modified afterwards.
type Outcome struct {
	RequestID       string          `json:"request_id"`
	Question        string          `json:"question"`
	Answer          string          `json:"answer"`
	Query           string          `json:"cypher_query,omitempty"`
	Attempts        int             `json:"attempts"`
	Status          Status          `json:"status"`
	Provider        string          `json:"provider"`
	Model           string          `json:"model"`
	FailureCategory types.ErrorCode `json:"failure_category,omitempty"`
	History         []Attempt       `json:"history,omitempty"`
	Duration        time.Duration   `json:"duration_ns"`
}

// Resolution is what the Controller hands back to the Pipeline.
type Resolution struct {
	// History holds every executed attempt in order.
	History []Attempt

	// Final is the successful attempt, or nil when none succeeded.
	Final *Attempt

	// Err is set when the loop stopped for a reason other than a failed execution:
	// store unavailable, generation failure or cancellation.
	Err error
}

// Succeeded reports whether some attempt returned rows.
func (r Resolution) Succeeded() bool {
	return r.Final != nil
}

// LastFailure returns the message to explain an unsuccessful resolution with.
// A stopping error takes precedence over the last failed attempt.
func (r Resolution) LastFailure() (types.ErrorCode, string) {
	if r.Err != nil {
		code := types.CodeOf(r.Err)
		if len(r.History) > 0 && code == ErrGenerationFailed {
			if f := r.History[len(r.History)-1].Result.Failure(); f != nil {
				return f.Category, f.Message
			}
		}
		return code, messageOf(r.Err)
	}
	if n := len(r.History); n > 0 {
		if f := r.History[n-1].Result.Failure(); f != nil {
			return f.Category, f.Message
		}
	}
	return "", ""
}

func messageOf(err error) string {
	if appErr, ok := err.(*types.AppError); ok {
		if appErr.Cause != nil {
			return appErr.Message + ": " + appErr.Cause.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
