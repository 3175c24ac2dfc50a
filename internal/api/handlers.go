package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/Kamal2131/langchain-neo4j/internal/jobs"
	"github.com/Kamal2131/langchain-neo4j/internal/qa"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
	"github.com/Kamal2131/langchain-neo4j/pkg/version"
)

const maxBodyBytes = 64 << 10

func (s *Server) handleRootHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": s.cfg.App.Name})
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, qa.Samples())
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	out, err := s.engine.Answer(r.Context(), req.Question, req.IncludeCypher, req.Provider)
	if err != nil {
		writeAppError(w, err)
		return
	}

	status := http.StatusOK
	if out.Status == qa.StatusStoreUnavailable {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, newQueryResponse(out))
}

func (s *Server) handleAsyncQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQuery(w, r)
	if !ok {
		return
	}

	// Reject unknown providers now rather than in the worker.
	if _, err := s.engine.Pipeline(req.Provider); err != nil {
		writeAppError(w, err)
		return
	}

	job, err := s.runner.Submit(r.Context(), jobs.Request{
		Question:     req.Question,
		IncludeQuery: req.IncludeCypher,
		Provider:     req.Provider,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, AsyncQueryResponse{
		TaskID:  job.ID.String(),
		Status:  job.State,
		Message: "Query submitted for background processing",
	})
}

func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, TaskStatusResponse{
		TaskID:  job.ID.String(),
		Status:  job.State,
		Message: taskMessage(job.State),
		Ready:   job.State.IsTerminal(),
		Error:   job.Error,
	})
}

func (s *Server) handleTaskResult(w http.ResponseWriter, r *http.Request) {
	job, ok := s.loadJob(w, r)
	if !ok {
		return
	}

	resp := TaskResultResponse{TaskID: job.ID.String(), Status: job.State, Error: job.Error}
	switch job.State {
	case jobs.StateSuccess:
		if job.Outcome != nil {
			result := newQueryResponse(job.Outcome)
			resp.Result = &result
		}
		writeJSON(w, http.StatusOK, resp)
	case jobs.StateFailure:
		writeJSON(w, http.StatusOK, resp)
	default:
		writeJSON(w, http.StatusAccepted, resp)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.engine.Health(r.Context())
	details := map[string]any{
		"environment":  s.cfg.App.Environment,
		"version":      version.Version,
		"llm_provider": h.Provider,
		"providers":    s.engine.Providers(),
	}
	if !h.Neo4jConnected {
		details["neo4j_error"] = h.Graph.Message
	}
	if s.runner != nil {
		details["jobs"] = s.runner.Store().Health(r.Context()).State
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:         string(h.Status),
		Neo4jConnected: h.Neo4jConnected,
		Details:        details,
	})
}

func (s *Server) handleSchemaStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.Inspector().Stats(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "failed to read schema stats", "error", err)
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SchemaStatsResponse{
		Nodes:              stats.NodeCounts,
		Relationships:      stats.RelationshipCounts,
		TotalNodes:         stats.TotalNodes,
		TotalRelationships: stats.TotalRelationships,
	})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	desc, err := s.engine.Inspector().Describe(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "failed to describe schema", "error", err)
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"labels":             desc.Labels,
		"relationship_types": desc.RelationshipTypes,
		"properties":         desc.Properties,
		"patterns":           desc.Patterns,
		"text":               desc.String(),
	})
}

// decodeQuery reads and validates a QueryRequest, writing a 400 on failure.
func (s *Server) decodeQuery(w http.ResponseWriter, r *http.Request) (QueryRequest, bool) {
	var req QueryRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), types.REQUEST_INVALID, nil)
		return req, false
	}

	req.Question = strings.TrimSpace(req.Question)
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err), types.REQUEST_INVALID, nil)
		return req, false
	}
	return req, true
}

func (s *Server) loadJob(w http.ResponseWriter, r *http.Request) (*jobs.Job, bool) {
	id, err := types.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found", jobs.ErrCodeJobNotFound, nil)
		return nil, false
	}

	job, err := s.runner.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return nil, false
	}
	return job, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}

func taskMessage(state jobs.State) string {
	switch state {
	case jobs.StatePending:
		return "Task is waiting to be processed"
	case jobs.StateProgress:
		return "Task is being processed"
	case jobs.StateSuccess:
		return "Task completed successfully"
	case jobs.StateFailure:
		return "Task failed"
	default:
		return "Unknown task state"
	}
}
