package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kamal2131/langchain-neo4j/internal/company"
	"github.com/Kamal2131/langchain-neo4j/internal/jobs"
	"github.com/Kamal2131/langchain-neo4j/internal/llm"
	"github.com/Kamal2131/langchain-neo4j/internal/schema"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, code types.ErrorCode, details map[string]any) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: string(code), Details: details})
}

// statusForError maps service error codes to HTTP status codes.
func statusForError(err error) int {
	switch types.CodeOf(err) {
	case types.REQUEST_INVALID, llm.ErrProviderNotFound:
		return http.StatusBadRequest
	case types.REQUEST_NOT_FOUND, jobs.ErrCodeJobNotFound, company.ErrCodeNotFound:
		return http.StatusNotFound
	case jobs.ErrCodeJobQueueFull, schema.ErrCodeStoreUnavailable, company.ErrCodeStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeAppError(w http.ResponseWriter, err error) {
	message := err.Error()
	var appErr *types.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	writeError(w, statusForError(err), message, types.CodeOf(err), nil)
}
