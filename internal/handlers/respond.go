package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/rag"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeEngineError maps RAG engine errors to HTTP status codes.
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	switch {
	case errors.Is(err, rag.ErrNotIndexed):
		logger.WarnContext(ctx, "collection not indexed", "error", err)
		writeError(w, http.StatusInternalServerError, "Collection not found. Has indexing been run?")
	case errors.Is(err, rag.ErrSourceNotFound):
		logger.WarnContext(ctx, "source note missing", "error", err)
		writeError(w, http.StatusNotFound, "Source note not found")
	default:
		// Embedding, LLM, and vector store failures.
		logger.ErrorContext(ctx, "engine error", "error", err)
		writeError(w, http.StatusBadGateway, "External service error")
	}
}
