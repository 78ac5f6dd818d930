package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/rag"
)

// AskHandler handles HTTP requests for full question answering.
type AskHandler struct {
	engine rag.Engine
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(engine rag.Engine) *AskHandler {
	return &AskHandler{engine: engine}
}

// AskResponse represents the HTTP response payload for answers.
type AskResponse struct {
	Answer string `json:"answer"`
	Source string `json:"source,omitempty"`
}

// ServeHTTP handles HTTP requests for full question answering.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	answer, err := h.engine.Ask(ctx, req.Question, req.NResults)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AskResponse{Answer: answer.Text, Source: answer.Source})
}
