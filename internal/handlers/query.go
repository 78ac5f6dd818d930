package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/rag"
)

// QueryHandler handles HTTP requests for chunk retrieval.
type QueryHandler struct {
	engine rag.Engine
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(engine rag.Engine) *QueryHandler {
	return &QueryHandler{engine: engine}
}

// QueryRequest represents the HTTP request payload for retrieval.
type QueryRequest struct {
	Question string `json:"question"`
	NResults int    `json:"n_results"`
}

// QueryItem represents one retrieved chunk in the HTTP response.
type QueryItem struct {
	Chunk  string   `json:"chunk"`
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}

// ServeHTTP handles HTTP requests for chunk retrieval.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.engine.Query(ctx, req.Question, req.NResults)
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	resp := make([]QueryItem, len(items))
	for i, item := range items {
		resp[i] = QueryItem{
			Chunk:  item.Chunk,
			Source: item.Source,
			Tags:   item.Tags,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
