package handlers

import (
	"context"
	"net/http"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/indexer"
)

// IndexHandler handles HTTP requests for triggering a full rebuild.
type IndexHandler struct {
	pipeline *indexer.Pipeline
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(pipeline *indexer.Pipeline) *IndexHandler {
	return &IndexHandler{pipeline: pipeline}
}

// IndexResponse represents the response from the index endpoint.
type IndexResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP triggers a rebuild in the background and returns immediately.
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	logger.InfoContext(ctx, "re-indexing triggered via API")

	// Background context so the rebuild survives the HTTP request.
	go func() {
		indexCtx := contextutil.WithLogger(context.Background(), logger)
		if _, _, err := h.pipeline.Run(indexCtx); err != nil {
			logger.ErrorContext(indexCtx, "re-indexing failed", "error", err)
			return
		}
		logger.InfoContext(indexCtx, "re-indexing completed")
	}()

	writeJSON(w, http.StatusAccepted, IndexResponse{
		Message: "Indexing started. Check server logs for progress.",
		Status:  "accepted",
	})
}
