package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/vectorstore"
)

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	store        vectorstore.VectorStore
	collection   string
	checkTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store vectorstore.VectorStore, collection string) *HealthHandler {
	return &HealthHandler{
		store:        store,
		collection:   collection,
		checkTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// ServeHTTP handles HTTP requests for health checks. No auth required.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	checkCtx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	exists, err := h.store.CollectionExists(checkCtx, h.collection)
	switch {
	case err != nil:
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		checks["vector_store"] = "error"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case !exists:
		// Reachable but not yet indexed; the service can still accept
		// an indexing run, so report degraded rather than down.
		checks["vector_store"] = "collection_missing"
		status = "degraded"
	default:
		checks["vector_store"] = "ok"
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
