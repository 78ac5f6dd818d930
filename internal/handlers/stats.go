package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/storage"
)

// StatsHandler serves the recent index run history.
type StatsHandler struct {
	runs storage.RunStore
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(runs storage.RunStore) *StatsHandler {
	return &StatsHandler{runs: runs}
}

// RunResponse represents one index run in the stats response.
type RunResponse struct {
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Notes      int    `json:"notes"`
	Chunks     int    `json:"chunks"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// StatsResponse represents the stats endpoint response.
type StatsResponse struct {
	Runs []RunResponse `json:"runs"`
}

// ServeHTTP returns the most recent index runs, newest first.
func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	runs, err := h.runs.ListRecent(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list index runs", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list index runs")
		return
	}

	resp := StatsResponse{Runs: make([]RunResponse, len(runs))}
	for i, run := range runs {
		resp.Runs[i] = RunResponse{
			StartedAt:  run.StartedAt.UTC().Format(time.RFC3339),
			FinishedAt: run.FinishedAt.UTC().Format(time.RFC3339),
			Notes:      run.Notes,
			Chunks:     run.Chunks,
			Status:     run.Status,
			Error:      run.Error,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
