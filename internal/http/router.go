// Package http wires the handlers into a chi router with the service
// middleware stack.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bennorichters/notes-rag/internal/handlers"
	"github.com/bennorichters/notes-rag/internal/indexer"
	"github.com/bennorichters/notes-rag/internal/rag"
	"github.com/bennorichters/notes-rag/internal/storage"
	"github.com/bennorichters/notes-rag/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine     rag.Engine
	Pipeline   *indexer.Pipeline
	Store      vectorstore.VectorStore
	Runs       storage.RunStore
	Collection string
	// NotesRoot is the directory /notes/* pages are served from.
	NotesRoot string
	APIKey    string
}

// NewRouter creates the HTTP router. Everything except /health requires
// the API key.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(LoggerMiddleware)
	r.Use(middleware.Recoverer)

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Store, deps.Collection))

	r.Group(func(r chi.Router) {
		r.Use(APIKey(deps.APIKey))

		r.Method(http.MethodPost, "/query", handlers.NewQueryHandler(deps.Engine))
		r.Method(http.MethodPost, "/ask", handlers.NewAskHandler(deps.Engine))
		r.Method(http.MethodPost, "/index", handlers.NewIndexHandler(deps.Pipeline))
		r.Method(http.MethodGet, "/stats", handlers.NewStatsHandler(deps.Runs))
		r.Get("/notes/*", handlers.NewNoteHandler(deps.NotesRoot).ServeHTTP)
	})

	return r
}
