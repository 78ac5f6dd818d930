package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/bennorichters/notes-rag/internal/chunker"
	"github.com/bennorichters/notes-rag/internal/config"
	"github.com/bennorichters/notes-rag/internal/http"
	"github.com/bennorichters/notes-rag/internal/indexer"
	"github.com/bennorichters/notes-rag/internal/llm"
	"github.com/bennorichters/notes-rag/internal/rag"
	"github.com/bennorichters/notes-rag/internal/storage"
	"github.com/bennorichters/notes-rag/internal/vectorstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.APIKey == "" {
		log.Fatal("API_KEY environment variable must be set")
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()
	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	slog.Info("Qdrant client ready", "url", cfg.QdrantURL, "collection", cfg.QdrantCollection)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)

	runs := storage.NewRunRepo(db)
	pipeline := indexer.NewPipeline(
		cfg.NotesPath,
		cfg.QdrantCollection,
		cfg.QdrantVectorSize,
		chunker.New(
			chunker.WithMaxSize(cfg.ChunkMaxSize),
			chunker.WithWindow(cfg.ChunkWindowSize, cfg.ChunkWindowOverlap),
		),
		embedder,
		store,
		runs,
	)

	engine := rag.NewEngine(embedder, llmClient, store, cfg.QdrantCollection, cfg.AnswerNotesPath)
	slog.Info("RAG engine initialized")

	router := http.NewRouter(&http.Deps{
		Engine:     engine,
		Pipeline:   pipeline,
		Store:      store,
		Runs:       runs,
		Collection: cfg.QdrantCollection,
		NotesRoot:  cfg.AnswerNotesPath,
		APIKey:     cfg.APIKey,
	})

	// Rebuild the collection in the background after the router is ready.
	go func() {
		indexCtx := context.Background()
		slog.Info("Starting background indexing", "root", cfg.NotesPath)
		if _, _, err := pipeline.Run(indexCtx); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		}
	}()

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
