package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/bennorichters/notes-rag/internal/chunker"
	"github.com/bennorichters/notes-rag/internal/config"
	"github.com/bennorichters/notes-rag/internal/indexer"
	"github.com/bennorichters/notes-rag/internal/llm"
	"github.com/bennorichters/notes-rag/internal/storage"
	"github.com/bennorichters/notes-rag/internal/vectorstore"
)

// One-shot full rebuild of the notes collection.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

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

	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)

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
		storage.NewRunRepo(db),
	)

	notes, chunks, err := pipeline.Run(context.Background())
	if err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}
	slog.Info("Indexing finished", "notes", notes, "chunks", chunks)
}
