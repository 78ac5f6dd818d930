package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bennorichters/notes-rag/internal/chunker"
	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/notes"
	"github.com/bennorichters/notes-rag/internal/storage"
	"github.com/bennorichters/notes-rag/internal/vectorstore"
)

// Embedder generates one vector per input text, order preserving.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline orchestrates a full index rebuild: load notes, chunk, embed,
// delete and recreate the collection, upsert every chunk. The rebuild is
// the idempotency mechanism; a run interrupted mid-populate is recovered
// by the next run's delete-then-recreate.
type Pipeline struct {
	root       string
	collection string
	vectorSize int
	chunker    *chunker.Chunker
	embedder   Embedder
	store      vectorstore.VectorStore
	runs       storage.RunStore // optional
	logger     *slog.Logger
}

// NewPipeline creates an indexing pipeline. runs may be nil to disable
// the run ledger.
func NewPipeline(
	root string,
	collection string,
	vectorSize int,
	c *chunker.Chunker,
	embedder Embedder,
	store vectorstore.VectorStore,
	runs storage.RunStore,
) *Pipeline {
	return &Pipeline{
		root:       root,
		collection: collection,
		vectorSize: vectorSize,
		chunker:    c,
		embedder:   embedder,
		store:      store,
		runs:       runs,
		logger:     slog.Default(),
	}
}

// Run rebuilds the collection from the notes root. Returns the number of
// notes and chunks indexed.
func (p *Pipeline) Run(ctx context.Context) (notesCount, chunksCount int, err error) {
	started := time.Now().UTC()
	notesCount, chunksCount, err = p.rebuild(ctx)
	p.recordRun(ctx, started, notesCount, chunksCount, err)
	return notesCount, chunksCount, err
}

func (p *Pipeline) rebuild(ctx context.Context) (int, int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	loaded, err := notes.Load(p.root)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load notes: %w", err)
	}
	logger.InfoContext(ctx, "notes loaded", "root", p.root, "count", len(loaded))

	var records []Record
	for _, note := range loaded {
		body := notes.RemoveTagLine(note.Content)
		chunks := p.chunker.ChunkMarkdown(body)
		records = append(records, Assemble(note, chunks, p.root)...)
	}
	logger.InfoContext(ctx, "notes chunked", "notes", len(loaded), "chunks", len(records))

	var embeddings [][]float32
	if len(records) > 0 {
		texts := make([]string, len(records))
		for i, rec := range records {
			texts[i] = rec.Text
		}
		// One batched call; results are identical to per-chunk calls.
		embeddings, err = p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(embeddings) != len(records) {
			return 0, 0, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(embeddings))
		}
	}

	if err := p.store.DeleteCollection(ctx, p.collection); err != nil {
		return 0, 0, fmt.Errorf("failed to delete collection: %w", err)
	}
	if err := p.store.CreateCollection(ctx, p.collection, p.vectorSize); err != nil {
		return 0, 0, fmt.Errorf("failed to create collection: %w", err)
	}

	if len(records) > 0 {
		points := make([]vectorstore.Point, len(records))
		for i, rec := range records {
			points[i] = vectorstore.Point{
				ID:   PointID(rec.ID),
				Vec:  embeddings[i],
				Text: rec.Text,
				Meta: map[string]any{
					"chunk_id": rec.ID,
					"title":    rec.Title,
					"source":   rec.Source,
					"tags":     strings.Join(rec.Tags, ","),
				},
			}
		}
		if err := p.store.Upsert(ctx, p.collection, points); err != nil {
			return 0, 0, fmt.Errorf("failed to upsert chunks: %w", err)
		}
	}

	logger.InfoContext(ctx, "indexing completed", "notes", len(loaded), "chunks", len(records))
	return len(loaded), len(records), nil
}

func (p *Pipeline) recordRun(ctx context.Context, started time.Time, notesCount, chunksCount int, runErr error) {
	if p.runs == nil {
		return
	}

	run := storage.IndexRun{
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Notes:      notesCount,
		Chunks:     chunksCount,
		Status:     "ok",
	}
	if runErr != nil {
		run.Status = "error"
		run.Error = runErr.Error()
	}

	if err := p.runs.Record(ctx, run); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to record index run", "error", err)
	}
}

// PointID derives the deterministic UUID the vector store requires from a
// chunk id. Re-running on an unchanged corpus yields identical point ids.
func PointID(chunkID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(chunkID)).String()
}
