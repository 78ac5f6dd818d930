package rag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/vectorstore"
)

const (
	defaultResults = 3
	maxResults     = 20
)

// Engine answers questions over the indexed notes collection.
type Engine interface {
	// Query retrieves the chunks most relevant to a question.
	Query(ctx context.Context, question string, n int) ([]Item, error)
	// Ask retrieves relevant chunks, picks the best source via the LLM,
	// and answers the question from that note's full text.
	Ask(ctx context.Context, question string, n int) (Answer, error)
}

type ragEngine struct {
	embedder   Embedder
	completer  Completer
	store      vectorstore.VectorStore
	collection string
	notesRoot  string
}

// NewEngine creates a RAG engine. notesRoot is the directory source paths
// are resolved against at answer time.
func NewEngine(
	embedder Embedder,
	completer Completer,
	store vectorstore.VectorStore,
	collection string,
	notesRoot string,
) Engine {
	return &ragEngine{
		embedder:   embedder,
		completer:  completer,
		store:      store,
		collection: collection,
		notesRoot:  notesRoot,
	}
}

func (e *ragEngine) Query(ctx context.Context, question string, n int) ([]Item, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if n <= 0 {
		n = defaultResults
	}
	if n > maxResults {
		n = maxResults
	}

	embeddings, err := e.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for question")
	}

	results, err := e.store.Query(ctx, e.collection, embeddings[0], n)
	if err != nil {
		if errors.Is(err, vectorstore.ErrCollectionNotFound) {
			return nil, ErrNotIndexed
		}
		logger.ErrorContext(ctx, "failed to query vector store", "error", err)
		return nil, fmt.Errorf("failed to query vector store: %w", err)
	}

	items := make([]Item, 0, len(results))
	for _, result := range results {
		source, _ := result.Meta["source"].(string)
		items = append(items, Item{
			Chunk:  result.Text,
			Source: source,
			Tags:   splitTags(result.Meta["tags"]),
		})
	}

	logger.InfoContext(ctx, "query completed", "question", question, "results", len(items))
	return items, nil
}

func (e *ragEngine) Ask(ctx context.Context, question string, n int) (Answer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	items, err := e.Query(ctx, question, n)
	if err != nil {
		return Answer{}, err
	}
	if len(items) == 0 {
		return Answer{Text: "No relevant notes found."}, nil
	}

	selected := items[e.selectSource(ctx, question, items)]

	rel := sanitizeSource(selected.Source)
	path := filepath.Join(e.notesRoot, filepath.FromSlash(rel))
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		logger.WarnContext(ctx, "source does not resolve to a note", "source", selected.Source, "path", path)
		return Answer{}, fmt.Errorf("%w: %s", ErrSourceNotFound, selected.Source)
	}

	document, err := os.ReadFile(path)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to read source note: %w", err)
	}

	reply, err := e.completer.Chat(ctx, answerPrompt(question, string(document)))
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return Answer{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.InfoContext(ctx, "question answered", "source", selected.Source)
	return Answer{Text: strings.TrimSpace(reply), Source: selected.Source}, nil
}

// selectSource asks the LLM which retrieved item best answers the
// question. The reply is parsed defensively; any failure falls back to
// the best-scoring item.
func (e *ragEngine) selectSource(ctx context.Context, question string, items []Item) int {
	if len(items) == 1 {
		return 0
	}

	reply, err := e.completer.Chat(ctx, rerankPrompt(question, items))
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "rerank failed, using best match", "error", err)
		return 0
	}
	return parseIndex(reply, len(items))
}

func rerankPrompt(question string, items []Item) string {
	var b strings.Builder
	b.WriteString(`You are given a question and a numbered list of excerpts. Each excerpt was taken from a different document.

Task:
Determine which single excerpt is most useful for answering the question.

Rules:
- Select the excerpt that most directly and substantially helps answer the question.
- If an excerpt only contains a title or metadata but clearly indicates the full document is about the question topic, select it.
- Do not combine multiple excerpts.
- Do not infer beyond the given excerpts.

Output:
- Return only the number of the selected excerpt.
- Do not include explanations or any other text.

Question: `)
	b.WriteString(question)
	b.WriteString("\n\nExcerpts:\n")
	for i, item := range items {
		fmt.Fprintf(&b, "\n[%d] (from %s)\n%s\n", i, item.Source, item.Chunk)
	}
	return b.String()
}

func answerPrompt(question, document string) string {
	return fmt.Sprintf(`Based on the following note, answer the question.

Note:
%s

Question: %s`, document, question)
}
