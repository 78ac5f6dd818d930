// Package indexer turns notes into embedded chunk records and rebuilds
// the vector collection from scratch.
package indexer

import (
	"fmt"
	"strings"

	"github.com/bennorichters/notes-rag/internal/notes"
)

// Record is one chunk ready for embedding and storage.
type Record struct {
	ID     string
	Title  string
	Text   string
	Source string
	Tags   []string
}

// Assemble attaches metadata to a note's ordered chunks. The source is
// the note path with the notes-root prefix stripped; ids are
// "<source>_<ordinal>" with 0-based ordinals in emission order. When the
// note has tags, every chunk's text carries the "Tags: ..." suffix so the
// tags are part of what gets embedded.
func Assemble(note notes.Note, chunks []string, root string) []Record {
	title := notes.ExtractTitle(note.Content)
	tags := notes.ExtractTags(note.Content)

	suffix := ""
	if len(tags) > 0 {
		suffix = "\n\nTags: " + strings.Join(tags, ", ")
	}

	source := strings.TrimPrefix(note.Path, root)

	records := make([]Record, 0, len(chunks))
	for i, chunk := range chunks {
		records = append(records, Record{
			ID:     fmt.Sprintf("%s_%d", source, i),
			Title:  title,
			Text:   chunk + suffix,
			Source: source,
			Tags:   tags,
		})
	}
	return records
}
