package indexer

import (
	"strings"
	"testing"

	"github.com/bennorichters/notes-rag/internal/chunker"
	"github.com/bennorichters/notes-rag/internal/notes"
)

func TestAssemble_TaggedNote(t *testing.T) {
	note := notes.Note{
		Path:    "./notes/recipes/hachee.md",
		Content: "# Hachee\n\nBrown the beef in batches.\n\n:dutch:stew:",
	}
	body := notes.RemoveTagLine(note.Content)
	chunks := chunker.New().ChunkMarkdown(body)

	records := Assemble(note, chunks, "./notes")
	if len(records) != 1 {
		t.Fatalf("Assemble() returned %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.ID != "/recipes/hachee.md_0" {
		t.Errorf("ID = %q", rec.ID)
	}
	if rec.Title != "Hachee" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Source != "/recipes/hachee.md" {
		t.Errorf("Source = %q", rec.Source)
	}
	if !strings.HasSuffix(rec.Text, "\n\nTags: dutch, stew") {
		t.Errorf("Text does not end with the tag suffix: %q", rec.Text)
	}
	if strings.Contains(rec.Text, ":dutch:stew:") {
		t.Errorf("raw tag line leaked into chunk text: %q", rec.Text)
	}
	if len(rec.Tags) != 2 || rec.Tags[0] != "dutch" || rec.Tags[1] != "stew" {
		t.Errorf("Tags = %v", rec.Tags)
	}
}

func TestAssemble_OrdinalsAndPerChunkSuffix(t *testing.T) {
	// Two oversized sections so the chunker emits several chunks.
	body := "## One\n\n" + strings.Repeat("alpha ", 400) +
		"\n\n## Two\n\n" + strings.Repeat("beta ", 400)
	note := notes.Note{Path: "/srv/notes/big.md", Content: body + "\n\n:big:"}

	chunks := chunker.New().ChunkMarkdown(notes.RemoveTagLine(note.Content))
	records := Assemble(note, chunks, "/srv/notes")
	if len(records) < 2 {
		t.Fatalf("expected several records, got %d", len(records))
	}

	for i, rec := range records {
		wantID := "/big.md_" + string(rune('0'+i))
		if i < 10 && rec.ID != wantID {
			t.Errorf("record %d ID = %q, want %q", i, rec.ID, wantID)
		}
		// Every chunk of a tagged note repeats the suffix.
		if !strings.HasSuffix(rec.Text, "\n\nTags: big") {
			t.Errorf("record %d missing tag suffix", i)
		}
		if rec.Source != "/big.md" {
			t.Errorf("record %d Source = %q", i, rec.Source)
		}
	}
}

func TestAssemble_UntaggedNoteHasNoSuffix(t *testing.T) {
	note := notes.Note{Path: "/n/plain.md", Content: "# Plain\n\nNo tags here."}
	chunks := chunker.New().ChunkMarkdown(note.Content)

	records := Assemble(note, chunks, "/n")
	if len(records) != 1 {
		t.Fatalf("Assemble() returned %d records, want 1", len(records))
	}
	if strings.Contains(records[0].Text, "Tags:") {
		t.Errorf("untagged note got a tag suffix: %q", records[0].Text)
	}
	if records[0].Tags != nil {
		t.Errorf("Tags = %v, want nil", records[0].Tags)
	}
}

func TestPointID_Deterministic(t *testing.T) {
	a := PointID("/recipes/hachee.md_0")
	b := PointID("/recipes/hachee.md_0")
	c := PointID("/recipes/hachee.md_1")

	if a != b {
		t.Error("PointID is not deterministic")
	}
	if a == c {
		t.Error("distinct chunk ids mapped to the same point id")
	}
}
