package chunker

import (
	"strings"
	"testing"
)

func TestChunkMarkdown_SmallBodySingleChunk(t *testing.T) {
	c := New()
	body := "# Hachee\n\nBrown the beef in batches."

	chunks := c.ChunkMarkdown(body)
	if len(chunks) != 1 {
		t.Fatalf("ChunkMarkdown() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0] != strings.TrimSpace(body) {
		t.Errorf("ChunkMarkdown() = %q, want trimmed body", chunks[0])
	}
}

func TestChunkMarkdown_EmptyInput(t *testing.T) {
	c := New()
	for _, text := range []string{"", "   \n\n  "} {
		if chunks := c.ChunkMarkdown(text); len(chunks) != 0 {
			t.Errorf("ChunkMarkdown(%q) = %d chunks, want 0", text, len(chunks))
		}
	}
}

func TestChunkMarkdown_HeaderSections(t *testing.T) {
	c := New()
	body := "Intro text.\n\n## First\n\nAlpha.\n\n## Second\n\nBeta."

	chunks := c.ChunkMarkdown(body)
	want := []string{"Intro text.", "## First\n\nAlpha.", "## Second\n\nBeta."}
	if len(chunks) != len(want) {
		t.Fatalf("ChunkMarkdown() returned %d chunks, want %d: %q", len(chunks), len(want), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestChunkMarkdown_OversizedSectionRepeatsHeader(t *testing.T) {
	c := New(WithMaxSize(100), WithWindow(40, 10))
	para1 := strings.Repeat("aa ", 30) // 90 runes
	para2 := strings.Repeat("bb ", 30)
	body := "## Long Section\n\n" + para1 + "\n\n" + para2

	chunks := c.ChunkMarkdown(body)
	if len(chunks) < 2 {
		t.Fatalf("expected the section to split, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		if !strings.HasPrefix(chunk, "## Long Section\n\n") {
			t.Errorf("chunk %d does not repeat the section header: %q", i, chunk)
		}
	}
}

func TestChunkMarkdown_FencedBlocksStayTerminated(t *testing.T) {
	c := New(WithMaxSize(120))
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, "some_code_line_with_padding()")
	}
	body := "## Code\n\n```go\n" + strings.Join(lines, "\n") + "\n```"

	chunks := c.ChunkMarkdown(body)
	if len(chunks) < 2 {
		t.Fatalf("expected the code block to split, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		inner := strings.TrimPrefix(chunk, "## Code\n\n")
		if !strings.HasPrefix(inner, "```go\n") {
			t.Errorf("chunk %d does not start with the opening fence: %q", i, chunk)
		}
		if !strings.HasSuffix(inner, "\n```") {
			t.Errorf("chunk %d does not end with a closing fence: %q", i, chunk)
		}
	}
}

func TestChunkCode_OverlongLineAcceptedWhole(t *testing.T) {
	c := New(WithMaxSize(50))
	long := strings.Repeat("x", 200)
	text := "```\n" + long + "\n```"

	chunks := c.chunkCode(text)
	if len(chunks) != 1 {
		t.Fatalf("chunkCode() returned %d chunks, want 1", len(chunks))
	}
	if !strings.Contains(chunks[0], long) {
		t.Error("overlong line was split")
	}
}

func TestChunkMarkdown_UnterminatedFenceFallsThrough(t *testing.T) {
	c := New()
	body := "## Notes\n\n```bash\necho unterminated"

	chunks := c.ChunkMarkdown(body)
	if len(chunks) != 1 {
		t.Fatalf("ChunkMarkdown() returned %d chunks, want 1: %q", len(chunks), chunks)
	}
	if !strings.Contains(chunks[0], "echo unterminated") {
		t.Errorf("unterminated fence content dropped: %q", chunks[0])
	}
}

func TestIsListBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"mostly items", "- one\n- two\n- three\nplain", true},
		{"mostly prose", "intro\nmore prose\n- single item", false},
		{"indented items count", "  - one\n  - two\nplain", true},
		{"exactly half is not a list", "- one\nplain", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isListBlock(tt.text); got != tt.want {
				t.Errorf("isListBlock(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestChunkList_NeverSplitsItemFromContinuation(t *testing.T) {
	c := New(WithMaxSize(60))
	continuation := strings.Repeat("  wrapped continuation line\n", 8)
	text := "- first item\n" + continuation + "- second item\n- third item"

	chunks := c.chunkList(text)
	if len(chunks) < 2 {
		t.Fatalf("expected the list to split, got %d chunks", len(chunks))
	}
	// The oversized first item keeps all its continuation lines.
	if !strings.HasPrefix(chunks[0], "- first item") {
		t.Fatalf("chunk 0 = %q", chunks[0])
	}
	if strings.Count(chunks[0], "wrapped continuation line") != 8 {
		t.Errorf("continuation lines were split away from their item: %q", chunks[0])
	}
	for i, chunk := range chunks[1:] {
		if !strings.HasPrefix(chunk, "- ") {
			t.Errorf("chunk %d does not start at an item boundary: %q", i+1, chunk)
		}
	}
}

func TestChunkWindow_OffsetsAndFinalWindow(t *testing.T) {
	c := New(WithWindow(500, 50))
	text := strings.Repeat("a", 1200)

	chunks := c.chunkWindow(text)
	if len(chunks) != 3 {
		t.Fatalf("chunkWindow() returned %d windows, want 3", len(chunks))
	}
	wantLens := []int{500, 500, 300}
	for i, chunk := range chunks {
		if len(chunk) != wantLens[i] {
			t.Errorf("window %d length = %d, want %d", i, len(chunk), wantLens[i])
		}
	}
}

func TestChunkWindow_OverlapDuplicatesContext(t *testing.T) {
	c := New(WithWindow(100, 20))
	var b strings.Builder
	for i := 0; b.Len() < 250; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	chunks := c.chunkWindow(text)
	for i := 1; i < len(chunks); i++ {
		tail := chunks[i-1][len(chunks[i-1])-20:]
		if !strings.HasPrefix(chunks[i], tail) {
			t.Errorf("window %d does not start with the previous window's overlap", i)
		}
	}
}

// Discounting re-prepended headers and window overlap, every character of
// the body must appear in some chunk.
func TestChunkMarkdown_FullCoverage(t *testing.T) {
	c := New(WithMaxSize(80), WithWindow(40, 10))
	body := "preamble paragraph before any header\n\n" +
		"## Lists\n\n- item one\n- item two\n- item three\n- item four\n- item five\n- item six\n- item seven\n\n" +
		"## Code\n\n```py\nline_one = 1\nline_two = 2\nline_three = 3\nline_four = 4\nline_five = 5\n```\n\n" +
		"## Prose\n\n" + strings.Repeat("prose without any structure at all ", 6)

	chunks := c.ChunkMarkdown(body)
	joined := strings.Join(chunks, "\n")

	for _, want := range []string{
		"preamble paragraph before any header",
		"- item one", "- item seven",
		"line_one = 1", "line_five = 5",
		"prose without any structure",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("content %q missing from chunks", want)
		}
	}
}

func TestChunkMarkdown_Deterministic(t *testing.T) {
	c := New(WithMaxSize(90), WithWindow(40, 10))
	body := "## A\n\n" + strings.Repeat("deterministic content ", 20) + "\n\n## B\n\n- x\n- y"

	first := c.ChunkMarkdown(body)
	for run := 0; run < 3; run++ {
		again := c.ChunkMarkdown(body)
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d chunks, first run produced %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Errorf("run %d chunk %d differs", run, i)
			}
		}
	}
}
