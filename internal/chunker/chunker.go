// Package chunker splits markdown note bodies into bounded-size chunks
// suitable for embedding. Splitting prefers the most meaningful structural
// unit available: level-2 header sections first, then fenced code blocks,
// then list blocks, and finally a fixed sliding window when no structural
// cue exists. For a fixed input and fixed parameters the output is
// deterministic, and every character of the input is covered by at least
// one chunk.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxSize bounds most chunks, measured in runes.
	DefaultMaxSize = 1500
	// DefaultWindowSize is the width of the fixed-window fallback.
	DefaultWindowSize = 500
	// DefaultWindowOverlap is the number of runes repeated between
	// consecutive fallback windows.
	DefaultWindowOverlap = 50
)

var (
	sectionRe = regexp.MustCompile(`(?m)^## `)
	fenceRe   = regexp.MustCompile("(?s)```.*?```")
)

// Chunker holds the size parameters for hierarchical chunking.
type Chunker struct {
	maxSize       int
	windowSize    int
	windowOverlap int
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithMaxSize sets the maximum chunk size in runes.
func WithMaxSize(n int) Option {
	return func(c *Chunker) { c.maxSize = n }
}

// WithWindow sets the size and overlap of the fixed-window fallback.
func WithWindow(size, overlap int) Option {
	return func(c *Chunker) {
		c.windowSize = size
		c.windowOverlap = overlap
	}
}

// New creates a Chunker with the given options applied over the defaults.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		maxSize:       DefaultMaxSize,
		windowSize:    DefaultWindowSize,
		windowOverlap: DefaultWindowOverlap,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ChunkMarkdown splits a markdown body into ordered chunks. The body is
// partitioned at every line beginning with "## "; content before the first
// such header forms a headerless preamble section. Sections within the
// size limit are emitted whole. Oversized sections are split structurally,
// and the section header line is re-prepended to every sub-chunk so each
// chunk stays self-describing. Empty input yields no chunks.
func (c *Chunker) ChunkMarkdown(text string) []string {
	var chunks []string
	for _, section := range splitSections(text) {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if utf8.RuneCountInString(section) <= c.maxSize {
			chunks = append(chunks, section)
			continue
		}
		header, content := splitHeader(section)
		if header == "" {
			chunks = append(chunks, c.chunkSection(section)...)
			continue
		}
		for _, sub := range c.chunkSection(content) {
			chunks = append(chunks, header+"\n\n"+sub)
		}
	}
	return chunks
}

// splitSections partitions text at the start of every level-2 header line.
func splitSections(text string) []string {
	locs := sectionRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var sections []string
	if locs[0][0] > 0 {
		sections = append(sections, text[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections = append(sections, text[loc[0]:end])
	}
	return sections
}

// splitHeader separates a section's "## " header line from its body.
// Sections without a header line (the preamble) return an empty header.
func splitHeader(section string) (header, content string) {
	if !strings.HasPrefix(section, "## ") {
		return "", section
	}
	line, rest, found := strings.Cut(section, "\n")
	if !found {
		return line, ""
	}
	return line, strings.TrimSpace(rest)
}

// chunkSection splits section content into alternating fenced and
// non-fenced spans and dispatches each span to the appropriate strategy.
func (c *Chunker) chunkSection(text string) []string {
	var chunks []string
	emit := func(span string, fenced bool) {
		span = strings.TrimSpace(span)
		if span == "" {
			return
		}
		switch {
		case fenced:
			chunks = append(chunks, c.chunkCode(span)...)
		case utf8.RuneCountInString(span) <= c.maxSize:
			chunks = append(chunks, span)
		case isListBlock(span):
			chunks = append(chunks, c.chunkList(span)...)
		default:
			chunks = append(chunks, c.chunkWindow(span)...)
		}
	}

	pos := 0
	for _, loc := range fenceRe.FindAllStringIndex(text, -1) {
		emit(text[pos:loc[0]], false)
		emit(text[loc[0]:loc[1]], true)
		pos = loc[1]
	}
	// An unterminated fence is not matched by fenceRe and falls through
	// here as plain text.
	emit(text[pos:], false)
	return chunks
}

// chunkCode splits an oversized fenced block line by line, repeating the
// opening fence line (with its language tag) at the start of every chunk
// and closing every chunk with a fence. A single overlong line is emitted
// as its own chunk rather than split.
func (c *Chunker) chunkCode(text string) []string {
	if utf8.RuneCountInString(text) <= c.maxSize {
		return []string{text}
	}

	lines := strings.Split(text, "\n")
	seed := lines[0] + "\n"
	current := seed
	var chunks []string
	// The final line is the closing fence; each emitted chunk gets its own.
	for _, line := range lines[1 : len(lines)-1] {
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(line) > c.maxSize && current != seed {
			chunks = append(chunks, closeFence(current))
			current = seed
		}
		current += line + "\n"
	}
	if current != seed {
		chunks = append(chunks, closeFence(current))
	}
	return chunks
}

func closeFence(chunk string) string {
	return strings.TrimRight(chunk, " \t\r\n") + "\n```"
}

// chunkList splits an oversized list block at item boundaries. The buffer
// is flushed only before a line that starts a new "- " item would overflow
// it; continuation lines always stay with their item, so an oversized item
// plus its continuations is accepted overflow.
func (c *Chunker) chunkList(text string) []string {
	var chunks []string
	current := ""
	for _, line := range strings.Split(text, "\n") {
		isItem := strings.HasPrefix(strings.TrimSpace(line), "- ")
		if isItem && current != "" &&
			utf8.RuneCountInString(current)+utf8.RuneCountInString(line) > c.maxSize {
			chunks = append(chunks, strings.TrimSpace(current))
			current = ""
		}
		current += line + "\n"
	}
	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}
	return chunks
}

// isListBlock reports whether more than half of the non-blank lines start
// a "- " list item.
func isListBlock(text string) bool {
	var total, items int
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		total++
		if strings.HasPrefix(trimmed, "- ") {
			items++
		}
	}
	return total > 0 && items*2 > total
}

// chunkWindow is the last-resort fallback: fixed windows of windowSize
// runes advancing by windowSize-windowOverlap, so consecutive windows
// share windowOverlap runes of context. The final window may be shorter.
func (c *Chunker) chunkWindow(text string) []string {
	runes := []rune(text)
	step := c.windowSize - c.windowOverlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.windowSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
