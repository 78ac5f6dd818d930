// Package notes loads markdown notes from disk and extracts their
// title and tag metadata.
package notes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Note is a markdown file read from the notes root. Immutable after load.
type Note struct {
	Path    string // forward-slash path as walked, including the root prefix
	Content string
}

// tagLineRe matches a trailing tag line of the form ":tag:tag:". Tokens
// are Unicode letters, digits, underscore, or hyphen.
var tagLineRe = regexp.MustCompile(`^(:[\p{L}\p{N}_-]+)+:$`)

// Load recursively scans root for .md files and reads each one whole.
// Any path segment starting with "." skips that file or subtree. The
// returned order is the filesystem walk order, stable within a run.
func Load(root string) ([]Note, error) {
	var loaded []Note
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		hidden := strings.HasPrefix(d.Name(), ".") && path != root
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || filepath.Ext(path) != ".md" {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read note %s: %w", path, err)
		}
		loaded = append(loaded, Note{
			Path:    filepath.ToSlash(path),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan notes root %s: %w", root, err)
	}
	return loaded, nil
}

// ExtractTitle returns the first line of text with leading '#' characters
// and spaces stripped. Empty text yields an empty title.
func ExtractTitle(text string) string {
	if text == "" {
		return ""
	}
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimLeft(line, "# ")
}

// ExtractTags returns the colon-delimited tokens of the final non-blank
// line when it fully matches the ":tag:tag:" grammar, in left-to-right
// order. Any other text yields no tags.
func ExtractTags(text string) []string {
	last := lastLine(text)
	if !tagLineRe.MatchString(last) {
		return nil
	}
	var tags []string
	for _, token := range strings.Split(last, ":") {
		if token != "" {
			tags = append(tags, token)
		}
	}
	return tags
}

// RemoveTagLine returns text without its trailing tag line. Text whose
// final non-blank line is not a tag line is returned unchanged.
func RemoveTagLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if !tagLineRe.MatchString(strings.TrimSpace(lines[len(lines)-1])) {
		return text
	}
	return strings.Join(lines[:len(lines)-1], "\n")
}

func lastLine(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
