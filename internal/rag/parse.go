package rag

import (
	"regexp"
	"strconv"
	"strings"
)

var firstIntRe = regexp.MustCompile(`-?\d+`)

// parseIndex extracts a candidate index from an LLM reply. The model is
// asked for a bare integer but may wrap it in quotes, prose, or return
// garbage; any reply that does not yield an in-range integer falls back
// to the first candidate.
func parseIndex(reply string, n int) int {
	cleaned := strings.TrimSpace(reply)
	cleaned = trimQuotes(cleaned)

	match := firstIntRe.FindString(cleaned)
	if match == "" {
		return 0
	}
	idx, err := strconv.Atoi(match)
	if err != nil || idx < 0 || idx >= n {
		return 0
	}
	return idx
}

// sanitizeSource normalizes a source value coming back from the store or
// the model before it is joined to the notes root: one layer of
// surrounding quotes and one leading path separator are stripped.
func sanitizeSource(source string) string {
	s := strings.TrimSpace(source)
	s = trimQuotes(s)
	s = strings.TrimPrefix(s, "/")
	return s
}

func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// splitTags reconstructs a tag list from the stored payload value. Tags
// are stored as a comma-joined string, but older payloads may carry a
// list; anything else degrades to no tags.
func splitTags(value any) []string {
	switch v := value.(type) {
	case string:
		return cleanTags(strings.Split(v, ","))
	case []string:
		return cleanTags(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
		return cleanTags(parts)
	default:
		return []string{}
	}
}

func cleanTags(parts []string) []string {
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
