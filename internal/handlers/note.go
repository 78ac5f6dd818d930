package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/bennorichters/notes-rag/internal/contextutil"
	"github.com/bennorichters/notes-rag/internal/notes"
)

// NoteHandler serves markdown notes as rendered HTML pages.
type NoteHandler struct {
	root     string
	parser   goldmark.Markdown
	template *template.Template
}

type notePageData struct {
	Title   string
	RelPath string
	Content template.HTML
}

// NewNoteHandler creates a handler serving notes under root as HTML.
func NewNoteHandler(root string) *NoteHandler {
	tmpl := template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 760px;
      line-height: 1.6;
      color: #1f2933;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e4e7eb;
      padding-bottom: 1rem;
    }
    h1 { margin-top: 0; }
    pre {
      background: #f5f7fa;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 6px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, Menlo, monospace;
      background: #f5f7fa;
      padding: 2px 4px;
      border-radius: 4px;
    }
    pre code { padding: 0; }
    blockquote {
      border-left: 3px solid #cbd2d9;
      padding-left: 1rem;
      margin-left: 0;
      color: #52606d;
    }
    .meta { color: #7b8794; font-size: 0.9rem; }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">{{.RelPath}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &NoteHandler{
		root: root,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested note as HTML.
func (h *NoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	decoded, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid path encoding")
		return
	}
	rel, err := cleanRelPath(decoded)
	if err != nil {
		logger.WarnContext(ctx, "invalid note path requested", "path", decoded, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid path")
		return
	}

	absPath, err := buildAbsPath(h.root, rel)
	if err != nil {
		logger.WarnContext(ctx, "note path escapes root", "path", rel, "error", err)
		writeError(w, http.StatusBadRequest, "Invalid path")
		return
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "Note not found")
			return
		}
		logger.ErrorContext(ctx, "failed to read note", "path", absPath, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read note")
		return
	}

	content := notes.RemoveTagLine(string(data))
	var buf bytes.Buffer
	if err := h.parser.Convert([]byte(content), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "path", absPath, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render note")
		return
	}

	title := notes.ExtractTitle(string(data))
	if title == "" {
		title = strings.TrimSuffix(path.Base(rel), ".md")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, notePageData{
		Title:   title,
		RelPath: rel,
		Content: template.HTML(buf.String()),
	}); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "path", absPath, "error", err)
	}
}

func cleanRelPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("empty path")
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+trimmed), "/")
	if cleaned == "" || cleaned == "." {
		return "", errors.New("invalid path")
	}
	for _, segment := range strings.Split(cleaned, "/") {
		if segment == ".." {
			return "", errors.New("path traversal detected")
		}
	}
	return cleaned, nil
}

func buildAbsPath(root, rel string) (string, error) {
	root = filepath.Clean(root)
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if abs != root && !strings.HasPrefix(abs, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes notes root", rel)
	}
	return abs, nil
}
