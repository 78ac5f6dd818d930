package rag

import "errors"

// ErrNotIndexed means the vector collection does not exist yet.
var ErrNotIndexed = errors.New("collection not found, has indexing been run?")

// ErrSourceNotFound means a retrieved source path does not resolve to a
// regular file under the notes root. Fatal for the single answer being
// produced, not for the process.
var ErrSourceNotFound = errors.New("source note not found")
