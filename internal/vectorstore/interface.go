package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks github.com/bennorichters/notes-rag/internal/vectorstore VectorStore

import (
	"context"
	"errors"
)

// ErrCollectionNotFound is returned by Query when the named collection
// does not exist, i.e. indexing has never been run.
var ErrCollectionNotFound = errors.New("collection not found")

// Point is an embedded chunk to store: the vector, the document text that
// was embedded, and the provenance metadata.
type Point struct {
	ID   string
	Vec  []float32
	Text string
	Meta map[string]any
}

// Result is a single nearest-neighbor match.
type Result struct {
	Text  string
	Meta  map[string]any
	Score float32
}

// VectorStore is the contract with the vector search engine.
type VectorStore interface {
	// CreateCollection creates a collection sized for the given vectors.
	CreateCollection(ctx context.Context, name string, vectorSize int) error

	// DeleteCollection removes a collection. Deleting a collection that
	// does not exist is not an error.
	DeleteCollection(ctx context.Context, name string) error

	// CollectionExists reports whether the named collection exists.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Query returns the k nearest points to the query vector, best match
	// first. Querying a missing collection returns ErrCollectionNotFound.
	Query(ctx context.Context, collection string, vector []float32, k int) ([]Result, error)
}
