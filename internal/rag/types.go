package rag

import "context"

// Item is a retrieved chunk with its provenance metadata.
type Item struct {
	// Chunk is the stored chunk text, including any trailing tag suffix.
	Chunk string `json:"chunk"`
	// Source is the slash-prefixed root-relative path of the note.
	Source string `json:"source"`
	// Tags are the note's tags, reconstructed from the stored payload.
	Tags []string `json:"tags"`
}

// Answer is the result of a full question/answer round trip.
type Answer struct {
	// Text is the generated answer from the LLM.
	Text string `json:"answer"`
	// Source is the note the answer was generated from, empty when no
	// note was consulted.
	Source string `json:"source,omitempty"`
}

// Embedder turns texts into vectors.
// This interface is defined from the engine's perspective (consumer-first).
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer sends a prompt to the LLM and returns the reply.
type Completer interface {
	Chat(ctx context.Context, message string) (string, error)
}
