package interfaces

import (
	"context"
)

// EmbeddingBackend is a provider-specific embedding client
type EmbeddingBackend interface {
	// EmbedBatch returns one vector per input text, in input order
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName identifies the model producing the vectors
	ModelName() string
}

// EmbeddingService generates vector embeddings
type EmbeddingService interface {
	// Embed generates an embedding for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for several texts in one backend round trip
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Get model information
	ModelName() string
	Dimension() int
}
