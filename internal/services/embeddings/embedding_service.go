package embeddings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/interfaces"
)

// Service implements EmbeddingService on top of a provider backend
type Service struct {
	backend   interfaces.EmbeddingBackend
	dimension int
	logger    arbor.ILogger
}

// NewService creates a new embedding service.
// A dimension of 0 disables the vector size check.
func NewService(backend interfaces.EmbeddingBackend, dimension int, logger arbor.ILogger) interfaces.EmbeddingService {
	return &Service{
		backend:   backend,
		dimension: dimension,
		logger:    logger,
	}
}

// Embed creates a vector embedding for text
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch creates one vector embedding per text with a single backend call
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("text %d: %w", i, ErrEmptyText)
		}
	}

	start := time.Now()
	vectors, err := s.backend.EmbedBatch(ctx, texts)
	duration := time.Since(start)

	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("backend returned %d embeddings for %d texts", len(vectors), len(texts))
	}

	for i, vector := range vectors {
		if len(vector) == 0 {
			return nil, fmt.Errorf("backend returned empty embedding for text %d", i)
		}
		if s.dimension > 0 && len(vector) != s.dimension {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, s.dimension, len(vector))
		}
	}

	if s.logger != nil {
		s.logger.Debug().
			Str("model", s.backend.ModelName()).
			Int("batch_size", len(texts)).
			Int("embedding_dim", len(vectors[0])).
			Dur("duration", duration).
			Msg("Generated embeddings")
	}

	return vectors, nil
}

// ModelName returns the model name
func (s *Service) ModelName() string {
	return s.backend.ModelName()
}

// Dimension returns the embedding dimension
func (s *Service) Dimension() int {
	return s.dimension
}
