package embeddings

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyText is returned when an empty or whitespace-only text is submitted
	ErrEmptyText = errors.New("text cannot be empty for embedding generation")

	// ErrDimensionMismatch is returned when a backend returns vectors of an unexpected size
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// APIError represents a non-2xx response from an embedding endpoint.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("embedding API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}
