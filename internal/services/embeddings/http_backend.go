package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"golang.org/x/time/rate"
)

// HTTPBackend talks to OpenAI-compatible and Ollama embedding endpoints.
type HTTPBackend struct {
	provider   common.EmbeddingProvider
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// HTTPOption configures the HTTPBackend.
type HTTPOption func(*HTTPBackend)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) HTTPOption {
	return func(b *HTTPBackend) {
		b.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) HTTPOption {
	return func(b *HTTPBackend) {
		b.httpClient = httpClient
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(b *HTTPBackend) {
		b.httpClient = &http.Client{Timeout: timeout}
	}
}

// WithLimiter sets the request rate limiter.
func WithLimiter(limiter *rate.Limiter) HTTPOption {
	return func(b *HTTPBackend) {
		b.limiter = limiter
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) HTTPOption {
	return func(b *HTTPBackend) {
		b.logger = logger
	}
}

// NewHTTPBackend creates an embedding backend for the openai or ollama provider.
func NewHTTPBackend(provider common.EmbeddingProvider, apiKey, model string, opts ...HTTPOption) (*HTTPBackend, error) {
	if model == "" {
		return nil, fmt.Errorf("embedding model is required")
	}

	b := &HTTPBackend{
		provider:   provider,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    newLimiter(DefaultRateLimit),
	}

	switch provider {
	case common.EmbeddingProviderOpenAI:
		b.baseURL = DefaultOpenAIBaseURL
	case common.EmbeddingProviderOllama:
		b.baseURL = DefaultOllamaBaseURL
	default:
		return nil, fmt.Errorf("embedding provider %q is not supported by the HTTP backend", provider)
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// ModelName returns the configured model
func (b *HTTPBackend) ModelName() string {
	return b.model
}

type openAIEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type ollamaEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbeddingResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// EmbedBatch embeds all texts in a single request.
func (b *HTTPBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if b.provider == common.EmbeddingProviderOllama {
		var response ollamaEmbeddingResponse
		if err := b.post(ctx, "/api/embed", ollamaEmbeddingRequest{Model: b.model, Input: texts}, &response); err != nil {
			return nil, err
		}
		if len(response.Embeddings) != len(texts) {
			return nil, fmt.Errorf("unexpected embeddings count: expected %d, got %d", len(texts), len(response.Embeddings))
		}
		return response.Embeddings, nil
	}

	var response openAIEmbeddingResponse
	if err := b.post(ctx, "/embeddings", openAIEmbeddingRequest{Model: b.model, Input: texts}, &response); err != nil {
		return nil, err
	}
	if len(response.Data) != len(texts) {
		return nil, fmt.Errorf("unexpected embeddings count: expected %d, got %d", len(texts), len(response.Data))
	}

	// Entries carry their input index; order by it rather than trusting response order
	vectors := make([][]float32, len(texts))
	for i, entry := range response.Data {
		index := entry.Index
		if index < 0 || index >= len(texts) || vectors[index] != nil {
			index = i
		}
		vectors[index] = entry.Embedding
	}
	return vectors, nil
}

func (b *HTTPBackend) post(ctx context.Context, path string, payload interface{}, result interface{}) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := b.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	if b.logger != nil {
		b.logger.Debug().
			Str("provider", string(b.provider)).
			Str("url", endpoint).
			Msg("Embedding API request")
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
