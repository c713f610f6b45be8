package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// GeminiBackend generates embeddings with the Google Gemini API.
type GeminiBackend struct {
	client    *genai.Client
	model     string
	dimension int
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    arbor.ILogger
}

// GeminiOption configures the GeminiBackend.
type GeminiOption func(*GeminiBackend)

// WithGeminiTimeout sets the per-request timeout.
func WithGeminiTimeout(timeout time.Duration) GeminiOption {
	return func(b *GeminiBackend) {
		b.timeout = timeout
	}
}

// WithGeminiLimiter sets the request rate limiter.
func WithGeminiLimiter(limiter *rate.Limiter) GeminiOption {
	return func(b *GeminiBackend) {
		b.limiter = limiter
	}
}

// WithGeminiLogger sets a logger.
func WithGeminiLogger(logger arbor.ILogger) GeminiOption {
	return func(b *GeminiBackend) {
		b.logger = logger
	}
}

// NewGeminiBackend initializes a genai client for embedding generation.
// A dimension of 0 leaves the model's default output dimensionality.
func NewGeminiBackend(ctx context.Context, apiKey, model string, dimension int, opts ...GeminiOption) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Google API key is required for the gemini embedding provider (set PAINSCOPE_EMBEDDINGS_API_KEY, GEMINI_API_KEY or embeddings.api_key)")
	}
	if model == "" {
		model = "gemini-embedding-001"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	b := &GeminiBackend{
		client:    client,
		model:     model,
		dimension: dimension,
		timeout:   DefaultTimeout,
		limiter:   newLimiter(DefaultRateLimit),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger != nil {
		b.logger.Info().
			Str("embed_model", b.model).
			Int("embed_dimension", b.dimension).
			Dur("timeout", b.timeout).
			Msg("Gemini embedding backend initialized")
	}

	return b, nil
}

// ModelName returns the configured model
func (b *GeminiBackend) ModelName() string {
	return b.model
}

// EmbedBatch embeds all texts with a single EmbedContent call.
func (b *GeminiBackend) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	var embeddingConfig *genai.EmbedContentConfig
	if b.dimension > 0 {
		outputDim := int32(b.dimension)
		embeddingConfig = &genai.EmbedContentConfig{
			OutputDimensionality: &outputDim,
		}
	}

	result, err := b.client.Models.EmbedContent(timeoutCtx, b.model, contents, embeddingConfig)
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		got := 0
		if result != nil {
			got = len(result.Embeddings)
		}
		return nil, fmt.Errorf("unexpected embeddings count: expected %d, got %d", len(texts), got)
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		if embedding != nil {
			vectors[i] = embedding.Values
		}
	}
	return vectors, nil
}
