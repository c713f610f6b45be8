package embeddings

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/interfaces"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the per-request timeout when none is configured.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// DefaultOpenAIBaseURL is used by the openai provider when no base URL is set.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	// DefaultOllamaBaseURL is used by the ollama provider when no base URL is set.
	DefaultOllamaBaseURL = "http://localhost:11434"
)

// NewBackend builds the embedding backend selected by config.Provider.
func NewBackend(ctx context.Context, config *common.EmbeddingsConfig, logger arbor.ILogger) (interfaces.EmbeddingBackend, error) {
	timeout, err := parseTimeout(config.Timeout)
	if err != nil {
		return nil, err
	}

	apiKey, err := common.ResolveAPIKey(config)
	if err != nil {
		return nil, err
	}

	limiter := newLimiter(config.RateLimit)

	switch config.Provider {
	case common.EmbeddingProviderGemini, "":
		return NewGeminiBackend(ctx, apiKey, config.Model, config.Dimension,
			WithGeminiTimeout(timeout),
			WithGeminiLimiter(limiter),
			WithGeminiLogger(logger),
		)
	case common.EmbeddingProviderOpenAI, common.EmbeddingProviderOllama:
		opts := []HTTPOption{
			WithTimeout(timeout),
			WithLimiter(limiter),
			WithLogger(logger),
		}
		if config.BaseURL != "" {
			opts = append(opts, WithBaseURL(config.BaseURL))
		}
		return NewHTTPBackend(config.Provider, apiKey, config.Model, opts...)
	default:
		return nil, fmt.Errorf("embedding provider %q is not supported", config.Provider)
	}
}

func parseTimeout(value string) (time.Duration, error) {
	if value == "" {
		return DefaultTimeout, nil
	}
	timeout, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout duration '%s': %w", value, err)
	}
	return timeout, nil
}

func newLimiter(requestsPerSecond float64) *rate.Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRateLimit
	}
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
