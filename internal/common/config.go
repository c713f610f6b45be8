package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment  string             `toml:"environment"` // "development" or "production"
	Logging      LoggingConfig      `toml:"logging"`
	Embeddings   EmbeddingsConfig   `toml:"embeddings"`
	PraiseFilter PraiseFilterConfig `toml:"praise_filter"`
	Scoring      ScoringConfig      `toml:"scoring"`
	Aggregation  AggregationConfig  `toml:"aggregation"`
	Calibration  CalibrationConfig  `toml:"calibration"`
	Resonance    ResonanceConfig    `toml:"resonance"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=trace debug info warn error"` // "debug", "info", "warn", "error"
	Format     string   `toml:"format" validate:"omitempty,oneof=text json"`        // File output: "json" or "text" (logfmt); empty picks json in production
	Output     []string `toml:"output" validate:"dive,oneof=stdout console file"`   // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                        // Time format for logs (default: "15:04:05")
}

// EmbeddingProvider names an embedding backend
type EmbeddingProvider string

const (
	// EmbeddingProviderGemini uses the Google Gemini embedding API
	EmbeddingProviderGemini EmbeddingProvider = "gemini"
	// EmbeddingProviderOpenAI uses any OpenAI-compatible /embeddings endpoint
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"
	// EmbeddingProviderOllama uses a local Ollama server
	EmbeddingProviderOllama EmbeddingProvider = "ollama"
)

// EmbeddingsConfig configures the embedding backend used by the praise filter
type EmbeddingsConfig struct {
	Provider     EmbeddingProvider `toml:"provider" validate:"oneof=gemini openai ollama"`
	APIKey       string            `toml:"api_key"`                        // Not required for ollama
	Model        string            `toml:"model" validate:"required"`      // e.g. "gemini-embedding-001"
	BaseURL      string            `toml:"base_url"`                       // Only used by openai/ollama providers
	Dimension    int               `toml:"dimension" validate:"gte=0"`     // 0 = accept whatever the model returns
	Timeout      string            `toml:"timeout"`                        // Per-request timeout as duration string (default: "30s")
	RateLimit    float64           `toml:"rate_limit" validate:"gt=0"`     // Requests per second
	MaxBatchSize int               `toml:"max_batch_size" validate:"gt=0"` // Texts per backend call; larger batches are split
}

// PraiseFilterConfig holds the praise/complaint anchor thresholds
type PraiseFilterConfig struct {
	Enabled         bool    `toml:"enabled"`
	PraiseFloor     float64 `toml:"praise_floor" validate:"gt=0,lte=1"` // Minimum similarity to the praise anchor
	MinMargin       float64 `toml:"min_margin" validate:"gt=0,lte=1"`   // Praise must beat complaint similarity by this much
	PraiseAnchor    string  `toml:"praise_anchor" validate:"required"`
	ComplaintAnchor string  `toml:"complaint_anchor" validate:"required"`
}

// ScoringConfig tunes the per-text pain scorer
type ScoringConfig struct {
	EngagementCap          float64 `toml:"engagement_cap" validate:"gte=1,lte=1.3"`       // Maximum engagement multiplier
	NegativeContextPenalty float64 `toml:"negative_context_penalty" validate:"gt=0,lt=1"` // Score multiplier for hypothetical/third-party/resolved pain
	MinSignalScore         float64 `toml:"min_signal_score" validate:"gte=0,lte=10"`      // Records at or below this score are treated as no-signal
}

// AggregationConfig holds the data-confidence step function and list sizes
type AggregationConfig struct {
	LowConfidenceSignals  int     `toml:"low_confidence_signals" validate:"gt=0"`
	HighConfidenceSignals int     `toml:"high_confidence_signals" validate:"gtfield=LowConfidenceSignals"`
	GoodMixRatio          float64 `toml:"good_mix_ratio" validate:"gte=0,lte=1"` // Share of high+medium signals needed for the upper tiers
	TopSources            int     `toml:"top_sources" validate:"gt=0"`
	StrongestSignals      int     `toml:"strongest_signals" validate:"gt=0"`
	WTPQuotes             int     `toml:"wtp_quotes" validate:"gt=0"`
}

// CalibrationConfig holds the thresholds for the overall pain score adjustments
type CalibrationConfig struct {
	WTPRatioThreshold float64 `toml:"wtp_ratio_threshold" validate:"gte=0,lte=1"`
	LowDominanceRatio float64 `toml:"low_dominance_ratio" validate:"gte=0,lte=1"`
	HighRarityRatio   float64 `toml:"high_rarity_ratio" validate:"gte=0,lte=1"`
}

// ResonanceConfig holds the theme resonance ratio cutoffs
type ResonanceConfig struct {
	HighRatio float64 `toml:"high_ratio" validate:"gtfield=LowRatio"`
	LowRatio  float64 `toml:"low_ratio" validate:"gt=0"`
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Embeddings: EmbeddingsConfig{
			Provider:     EmbeddingProviderGemini,
			Model:        "gemini-embedding-001",
			Dimension:    768,
			Timeout:      "30s",
			RateLimit:    5,
			MaxBatchSize: 100, // Gemini batch embed limit
		},
		PraiseFilter: PraiseFilterConfig{
			Enabled:         true,
			PraiseFloor:     0.45,
			MinMargin:       0.10,
			PraiseAnchor:    "I love this, it's amazing, highly recommend, works perfectly, best app ever",
			ComplaintAnchor: "This is broken, frustrating, doesn't work, waste of time, needs to be fixed",
		},
		Scoring: ScoringConfig{
			EngagementCap:          1.2,
			NegativeContextPenalty: 0.5,
			MinSignalScore:         0,
		},
		Aggregation: AggregationConfig{
			LowConfidenceSignals:  15,
			HighConfidenceSignals: 50,
			GoodMixRatio:          0.3,
			TopSources:            5,
			StrongestSignals:      5,
			WTPQuotes:             5,
		},
		Calibration: CalibrationConfig{
			WTPRatioThreshold: 0.05,
			LowDominanceRatio: 0.6,
			HighRarityRatio:   0.1,
		},
		Resonance: ResonanceConfig{
			HighRatio: 1.5,
			LowRatio:  0.7,
		},
	}
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> env.
// Later files override earlier files. CLI overrides are applied by the caller afterwards.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		// Unmarshal into config (merges with existing values, later values override)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the configuration using go-playground/validator tags
func (c *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PAINSCOPE_ENV"); env != "" {
		config.Environment = env
	}

	// Logging configuration
	if level := os.Getenv("PAINSCOPE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("PAINSCOPE_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("PAINSCOPE_LOG_OUTPUT"); output != "" {
		outputs := splitList(output)
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Embeddings configuration
	if provider := os.Getenv("PAINSCOPE_EMBEDDINGS_PROVIDER"); provider != "" {
		config.Embeddings.Provider = EmbeddingProvider(strings.ToLower(provider))
	}
	if apiKey := os.Getenv("PAINSCOPE_EMBEDDINGS_API_KEY"); apiKey != "" {
		config.Embeddings.APIKey = apiKey
	}
	if model := os.Getenv("PAINSCOPE_EMBEDDINGS_MODEL"); model != "" {
		config.Embeddings.Model = model
	}
	if baseURL := os.Getenv("PAINSCOPE_EMBEDDINGS_BASE_URL"); baseURL != "" {
		config.Embeddings.BaseURL = baseURL
	}
	if dimension := os.Getenv("PAINSCOPE_EMBEDDINGS_DIMENSION"); dimension != "" {
		if d, err := strconv.Atoi(dimension); err == nil {
			config.Embeddings.Dimension = d
		}
	}
	if timeout := os.Getenv("PAINSCOPE_EMBEDDINGS_TIMEOUT"); timeout != "" {
		config.Embeddings.Timeout = timeout
	}

	// Praise filter configuration
	if enabled := os.Getenv("PAINSCOPE_PRAISE_FILTER_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.PraiseFilter.Enabled = e
		}
	}
	if floor := os.Getenv("PAINSCOPE_PRAISE_FILTER_FLOOR"); floor != "" {
		if f, err := strconv.ParseFloat(floor, 64); err == nil {
			config.PraiseFilter.PraiseFloor = f
		}
	}
	if margin := os.Getenv("PAINSCOPE_PRAISE_FILTER_MARGIN"); margin != "" {
		if m, err := strconv.ParseFloat(margin, 64); err == nil {
			config.PraiseFilter.MinMargin = m
		}
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, disablePraiseFilter bool, logLevel string) {
	// Command-line flags have highest priority
	if disablePraiseFilter {
		config.PraiseFilter.Enabled = false
	}
	if logLevel != "" {
		config.Logging.Level = logLevel
	}
}

// ResolveAPIKey resolves the embedding API key.
// Resolution order: PAINSCOPE_EMBEDDINGS_API_KEY (already applied) -> config -> provider standard env var.
func ResolveAPIKey(config *EmbeddingsConfig) (string, error) {
	if config.APIKey != "" {
		return config.APIKey, nil
	}

	switch config.Provider {
	case EmbeddingProviderGemini:
		for _, name := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
			if v := os.Getenv(name); v != "" {
				return v, nil
			}
		}
	case EmbeddingProviderOpenAI:
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			return v, nil
		}
	case EmbeddingProviderOllama:
		// Ollama runs locally without a key
		return "", nil
	}

	return "", fmt.Errorf("API key for embedding provider '%s' not found in environment or config", config.Provider)
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// LogFormat returns the configured log format, defaulting to json in production and text elsewhere
func (c *Config) LogFormat() string {
	if c.Logging.Format != "" {
		return c.Logging.Format
	}
	if c.IsProduction() {
		return "json"
	}
	return "text"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
