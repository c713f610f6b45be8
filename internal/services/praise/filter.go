// Package praise removes pure-praise signals using embedding similarity against
// a praise anchor and a complaint anchor.
package praise

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/interfaces"
	"github.com/ternarybob/painscope/internal/lexicon"
	"github.com/ternarybob/painscope/internal/models"
	"golang.org/x/sync/errgroup"
)

// Reason records which rule decided a classification.
type Reason string

const (
	ReasonLowRating      Reason = "low_rating"
	ReasonEmptyText      Reason = "empty_text"
	ReasonComplaintIdiom Reason = "complaint_idiom"
	ReasonPraiseIdiom    Reason = "praise_idiom"
	ReasonEmbedding      Reason = "embedding"
	ReasonFailOpen       Reason = "fail_open"
)

const (
	// lowRatingCeiling is the highest 1-5 rating that is always treated as dissatisfaction
	lowRatingCeiling = 3

	// idiomConfidence is reported for decisions made by the idiom rules
	idiomConfidence = 0.9

	// fullConfidenceGap is the praise/complaint similarity gap reported as confidence 1.0
	fullConfidenceGap = 0.2

	// maxConcurrentChunks bounds parallel backend calls for oversized batches
	maxConcurrentChunks = 4
)

// Classification is the praise decision for one text.
type Classification struct {
	IsPraise            bool    `json:"is_praise"`
	PraiseSimilarity    float64 `json:"praise_similarity"`
	ComplaintSimilarity float64 `json:"complaint_similarity"`
	Confidence          float64 `json:"confidence"`
	Reason              Reason  `json:"reason"`
}

// Input is one text to classify with its optional 1-5 rating.
type Input struct {
	Text   string
	Rating *int
}

// Filter classifies texts as pure praise or actionable feedback.
type Filter struct {
	service      interfaces.EmbeddingService
	anchors      *AnchorCache
	config       common.PraiseFilterConfig
	maxBatchSize int
	metrics      *Metrics
	logger       arbor.ILogger
}

// Option configures the Filter.
type Option func(*Filter)

// WithMetrics records classifications into m.
func WithMetrics(m *Metrics) Option {
	return func(f *Filter) {
		f.metrics = m
	}
}

// WithMaxBatchSize splits batches larger than size into concurrent chunks.
func WithMaxBatchSize(size int) Option {
	return func(f *Filter) {
		f.maxBatchSize = size
	}
}

// NewFilter creates a praise filter. The anchor cache is owned by the caller
// and may be shared between filters using the same embedding service.
// A floor or margin at or below zero falls back to the default.
func NewFilter(service interfaces.EmbeddingService, anchors *AnchorCache, config common.PraiseFilterConfig, logger arbor.ILogger, opts ...Option) *Filter {
	if logger == nil {
		logger = common.GetLogger()
	}
	defaults := common.NewDefaultConfig().PraiseFilter
	if config.PraiseFloor <= 0 {
		config.PraiseFloor = defaults.PraiseFloor
	}
	if config.MinMargin <= 0 {
		config.MinMargin = defaults.MinMargin
	}
	f := &Filter{
		service: service,
		anchors: anchors,
		config:  config,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Classify decides whether a single text is pure praise.
func (f *Filter) Classify(ctx context.Context, text string, rating *int) Classification {
	return f.ClassifyBatch(ctx, []Input{{Text: text, Rating: rating}})[0]
}

// ClassifyBatch classifies all inputs, embedding every text that needs it in
// one backend round trip. The result has one entry per input, in input order.
func (f *Filter) ClassifyBatch(ctx context.Context, inputs []Input) []Classification {
	results := make([]Classification, len(inputs))
	var pending []int

	for i, input := range inputs {
		if c, decided := classifyLexically(input); decided {
			results[i] = c
			continue
		}
		pending = append(pending, i)
	}

	if len(pending) > 0 {
		f.classifyByEmbedding(ctx, inputs, pending, results)
	}

	for _, c := range results {
		f.metrics.record(c)
	}

	return results
}

// FilterSignals returns the signals that are not pure praise, preserving order.
// The input slice is not modified.
func (f *Filter) FilterSignals(ctx context.Context, signals []models.PainSignal) []models.PainSignal {
	inputs := make([]Input, len(signals))
	for i, signal := range signals {
		inputs[i] = Input{Text: signalText(signal), Rating: signal.Source.Rating}
	}

	classifications := f.ClassifyBatch(ctx, inputs)

	kept := make([]models.PainSignal, 0, len(signals))
	for i, signal := range signals {
		if !classifications[i].IsPraise {
			kept = append(kept, signal)
		}
	}

	f.logger.Debug().
		Int("signals", len(signals)).
		Int("kept", len(kept)).
		Int("removed", len(signals)-len(kept)).
		Msg("Praise filter applied")

	return kept
}

// classifyLexically applies the rules that never need an embedding.
func classifyLexically(input Input) (Classification, bool) {
	if input.Rating != nil && *input.Rating <= lowRatingCeiling {
		return Classification{Confidence: 1, Reason: ReasonLowRating}, true
	}
	if strings.TrimSpace(input.Text) == "" {
		return Classification{Reason: ReasonEmptyText}, true
	}

	text := lexicon.Prepare(input.Text)
	if text.Any(lexicon.ComplaintIdioms) {
		return Classification{Confidence: idiomConfidence, Reason: ReasonComplaintIdiom}, true
	}
	// A praise idiom alongside real pain vocabulary is left to the embedding
	if text.Any(lexicon.PraiseIdioms) && !text.Any(lexicon.High) && !text.Any(lexicon.Medium) {
		return Classification{IsPraise: true, Confidence: idiomConfidence, Reason: ReasonPraiseIdiom}, true
	}
	return Classification{}, false
}

func (f *Filter) classifyByEmbedding(ctx context.Context, inputs []Input, pending []int, results []Classification) {
	failOpen := func(err error, msg string) {
		f.logger.Warn().Err(err).Int("texts", len(pending)).Msg(msg)
		for _, i := range pending {
			results[i] = Classification{Reason: ReasonFailOpen}
		}
	}

	if f.service == nil || f.anchors == nil {
		failOpen(fmt.Errorf("no embedding service configured"), "Praise filter degraded, keeping all texts")
		return
	}

	anchors, err := f.anchors.Get(ctx)
	if err != nil {
		failOpen(err, "Anchor embeddings unavailable, keeping all texts")
		return
	}

	texts := make([]string, len(pending))
	for j, i := range pending {
		texts[j] = inputs[i].Text
	}

	vectors, err := f.embed(ctx, texts)
	if err != nil {
		failOpen(err, "Embedding batch failed, keeping all texts")
		return
	}

	missing := 0
	for j, i := range pending {
		var vector []float32
		if j < len(vectors) {
			vector = vectors[j]
		}
		if len(vector) == 0 || len(vector) != len(anchors.Praise) {
			results[i] = Classification{Reason: ReasonFailOpen}
			missing++
			continue
		}
		results[i] = f.decide(cosineSimilarity(vector, anchors.Praise), cosineSimilarity(vector, anchors.Complaint))
	}

	if missing > 0 {
		f.logger.Warn().Int("missing", missing).Msg("Embedding backend returned no vector for some texts, keeping them")
	}
}

func (f *Filter) decide(praiseSim, complaintSim float64) Classification {
	gap := praiseSim - complaintSim
	return Classification{
		IsPraise:            praiseSim >= f.config.PraiseFloor && gap >= f.config.MinMargin,
		PraiseSimilarity:    praiseSim,
		ComplaintSimilarity: complaintSim,
		Confidence:          math.Min(1, math.Abs(gap)/fullConfidenceGap),
		Reason:              ReasonEmbedding,
	}
}

// embed sends texts to the backend, splitting into concurrent chunks when the
// batch exceeds maxBatchSize.
func (f *Filter) embed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	defer func() {
		if f.metrics != nil {
			f.metrics.EmbeddingLatency.Observe(time.Since(start).Seconds())
		}
	}()

	if f.maxBatchSize <= 0 || len(texts) <= f.maxBatchSize {
		return f.service.EmbedBatch(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChunks)

	for offset := 0; offset < len(texts); offset += f.maxBatchSize {
		end := offset + f.maxBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		chunkStart, chunk := offset, texts[offset:end]

		g.Go(func() error {
			chunkVectors, err := f.service.EmbedBatch(ctx, chunk)
			if err != nil {
				return fmt.Errorf("failed to embed chunk at %d: %w", chunkStart, err)
			}
			copy(vectors[chunkStart:chunkStart+len(chunk)], chunkVectors)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func signalText(signal models.PainSignal) string {
	if signal.Title == "" {
		return signal.Text
	}
	return signal.Title + "\n" + signal.Text
}
