package praise

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/models"
)

const (
	testPraiseAnchor    = "PRAISE ANCHOR"
	testComplaintAnchor = "COMPLAINT ANCHOR"
)

// mockEmbeddingService is a mock implementation of EmbeddingService for testing.
// Anchors map to unit axes; texts mentioning "love" lean towards praise.
type mockEmbeddingService struct {
	embedBatchFunc func(ctx context.Context, texts []string) ([][]float32, error)
	calls          int32
	mu             sync.Mutex
	batches        [][]string
}

func (m *mockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	atomic.AddInt32(&m.calls, 1)
	m.mu.Lock()
	m.batches = append(m.batches, texts)
	m.mu.Unlock()

	if m.embedBatchFunc != nil {
		return m.embedBatchFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = mockVector(text)
	}
	return vectors, nil
}

func (m *mockEmbeddingService) ModelName() string { return "mock" }
func (m *mockEmbeddingService) Dimension() int { return 2 }

func (m *mockEmbeddingService) callCount() int {
	return int(atomic.LoadInt32(&m.calls))
}

func mockVector(text string) []float32 {
	switch {
	case text == testPraiseAnchor:
		return []float32{1, 0}
	case text == testComplaintAnchor:
		return []float32{0, 1}
	case strings.Contains(text, "love"):
		return []float32{0.95, 0.1}
	case strings.Contains(text, "meh"):
		// Equally close to both anchors
		return []float32{0.7, 0.7}
	default:
		return []float32{0.1, 0.95}
	}
}

func testConfig() common.PraiseFilterConfig {
	config := common.NewDefaultConfig().PraiseFilter
	config.PraiseAnchor = testPraiseAnchor
	config.ComplaintAnchor = testComplaintAnchor
	return config
}

func newTestFilter(service *mockEmbeddingService, opts ...Option) *Filter {
	config := testConfig()
	anchors := NewAnchorCache(service, config.PraiseAnchor, config.ComplaintAnchor)
	return NewFilter(service, anchors, config, arbor.NewLogger(), opts...)
}

func intPtr(v int) *int { return &v }

func TestClassify_LowRatingShortCircuits(t *testing.T) {
	for _, rating := range []int{1, 2, 3} {
		service := &mockEmbeddingService{}
		filter := newTestFilter(service)

		c := filter.Classify(context.Background(), "I love this app so much", intPtr(rating))

		assert.False(t, c.IsPraise, "rating %d must never be praise", rating)
		assert.Equal(t, ReasonLowRating, c.Reason)
		assert.Equal(t, 0, service.callCount(), "rating %d must not call the backend", rating)
	}
}

func TestClassify_HighRatingUsesEmbedding(t *testing.T) {
	service := &mockEmbeddingService{}
	filter := newTestFilter(service)

	c := filter.Classify(context.Background(), "I love this app", intPtr(5))

	assert.True(t, c.IsPraise)
	assert.Equal(t, ReasonEmbedding, c.Reason)
	assert.Greater(t, c.PraiseSimilarity, c.ComplaintSimilarity)
	assert.InDelta(t, 1.0, c.Confidence, 1e-9)
}

func TestClassify_Embedding(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantPraise bool
	}{
		{"praise wording", "We love it, ten out of ten", true},
		{"complaint wording", "The export is broken again", false},
		{"similar to both anchors", "meh, it exists", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := newTestFilter(&mockEmbeddingService{})
			c := filter.Classify(context.Background(), tt.text, nil)
			assert.Equal(t, tt.wantPraise, c.IsPraise)
			assert.Equal(t, ReasonEmbedding, c.Reason)
		})
	}
}

func TestClassify_CantIdioms(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantPraise bool
		wantReason Reason
	}{
		{"can't imagine living without", "Can't imagine living without it", true, ReasonPraiseIdiom},
		{"can't recommend enough", "I can't recommend this enough!", true, ReasonPraiseIdiom},
		{"nothing bad to say", "Honestly nothing bad to say", true, ReasonPraiseIdiom},
		{"curly apostrophe", "Can’t live without this", true, ReasonPraiseIdiom},
		{"can't figure out", "I love the idea but can't figure out how to use it", false, ReasonComplaintIdiom},
		{"can't log in", "can't log in since the update", false, ReasonComplaintIdiom},
		{"praise idiom with pain vocabulary", "Can't live without it but the sync is so slow", false, ReasonEmbedding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockEmbeddingService{}
			filter := newTestFilter(service)

			c := filter.Classify(context.Background(), tt.text, nil)

			assert.Equal(t, tt.wantPraise, c.IsPraise)
			assert.Equal(t, tt.wantReason, c.Reason)
			if tt.wantReason != ReasonEmbedding {
				assert.Equal(t, 0, service.callCount(), "idiom rules must not call the backend")
			}
		})
	}
}

func TestClassify_FailOpen(t *testing.T) {
	tests := []struct {
		name  string
		embed func(ctx context.Context, texts []string) ([][]float32, error)
	}{
		{"backend error", func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, assert.AnError
		}},
		{"backend returns nothing", func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, nil
		}},
		{"backend returns empty vectors", func(ctx context.Context, texts []string) ([][]float32, error) {
			return make([][]float32, len(texts)), nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockEmbeddingService{}
			filter := newTestFilter(service)

			// Warm the anchors with a working backend, then break it
			_, err := filter.anchors.Get(context.Background())
			require.NoError(t, err)
			service.embedBatchFunc = tt.embed

			c := filter.Classify(context.Background(), "I love this app", nil)

			assert.False(t, c.IsPraise)
			assert.Equal(t, ReasonFailOpen, c.Reason)
		})
	}
}

func TestClassify_FailOpenWhenAnchorsUnavailable(t *testing.T) {
	service := &mockEmbeddingService{
		embedBatchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, assert.AnError
		},
	}
	filter := newTestFilter(service)

	c := filter.Classify(context.Background(), "I love this app", nil)

	assert.False(t, c.IsPraise)
	assert.Equal(t, ReasonFailOpen, c.Reason)
}

func TestClassify_NoService(t *testing.T) {
	filter := NewFilter(nil, nil, testConfig(), arbor.NewLogger())

	c := filter.Classify(context.Background(), "I love this app", nil)

	assert.False(t, c.IsPraise)
	assert.Equal(t, ReasonFailOpen, c.Reason)
}

func TestClassifyBatch_SingleBackendCall(t *testing.T) {
	service := &mockEmbeddingService{}
	filter := newTestFilter(service)

	// Warm the anchor cache so only the batch call is counted
	_, err := filter.anchors.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, service.callCount())

	inputs := []Input{
		{Text: "I love it"},
		{Text: "It is broken"},
		{Text: "Totally unusable", Rating: intPtr(1)},
		{Text: "love love love"},
	}
	results := filter.ClassifyBatch(context.Background(), inputs)

	require.Len(t, results, 4)
	assert.True(t, results[0].IsPraise)
	assert.False(t, results[1].IsPraise)
	assert.Equal(t, ReasonLowRating, results[2].Reason)
	assert.True(t, results[3].IsPraise)
	assert.Equal(t, 2, service.callCount(), "batch should add exactly one backend call")
	assert.Len(t, service.batches[1], 3, "low-rated input is not embedded")
}

func TestClassifyBatch_ChunksOversizedBatches(t *testing.T) {
	service := &mockEmbeddingService{}
	filter := newTestFilter(service, WithMaxBatchSize(2))

	_, err := filter.anchors.Get(context.Background())
	require.NoError(t, err)

	inputs := []Input{
		{Text: "love one"}, {Text: "broken two"}, {Text: "love three"},
		{Text: "broken four"}, {Text: "love five"},
	}
	results := filter.ClassifyBatch(context.Background(), inputs)

	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, i%2 == 0, r.IsPraise, "input %d classified out of order", i)
	}
	assert.Equal(t, 1+3, service.callCount(), "five texts in chunks of two need three calls")
}

func TestClassifyBatch_Empty(t *testing.T) {
	service := &mockEmbeddingService{}
	filter := newTestFilter(service)

	assert.Empty(t, filter.ClassifyBatch(context.Background(), nil))
	assert.Equal(t, 0, service.callCount())
}

func TestAnchorCache_EmbedsOnce(t *testing.T) {
	service := &mockEmbeddingService{}
	cache := NewAnchorCache(service, testPraiseAnchor, testComplaintAnchor)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			anchors, err := cache.Get(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, []float32{1, 0}, anchors.Praise)
		}()
	}
	wg.Wait()

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, service.callCount())
}

func TestAnchorCache_DoesNotCacheFailures(t *testing.T) {
	service := &mockEmbeddingService{
		embedBatchFunc: func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, assert.AnError
		},
	}
	cache := NewAnchorCache(service, testPraiseAnchor, testComplaintAnchor)

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	service.embedBatchFunc = nil
	anchors, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, anchors.Complaint)
	assert.Equal(t, 2, service.callCount())
}

func TestFilterSignals_PreservesOrderWithoutMutation(t *testing.T) {
	filter := newTestFilter(&mockEmbeddingService{})

	signals := []models.PainSignal{
		{Text: "export is broken", Score: 6},
		{Text: "I love it", Score: 1},
		{Text: "love it", Title: "Rated low", Score: 2, Source: models.SourceMeta{Rating: intPtr(2)}},
		{Text: "sync keeps failing", Score: 5},
	}
	original := append([]models.PainSignal(nil), signals...)

	kept := filter.FilterSignals(context.Background(), signals)

	require.Len(t, kept, 3)
	assert.Equal(t, "export is broken", kept[0].Text)
	assert.Equal(t, "Rated low", kept[1].Title)
	assert.Equal(t, "sync keeps failing", kept[2].Text)
	assert.Equal(t, original, signals, "input slice must not be modified")
}

func TestMetrics_RecordsOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	service := &mockEmbeddingService{}
	filter := newTestFilter(service, WithMetrics(metrics))

	filter.ClassifyBatch(context.Background(), []Input{
		{Text: "I love it"},
		{Text: "It is broken"},
		{Text: "anything", Rating: intPtr(2)},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Classifications.WithLabelValues("praise", string(ReasonEmbedding))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Classifications.WithLabelValues("kept", string(ReasonEmbedding))))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Classifications.WithLabelValues("kept", string(ReasonLowRating))))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.FailOpen))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.EmbeddingLatency))
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestNewFilter_ZeroThresholdsUseDefaults(t *testing.T) {
	service := &mockEmbeddingService{}
	config := common.PraiseFilterConfig{
		PraiseAnchor:    testPraiseAnchor,
		ComplaintAnchor: testComplaintAnchor,
	}
	filter := NewFilter(service, NewAnchorCache(service, config.PraiseAnchor, config.ComplaintAnchor), config, arbor.NewLogger())

	assert.Equal(t, 0.45, filter.config.PraiseFloor)
	assert.Equal(t, 0.10, filter.config.MinMargin)

	// Equally close to both anchors: a zero margin would call this praise
	c := filter.Classify(context.Background(), "meh, it is okay", nil)
	assert.False(t, c.IsPraise)
	assert.Equal(t, ReasonEmbedding, c.Reason)
}
