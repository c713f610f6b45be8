// Package aggregate turns a set of scored pain signals into a PainSummary.
package aggregate

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/models"
	"github.com/ternarybob/painscope/internal/services/pain"
)

const (
	day = 24 * time.Hour

	// maxExcerptRunes bounds strongest-signal and WTP quote excerpts
	maxExcerptRunes = 280

	// minimumSignals is the count below which data confidence is always very_low
	minimumSignals = 5

	unknownSource = "unknown"
)

// Age band weights for the recency score, newest first
var recencyWeights = [4]float64{1.0, 0.6, 0.3, 0.1}

// Summarizer aggregates signals using the configured list sizes and confidence bounds.
type Summarizer struct {
	config common.AggregationConfig
}

// NewSummarizer creates a Summarizer. Zero or inconsistent values fall back to defaults.
func NewSummarizer(config common.AggregationConfig) *Summarizer {
	defaults := common.NewDefaultConfig().Aggregation
	if config.LowConfidenceSignals <= 0 || config.HighConfidenceSignals <= config.LowConfidenceSignals {
		config.LowConfidenceSignals = defaults.LowConfidenceSignals
		config.HighConfidenceSignals = defaults.HighConfidenceSignals
	}
	if config.GoodMixRatio <= 0 || config.GoodMixRatio > 1 {
		config.GoodMixRatio = defaults.GoodMixRatio
	}
	if config.TopSources <= 0 {
		config.TopSources = defaults.TopSources
	}
	if config.StrongestSignals <= 0 {
		config.StrongestSignals = defaults.StrongestSignals
	}
	if config.WTPQuotes <= 0 {
		config.WTPQuotes = defaults.WTPQuotes
	}
	return &Summarizer{config: config}
}

var defaultSummarizer = NewSummarizer(common.AggregationConfig{})

// Summarize aggregates signals with the default configuration as of now.
func Summarize(signals []models.PainSignal) models.PainSummary {
	return defaultSummarizer.SummarizeAt(signals, time.Now())
}

// Summarize aggregates signals as of now.
func (s *Summarizer) Summarize(signals []models.PainSignal) models.PainSummary {
	return s.SummarizeAt(signals, time.Now())
}

// SummarizeAt aggregates signals, measuring record ages against now.
// An empty input yields a zero summary with very_low confidence.
func (s *Summarizer) SummarizeAt(signals []models.PainSignal, now time.Time) models.PainSummary {
	summary := models.PainSummary{
		TotalSignals:      len(signals),
		TopSources:        []models.SourceCount{},
		DataConfidence:    models.ConfidenceVeryLow,
		StrongestSignals:  []string{},
		WTPQuotes:         []models.WTPQuote{},
		EmotionsBreakdown: make(map[models.Emotion]int, len(models.AllEmotions)),
	}
	for _, emotion := range models.AllEmotions {
		summary.EmotionsBreakdown[emotion] = 0
	}

	if len(signals) == 0 {
		return summary
	}

	total := 0.0
	for _, signal := range signals {
		total += safeScore(signal.Score)

		switch intensityOf(signal) {
		case models.IntensityHigh:
			summary.HighIntensityCount++
		case models.IntensityMedium:
			summary.MediumIntensityCount++
		default:
			summary.LowIntensityCount++
		}

		if signal.SolutionSeeking {
			summary.SolutionSeekingCount++
		}
		if signal.WillingnessToPaySignal && !signal.HasWTPExclusion {
			summary.WillingnessToPayCount++
		}

		emotion := signal.Emotion
		if _, known := summary.EmotionsBreakdown[emotion]; !known {
			emotion = models.EmotionNeutral
		}
		summary.EmotionsBreakdown[emotion]++
	}
	summary.AverageScore = total / float64(len(signals))

	summary.TopSources, summary.SourceCount = rankSources(signals, s.config.TopSources)
	summary.DataConfidence = s.dataConfidence(summary)
	summary.StrongestSignals = strongestSignals(signals, s.config.StrongestSignals)
	summary.WTPQuotes = wtpQuotes(signals, s.config.WTPQuotes)
	summary.TemporalDistribution, summary.RecencyScore, summary.DateRange = temporal(signals, now)

	return summary
}

// dataConfidence is a step function of signal volume, gated by the share of
// high and medium intensity signals at the upper tiers.
func (s *Summarizer) dataConfidence(summary models.PainSummary) models.ConfidenceTier {
	n := summary.TotalSignals
	goodMix := float64(summary.HighIntensityCount+summary.MediumIntensityCount)/float64(max(n, 1)) >= s.config.GoodMixRatio

	switch {
	case n < minimumSignals:
		return models.ConfidenceVeryLow
	case n < s.config.LowConfidenceSignals:
		return models.ConfidenceLow
	case n < s.config.HighConfidenceSignals:
		if goodMix {
			return models.ConfidenceMedium
		}
		return models.ConfidenceLow
	default:
		if goodMix {
			return models.ConfidenceHigh
		}
		return models.ConfidenceMedium
	}
}

// rankSources counts signals per source label, sorted by count with ties in
// first-seen order. It also returns the number of distinct sources.
func rankSources(signals []models.PainSignal, limit int) ([]models.SourceCount, int) {
	index := make(map[string]int)
	var ranked []models.SourceCount

	for _, signal := range signals {
		name := strings.TrimSpace(signal.Source.SourceLabel)
		if name == "" {
			name = unknownSource
		}
		if i, ok := index[name]; ok {
			ranked[i].Count++
			continue
		}
		index[name] = len(ranked)
		ranked = append(ranked, models.SourceCount{Name: name, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	distinct := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, distinct
}

func strongestSignals(signals []models.PainSignal, limit int) []string {
	order := make([]int, 0, len(signals))
	for i, signal := range signals {
		if safeScore(signal.Score) > 0 && strings.TrimSpace(signal.Text) != "" {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return safeScore(signals[order[a]].Score) > safeScore(signals[order[b]].Score)
	})

	out := make([]string, 0, min(limit, len(order)))
	for _, i := range order {
		if len(out) == limit {
			break
		}
		out = append(out, excerpt(signals[i].Text))
	}
	return out
}

// wtpQuotes prefers the most confident willingness-to-pay evidence.
func wtpQuotes(signals []models.PainSignal, limit int) []models.WTPQuote {
	var candidates []models.PainSignal
	for _, signal := range signals {
		if signal.WillingnessToPaySignal && !signal.HasWTPExclusion {
			candidates = append(candidates, signal)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].WTPConfidence.Rank() > candidates[j].WTPConfidence.Rank()
	})

	quotes := make([]models.WTPQuote, 0, min(limit, len(candidates)))
	for _, signal := range candidates {
		if len(quotes) == limit {
			break
		}
		source := signal.Source.SourceLabel
		if source == "" {
			source = unknownSource
		}
		quotes = append(quotes, models.WTPQuote{Text: excerpt(signal.Text), Source: source})
	}
	return quotes
}

// temporal buckets dated signals into exclusive age bands. Undated signals
// (CreatedAt == 0) are skipped; future timestamps count as the newest band.
func temporal(signals []models.PainSignal, now time.Time) (models.TemporalDistribution, float64, *models.DateRange) {
	var dist models.TemporalDistribution
	var dateRange *models.DateRange
	dated := 0

	for _, signal := range signals {
		if signal.Source.CreatedAt <= 0 {
			continue
		}
		created := time.Unix(signal.Source.CreatedAt, 0).UTC()
		dated++

		age := now.Sub(created)
		switch {
		case age <= 30*day:
			dist.Last30Days++
		case age <= 90*day:
			dist.Last90Days++
		case age <= 180*day:
			dist.Last180Days++
		default:
			dist.Older++
		}

		if dateRange == nil {
			dateRange = &models.DateRange{Oldest: created, Newest: created}
			continue
		}
		if created.Before(dateRange.Oldest) {
			dateRange.Oldest = created
		}
		if created.After(dateRange.Newest) {
			dateRange.Newest = created
		}
	}

	if dated == 0 {
		return dist, 0, nil
	}

	weighted := recencyWeights[0]*float64(dist.Last30Days) +
		recencyWeights[1]*float64(dist.Last90Days) +
		recencyWeights[2]*float64(dist.Last180Days) +
		recencyWeights[3]*float64(dist.Older)

	return dist, weighted / float64(dated), dateRange
}

func intensityOf(signal models.PainSignal) models.Intensity {
	switch signal.Intensity {
	case models.IntensityHigh, models.IntensityMedium, models.IntensityLow:
		return signal.Intensity
	}
	return pain.IntensityFor(safeScore(signal.Score))
}

func safeScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > pain.MaxScore {
		return pain.MaxScore
	}
	return score
}

func excerpt(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxExcerptRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxExcerptRunes])) + "…"
}
