// Package pain scores the pain expressed in a single text.
// Scoring is rule based, pure and safe for concurrent use.
package pain

import (
	"math"
	"strings"

	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/lexicon"
	"github.com/ternarybob/painscope/internal/models"
)

// Base score parameters per tier
const (
	highBase        = 6.0
	highStep        = 1.0
	mediumBase      = 3.5
	mediumStep      = 0.75
	lowBase         = 1.0
	lowStep         = 0.5
	solutionBase    = 1.5
	solutionOnlyCap = 3.0
	solutionBoost   = 1.0
	solutionStep    = 0.5
	mediumWithHigh  = 0.75
	lowWithOther    = 0.25

	// LowTierCap bounds texts whose pain comes only from the low tier
	LowTierCap = 4.0
	MaxScore   = 10.0
)

// Intensity cutoffs on the final score
const (
	HighIntensityThreshold   = 6.0
	MediumIntensityThreshold = 3.0
)

// Result is the scored form of a text before record metadata is attached
type Result struct {
	Score              float64
	Intensity          models.Intensity
	Signals            []string
	SolutionSeeking    bool
	WTP                WTPResult
	HasNegativeContext bool
	Emotion            models.Emotion
	HighHits           int
	MediumHits         int
	LowHits            int
}

// Scorer applies the pain rules with tunable engagement and penalty settings
type Scorer struct {
	config common.ScoringConfig
}

// NewScorer creates a scorer. Zero-valued fields fall back to defaults.
func NewScorer(config common.ScoringConfig) *Scorer {
	defaults := common.NewDefaultConfig().Scoring
	if config.EngagementCap <= 1 {
		config.EngagementCap = defaults.EngagementCap
	}
	if config.NegativeContextPenalty <= 0 || config.NegativeContextPenalty >= 1 {
		config.NegativeContextPenalty = defaults.NegativeContextPenalty
	}
	return &Scorer{config: config}
}

var defaultScorer = NewScorer(common.NewDefaultConfig().Scoring)

// ScoreText scores text with the default settings
func ScoreText(text string, engagement float64) Result {
	return defaultScorer.ScoreText(text, engagement)
}

// ScoreRecord scores a record with the default settings
func ScoreRecord(record models.RawRecord) models.PainSignal {
	return defaultScorer.ScoreRecord(record)
}

// ScoreRecord scores title and body together and attaches the record metadata
func (s *Scorer) ScoreRecord(record models.RawRecord) models.PainSignal {
	combined := record.Text
	if title := strings.TrimSpace(record.Title); title != "" {
		combined = title + "\n" + record.Text
	}

	result := s.ScoreText(combined, record.EngagementScore)

	return models.PainSignal{
		Text:                   record.Text,
		Title:                  record.Title,
		Score:                  result.Score,
		Intensity:              result.Intensity,
		Signals:                result.Signals,
		SolutionSeeking:        result.SolutionSeeking,
		WillingnessToPaySignal: result.WTP.Signal,
		WTPConfidence:          result.WTP.Confidence,
		HasNegativeContext:     result.HasNegativeContext,
		HasWTPExclusion:        result.WTP.Excluded,
		Emotion:                result.Emotion,
		Source: models.SourceMeta{
			SourceID:        record.SourceID,
			SourceLabel:     record.SourceLabel,
			EngagementScore: sanitizeEngagement(record.EngagementScore),
			CreatedAt:       record.CreatedAt,
			Rating:          record.Rating,
		},
	}
}

// ScoreText scores a single text. Negative or NaN engagement adds no boost.
func (s *Scorer) ScoreText(text string, engagement float64) Result {
	prepared := lexicon.Prepare(text)

	high := prepared.Match(lexicon.High)
	medium := prepared.Match(lexicon.Medium)
	low := prepared.Match(lexicon.Low)
	solution := prepared.Match(lexicon.SolutionSeeking)

	result := Result{
		Signals:            orderedUnion(high, medium, low, solution),
		SolutionSeeking:    len(solution) > 0,
		WTP:                detectWTP(prepared),
		HasNegativeContext: detectNegativeContext(prepared),
		Emotion:            classifyEmotion(prepared),
		HighHits:           len(high),
		MediumHits:         len(medium),
		LowHits:            len(low),
	}

	base := baseScore(len(high), len(medium), len(low), len(solution))
	if base == 0 {
		result.Intensity = models.IntensityLow
		return result
	}

	if result.HasNegativeContext {
		base *= s.config.NegativeContextPenalty
	}

	score := base * s.EngagementMultiplier(engagement)
	if len(high) == 0 && len(medium) == 0 {
		score = math.Min(score, LowTierCap)
	}

	result.Score = roundScore(clamp(score, 0, MaxScore))
	result.Intensity = IntensityFor(result.Score)
	return result
}

// baseScore combines tier hit counts. The result is capped at MaxScore before any penalty
// so that adding a higher-tier hit never lowers the final score.
func baseScore(high, medium, low, solution int) float64 {
	var base float64
	switch {
	case high > 0:
		base = highBase + highStep*float64(high-1) + mediumWithHigh*float64(medium) + lowWithOther*float64(low)
	case medium > 0:
		base = mediumBase + mediumStep*float64(medium-1) + lowWithOther*float64(low)
	case low > 0:
		base = math.Min(lowBase+lowStep*float64(low-1), LowTierCap)
	case solution > 0:
		return math.Min(solutionBase+solutionStep*float64(solution-1), solutionOnlyCap)
	default:
		return 0
	}

	if solution > 0 {
		base += solutionBoost + solutionStep*float64(min(solution-1, 2))
	}
	if high == 0 && medium == 0 {
		base = math.Min(base, LowTierCap)
	}
	return math.Min(base, MaxScore)
}

// EngagementMultiplier grows logarithmically with engagement and never exceeds the cap
func (s *Scorer) EngagementMultiplier(engagement float64) float64 {
	e := sanitizeEngagement(engagement)
	growth := math.Min(1, math.Log10(1+e)/3)
	return 1 + (s.config.EngagementCap-1)*growth
}

// IntensityFor maps a final score to its tier
func IntensityFor(score float64) models.Intensity {
	switch {
	case score >= HighIntensityThreshold:
		return models.IntensityHigh
	case score >= MediumIntensityThreshold:
		return models.IntensityMedium
	default:
		return models.IntensityLow
	}
}

func orderedUnion(lists ...[]string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, term := range list {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	return out
}

func sanitizeEngagement(e float64) float64 {
	if math.IsNaN(e) || e < 0 {
		return 0
	}
	if math.IsInf(e, 1) {
		return math.MaxFloat64
	}
	return e
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
