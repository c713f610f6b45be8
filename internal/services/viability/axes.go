package viability

import (
	"fmt"
	"math"

	"github.com/ternarybob/painscope/internal/models"
)

// Dual-axis factor caps. Each axis sums three factors to a 0-10 score.
const (
	directRatioMax = 4.0
	volumeMax      = 3.0
	diversityMax   = 3.0

	marketSizeMax = 4.0
	timingMax     = 3.0
	communityMax  = 3.0

	// Signal and source counts at which the volume and diversity factors saturate
	volumeSaturation    = 50
	diversitySaturation = 5

	axisHighThreshold    = 7.0
	axisPartialThreshold = 4.0
)

// Axis levels
const (
	HypothesisHigh    = "high"
	HypothesisPartial = "partial"
	HypothesisLow     = "low"

	MarketStrong   = "strong"
	MarketModerate = "moderate"
	MarketWeak     = "weak"
)

// CalculateHypothesisConfidence scores whether the evidence speaks to the
// specific hypothesis: the share of direct pain signals, signal volume and
// source diversity. It returns nil when the Pain input carries no evidence.
func CalculateHypothesisConfidence(in Inputs) *models.AxisScore {
	if in.Pain == nil || in.Pain.Evidence == nil {
		return nil
	}
	evidence := in.Pain.Evidence

	directRatio := 0.0
	if evidence.TotalSignals > 0 {
		directRatio = math.Min(1, float64(max(evidence.DirectSignals, 0))/float64(evidence.TotalSignals))
	}
	volume := saturate(evidence.TotalSignals, volumeSaturation)
	diversity := saturate(evidence.SourceCount, diversitySaturation)

	factors := []models.AxisFactor{
		{
			Name:        "direct_signal_ratio",
			Value:       round1(directRatio * directRatioMax),
			Max:         directRatioMax,
			Description: fmt.Sprintf("%d of %d signals express medium or high pain", evidence.DirectSignals, evidence.TotalSignals),
		},
		{
			Name:        "signal_volume",
			Value:       round1(volume * volumeMax),
			Max:         volumeMax,
			Description: fmt.Sprintf("%d signals collected (saturates at %d)", evidence.TotalSignals, volumeSaturation),
		},
		{
			Name:        "source_diversity",
			Value:       round1(diversity * diversityMax),
			Max:         diversityMax,
			Description: fmt.Sprintf("%d distinct sources (saturates at %d)", evidence.SourceCount, diversitySaturation),
		},
	}

	score := directRatio*directRatioMax + volume*volumeMax + diversity*diversityMax
	level := HypothesisLow
	switch {
	case score >= axisHighThreshold:
		level = HypothesisHigh
	case score >= axisPartialThreshold:
		level = HypothesisPartial
	}

	return &models.AxisScore{Score: round1(score), Level: level, Factors: factors}
}

// CalculateMarketOpportunity scores whether a viable market exists at all:
// market size, timing and community activity. Community activity is the Pain
// signal volume weighted by recency. It returns nil when none of the three is known.
func CalculateMarketOpportunity(in Inputs) *models.AxisScore {
	var evidence *models.SignalEvidence
	if in.Pain != nil {
		evidence = in.Pain.Evidence
	}
	if in.Market == nil && in.Timing == nil && evidence == nil {
		return nil
	}

	size := 0.0
	sizeDesc := "Market analysis has not run"
	if in.Market != nil {
		size = clampScore(in.Market.Score) / maxScore
		sizeDesc = fmt.Sprintf("Market dimension scored %.1f", round1(clampScore(in.Market.Score)))
	}

	timing := 0.0
	timingDesc := "Timing analysis has not run"
	if in.Timing != nil {
		timing = clampScore(in.Timing.Score) / maxScore
		timingDesc = fmt.Sprintf("Timing dimension scored %.1f", round1(clampScore(in.Timing.Score)))
	}

	community := 0.0
	communityDesc := "No signal evidence available"
	if evidence != nil {
		recency := evidence.RecencyScore
		if math.IsNaN(recency) || recency < 0 {
			recency = 0
		}
		recency = math.Min(recency, 1)
		// Undated pools count at half weight rather than zero
		community = saturate(evidence.TotalSignals, volumeSaturation) * (0.5 + 0.5*recency)
		communityDesc = fmt.Sprintf("%d signals with recency %.2f", evidence.TotalSignals, recency)
	}

	factors := []models.AxisFactor{
		{Name: "market_size", Value: round1(size * marketSizeMax), Max: marketSizeMax, Description: sizeDesc},
		{Name: "timing", Value: round1(timing * timingMax), Max: timingMax, Description: timingDesc},
		{Name: "community_activity", Value: round1(community * communityMax), Max: communityMax, Description: communityDesc},
	}

	score := size*marketSizeMax + timing*timingMax + community*communityMax
	level := MarketWeak
	switch {
	case score >= axisHighThreshold:
		level = MarketStrong
	case score >= axisPartialThreshold:
		level = MarketModerate
	}

	return &models.AxisScore{Score: round1(score), Level: level, Factors: factors}
}

func saturate(count, at int) float64 {
	if count <= 0 {
		return 0
	}
	return math.Min(1, float64(count)/float64(at))
}
