// Package viability combines independently scored research dimensions into
// one overall verdict.
package viability

import (
	"fmt"
	"math"

	"github.com/ternarybob/painscope/internal/models"
)

const (
	// TotalDimensions is the number of research dimensions a complete verdict covers
	TotalDimensions = 4

	// DealbreakerThreshold marks a dimension score as critically weak
	DealbreakerThreshold = 3.0

	// Verdict tier lower bounds (inclusive)
	StrongThreshold = 7.5
	MixedThreshold  = 5.0
	WeakThreshold   = 2.5

	// needsWorkThreshold separates needs_work from adequate dimension status
	needsWorkThreshold = 5.0

	// weakestRecommendationThreshold is the score under which the weakest
	// dimension leads the recommendations
	weakestRecommendationThreshold = 5.0

	// MaxRecommendations caps the recommendation list
	MaxRecommendations = 5

	maxScore = 10.0
)

// dimensionDef describes one research dimension in declaration order
type dimensionDef struct {
	name        string
	weight      float64
	dealbreaker string
	missing     string
	improve     string
}

var dimensionDefs = []dimensionDef{
	{
		name:        models.DimensionPain,
		weight:      0.35,
		dealbreaker: "the problem may not hurt enough for people to seek or pay for a fix",
		missing:     "Run the Pain analysis to measure how strongly the audience feels this problem",
		improve:     "look for sharper, more specific complaints about the problem",
	},
	{
		name:        models.DimensionMarket,
		weight:      0.25,
		dealbreaker: "the addressable market may be too small to sustain a business",
		missing:     "Run the Market analysis to size the addressable audience",
		improve:     "validate that enough people share this problem to form a market",
	},
	{
		name:        models.DimensionCompetition,
		weight:      0.25,
		dealbreaker: "the space may be too crowded or dominated by entrenched players",
		missing:     "Run the Competition analysis to map existing alternatives",
		improve:     "find an underserved angle that existing alternatives miss",
	},
	{
		name:        models.DimensionTiming,
		weight:      0.15,
		dealbreaker: "the timing looks unfavourable for a new entrant",
		missing:     "Run the Timing analysis to check whether demand is growing or fading",
		improve:     "check whether demand is rising before committing",
	},
}

const wtpRecommendation = "Seek willingness-to-pay evidence: none of the pain signals mention paying for a solution"

// Inputs holds the dimension analyses that have run. A nil dimension has not run.
type Inputs struct {
	Pain        *models.DimensionInput
	Market      *models.DimensionInput
	Competition *models.DimensionInput
	Timing      *models.DimensionInput
}

func (in Inputs) ordered() []*models.DimensionInput {
	return []*models.DimensionInput{in.Pain, in.Market, in.Competition, in.Timing}
}

// Calculate combines the present dimensions into a verdict. Weights of the
// present dimensions are renormalized to sum to 1. The verdict tier is taken
// from the unrounded overall score; all reported scores are rounded to one decimal.
func Calculate(in Inputs) models.ViabilityVerdict {
	verdict := models.ViabilityVerdict{
		Verdict:         models.VerdictNone,
		Dimensions:      []models.DimensionScore{},
		TotalDimensions: TotalDimensions,
		Dealbreakers:    []string{},
		Recommendations: []string{},
		Confidence:      models.ConfidenceLow,
	}

	inputs := in.ordered()

	weightSum := 0.0
	for i, input := range inputs {
		if input != nil {
			weightSum += dimensionDefs[i].weight
		}
	}

	overall := 0.0
	weakestIndex := -1
	weakestScore := 0.0
	var confidences []models.ConfidenceTier

	for i, input := range inputs {
		if input == nil {
			continue
		}
		def := dimensionDefs[i]
		score := clampScore(input.Score)
		weight := def.weight / weightSum
		overall += score * weight

		confidence := normalizeConfidence(input.Confidence)
		confidences = append(confidences, confidence)

		verdict.Dimensions = append(verdict.Dimensions, models.DimensionScore{
			Name:       def.name,
			Score:      round1(score),
			Weight:     weight,
			Confidence: confidence,
			Status:     StatusFor(score),
			Summary:    input.Summary,
		})

		if score < DealbreakerThreshold {
			verdict.Dealbreakers = append(verdict.Dealbreakers,
				fmt.Sprintf("%s scored %.1f (below %.1f): %s", def.name, round1(score), DealbreakerThreshold, def.dealbreaker))
		}

		// Strict comparison keeps the earliest dimension on ties
		if weakestIndex < 0 || score < weakestScore {
			weakestIndex = len(verdict.Dimensions) - 1
			weakestScore = score
		}
	}

	verdict.AvailableDimensions = len(verdict.Dimensions)
	verdict.IsComplete = verdict.AvailableDimensions == TotalDimensions

	if verdict.AvailableDimensions > 0 {
		verdict.OverallScore = round1(clampScore(overall))
		verdict.Verdict = VerdictFor(overall)
		verdict.Confidence = AggregateConfidence(confidences)
		weakest := verdict.Dimensions[weakestIndex]
		verdict.WeakestDimension = &weakest
	}

	verdict.Recommendations = recommendations(in, verdict.WeakestDimension, weakestScore)
	verdict.HypothesisConfidence = CalculateHypothesisConfidence(in)
	verdict.MarketOpportunity = CalculateMarketOpportunity(in)

	return verdict
}

// VerdictFor maps an overall score to a verdict tier. Boundary values belong to the higher tier.
func VerdictFor(score float64) models.VerdictTier {
	switch {
	case score >= StrongThreshold:
		return models.VerdictStrong
	case score >= MixedThreshold:
		return models.VerdictMixed
	case score >= WeakThreshold:
		return models.VerdictWeak
	default:
		return models.VerdictNone
	}
}

// StatusFor maps a dimension score to its status
func StatusFor(score float64) models.DimensionStatus {
	switch {
	case score < DealbreakerThreshold:
		return models.StatusCritical
	case score < needsWorkThreshold:
		return models.StatusNeedsWork
	case score < StrongThreshold:
		return models.StatusAdequate
	default:
		return models.StatusStrong
	}
}

// AggregateConfidence is high only when every confidence is high and low only
// when every confidence is low; anything mixed is medium. very_low counts as low.
func AggregateConfidence(confidences []models.ConfidenceTier) models.ConfidenceTier {
	if len(confidences) == 0 {
		return models.ConfidenceLow
	}

	allHigh, allLow := true, true
	for _, c := range confidences {
		c = normalizeConfidence(c)
		if c != models.ConfidenceHigh {
			allHigh = false
		}
		if c != models.ConfidenceLow {
			allLow = false
		}
	}

	switch {
	case allHigh:
		return models.ConfidenceHigh
	case allLow:
		return models.ConfidenceLow
	default:
		return models.ConfidenceMedium
	}
}

// recommendations lists, most relevant first: the weakest dimension when it
// is below 5.0, each missing analysis, then missing WTP evidence.
func recommendations(in Inputs, weakest *models.DimensionScore, weakestScore float64) []string {
	out := []string{}

	if weakest != nil && weakestScore < weakestRecommendationThreshold {
		for _, def := range dimensionDefs {
			if def.name == weakest.Name {
				out = append(out, fmt.Sprintf("Strengthen %s (%.1f/10): %s", def.name, weakest.Score, def.improve))
				break
			}
		}
	}

	for i, input := range in.ordered() {
		if input == nil {
			out = append(out, dimensionDefs[i].missing)
		}
	}

	if in.Pain != nil && in.Pain.Evidence != nil && in.Pain.Evidence.WTPSignals == 0 {
		out = append(out, wtpRecommendation)
	}

	if len(out) > MaxRecommendations {
		out = out[:MaxRecommendations]
	}
	return out
}

func normalizeConfidence(c models.ConfidenceTier) models.ConfidenceTier {
	switch c {
	case models.ConfidenceHigh, models.ConfidenceMedium:
		return c
	default:
		return models.ConfidenceLow
	}
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
