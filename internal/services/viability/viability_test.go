package viability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/painscope/internal/models"
)

func dim(score float64, confidence models.ConfidenceTier) *models.DimensionInput {
	return &models.DimensionInput{Score: score, Confidence: confidence}
}

func TestCalculate_EndToEnd(t *testing.T) {
	verdict := Calculate(Inputs{
		Pain:        dim(8.0, models.ConfidenceHigh),
		Market:      dim(6.0, models.ConfidenceMedium),
		Competition: dim(4.0, models.ConfidenceMedium),
		Timing:      dim(7.0, models.ConfidenceHigh),
	})

	// 8*0.35 + 6*0.25 + 4*0.25 + 7*0.15 = 6.35
	assert.InDelta(t, 6.4, verdict.OverallScore, 1e-9)
	assert.Equal(t, models.VerdictMixed, verdict.Verdict)
	require.NotNil(t, verdict.WeakestDimension)
	assert.Equal(t, models.DimensionCompetition, verdict.WeakestDimension.Name)
	assert.True(t, verdict.IsComplete)
	assert.Equal(t, 4, verdict.AvailableDimensions)
	assert.Equal(t, TotalDimensions, verdict.TotalDimensions)
	assert.Empty(t, verdict.Dealbreakers)
	assert.Equal(t, models.ConfidenceMedium, verdict.Confidence)

	weights := map[string]float64{}
	for _, d := range verdict.Dimensions {
		weights[d.Name] = d.Weight
	}
	assert.InDelta(t, 0.35, weights[models.DimensionPain], 1e-9)
	assert.InDelta(t, 0.25, weights[models.DimensionMarket], 1e-9)
	assert.InDelta(t, 0.25, weights[models.DimensionCompetition], 1e-9)
	assert.InDelta(t, 0.15, weights[models.DimensionTiming], 1e-9)

	// Weakest dimension below 5.0 leads the recommendations
	require.NotEmpty(t, verdict.Recommendations)
	assert.True(t, strings.HasPrefix(verdict.Recommendations[0], "Strengthen Competition"))
}

func TestCalculate_NoDimensions(t *testing.T) {
	verdict := Calculate(Inputs{})

	assert.Equal(t, 0.0, verdict.OverallScore)
	assert.Equal(t, models.VerdictNone, verdict.Verdict)
	assert.NotNil(t, verdict.Dimensions)
	assert.Empty(t, verdict.Dimensions)
	assert.False(t, verdict.IsComplete)
	assert.Nil(t, verdict.WeakestDimension)
	assert.Nil(t, verdict.HypothesisConfidence)
	assert.Nil(t, verdict.MarketOpportunity)
	assert.Len(t, verdict.Recommendations, 4, "one run-analysis recommendation per dimension")
}

func TestCalculate_SingleDimensionScoreIsExact(t *testing.T) {
	verdict := Calculate(Inputs{Market: dim(6.3, models.ConfidenceMedium)})

	require.Len(t, verdict.Dimensions, 1)
	assert.Equal(t, 1.0, verdict.Dimensions[0].Weight)
	assert.Equal(t, 6.3, verdict.OverallScore)
	assert.False(t, verdict.IsComplete)
	assert.Equal(t, models.DimensionMarket, verdict.WeakestDimension.Name)
}

func TestCalculate_WeightsRenormalize(t *testing.T) {
	subsets := []Inputs{
		{Pain: dim(5, "")},
		{Pain: dim(5, ""), Market: dim(5, "")},
		{Competition: dim(5, ""), Timing: dim(5, "")},
		{Pain: dim(5, ""), Competition: dim(5, ""), Timing: dim(5, "")},
		{Pain: dim(5, ""), Market: dim(5, ""), Competition: dim(5, ""), Timing: dim(5, "")},
	}

	for i, in := range subsets {
		verdict := Calculate(in)
		sum := 0.0
		for _, d := range verdict.Dimensions {
			sum += d.Weight
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "subset %d", i)
	}

	// Two dimensions keep their relative ratio
	verdict := Calculate(Inputs{Pain: dim(5, ""), Timing: dim(5, "")})
	assert.InDelta(t, 0.35/0.5, verdict.Dimensions[0].Weight, 1e-9)
	assert.InDelta(t, 0.15/0.5, verdict.Dimensions[1].Weight, 1e-9)
}

func TestVerdictFor_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  models.VerdictTier
	}{
		{10, models.VerdictStrong},
		{7.5, models.VerdictStrong},
		{7.499, models.VerdictMixed},
		{5.0, models.VerdictMixed},
		{4.999, models.VerdictWeak},
		{2.5, models.VerdictWeak},
		{2.499, models.VerdictNone},
		{0, models.VerdictNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerdictFor(tt.score), "score %v", tt.score)
	}
}

func TestCalculate_VerdictUsesUnroundedScore(t *testing.T) {
	verdict := Calculate(Inputs{Pain: dim(7.499, models.ConfidenceHigh)})

	assert.Equal(t, models.VerdictMixed, verdict.Verdict)
	assert.Equal(t, 7.5, verdict.OverallScore)
}

func TestCalculate_Dealbreakers(t *testing.T) {
	verdict := Calculate(Inputs{
		Pain:        dim(2.0, models.ConfidenceMedium),
		Market:      dim(8.0, models.ConfidenceMedium),
		Competition: dim(8.0, models.ConfidenceMedium),
		Timing:      dim(8.0, models.ConfidenceMedium),
	})

	require.Len(t, verdict.Dealbreakers, 1)
	assert.True(t, strings.HasPrefix(verdict.Dealbreakers[0], "Pain"))
	assert.Equal(t, models.StatusCritical, verdict.Dimensions[0].Status)

	multiple := Calculate(Inputs{Pain: dim(2.9, ""), Market: dim(1.0, ""), Competition: dim(3.0, "")})
	assert.Len(t, multiple.Dealbreakers, 2, "3.0 is not a dealbreaker")
}

func TestCalculate_Confidence(t *testing.T) {
	tests := []struct {
		name string
		in   Inputs
		want models.ConfidenceTier
	}{
		{"all high", Inputs{Pain: dim(5, models.ConfidenceHigh), Market: dim(5, models.ConfidenceHigh)}, models.ConfidenceHigh},
		{"all low", Inputs{Pain: dim(5, models.ConfidenceLow), Market: dim(5, models.ConfidenceLow)}, models.ConfidenceLow},
		{"very low counts as low", Inputs{Pain: dim(5, models.ConfidenceVeryLow), Market: dim(5, models.ConfidenceLow)}, models.ConfidenceLow},
		{"high and low", Inputs{Pain: dim(5, models.ConfidenceHigh), Market: dim(5, models.ConfidenceLow)}, models.ConfidenceMedium},
		{"all medium", Inputs{Pain: dim(5, models.ConfidenceMedium)}, models.ConfidenceMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.in).Confidence)
		})
	}
}

func TestCalculate_WeakestTieUsesDeclarationOrder(t *testing.T) {
	verdict := Calculate(Inputs{
		Market:      dim(4.0, ""),
		Competition: dim(4.0, ""),
		Timing:      dim(6.0, ""),
	})

	assert.Equal(t, models.DimensionMarket, verdict.WeakestDimension.Name)
}

func TestCalculate_Recommendations(t *testing.T) {
	pain := dim(6.0, models.ConfidenceMedium)
	pain.Evidence = &models.SignalEvidence{TotalSignals: 20, DirectSignals: 10, SourceCount: 3}

	verdict := Calculate(Inputs{Pain: pain})

	assert.Equal(t, []string{
		dimensionDefs[1].missing,
		dimensionDefs[2].missing,
		dimensionDefs[3].missing,
		wtpRecommendation,
	}, verdict.Recommendations)

	pain.Evidence.WTPSignals = 2
	verdict = Calculate(Inputs{Pain: pain})
	assert.NotContains(t, verdict.Recommendations, wtpRecommendation)
}

func TestCalculate_RecommendationsCapped(t *testing.T) {
	pain := dim(1.0, models.ConfidenceLow)
	pain.Evidence = &models.SignalEvidence{TotalSignals: 3}

	verdict := Calculate(Inputs{Pain: pain})

	// weakest + 3 missing + WTP = 5
	assert.Len(t, verdict.Recommendations, MaxRecommendations)
	assert.True(t, strings.HasPrefix(verdict.Recommendations[0], "Strengthen Pain"))
}

func TestCalculate_ClampsAndRounds(t *testing.T) {
	verdict := Calculate(Inputs{Pain: dim(12, ""), Market: dim(-1, "")})

	assert.Equal(t, 10.0, verdict.Dimensions[0].Score)
	assert.Equal(t, 0.0, verdict.Dimensions[1].Score)
	assert.Equal(t, 5.8, verdict.OverallScore)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, models.StatusCritical, StatusFor(2.99))
	assert.Equal(t, models.StatusNeedsWork, StatusFor(3.0))
	assert.Equal(t, models.StatusAdequate, StatusFor(5.0))
	assert.Equal(t, models.StatusStrong, StatusFor(7.5))
}
