// Package calibration converts a PainSummary into one calibrated pain score.
package calibration

import (
	"fmt"
	"math"
	"strings"

	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/models"
)

const (
	// WTP boost = wtpBoostBase + wtpBoostSlope * min(ratio, wtpBoostRatioCap)
	wtpBoostBase     = 0.5
	wtpBoostSlope    = 2.0
	wtpBoostRatioCap = 0.5

	lowQualityFactor = 0.8
	allLowFactor     = 0.5

	maxScore = 10.0
)

// Calibrator converts a PainSummary into a single calibrated pain score.
type Calibrator struct {
	config common.CalibrationConfig
}

// NewCalibrator creates a Calibrator. Out-of-range ratios fall back to defaults.
func NewCalibrator(config common.CalibrationConfig) *Calibrator {
	defaults := common.NewDefaultConfig().Calibration
	if config.WTPRatioThreshold <= 0 || config.WTPRatioThreshold >= 1 {
		config.WTPRatioThreshold = defaults.WTPRatioThreshold
	}
	if config.LowDominanceRatio <= 0 || config.LowDominanceRatio >= 1 {
		config.LowDominanceRatio = defaults.LowDominanceRatio
	}
	if config.HighRarityRatio <= 0 || config.HighRarityRatio >= 1 {
		config.HighRarityRatio = defaults.HighRarityRatio
	}
	return &Calibrator{config: config}
}

var defaultCalibrator = NewCalibrator(common.CalibrationConfig{})

// Calibrate calibrates summary with the default thresholds.
func Calibrate(summary models.PainSummary) models.CalibratedPainScore {
	return defaultCalibrator.Calibrate(summary)
}

// Calibrate starts from the average signal score and applies a
// willingness-to-pay boost and a low-quality penalty.
//
// Adjustments:
//   - WTP boost when the WTP share exceeds WTPRatioThreshold
//   - x0.8 when low-intensity signals dominate and high-intensity ones are rare
//   - x0.5 when no signal reached medium or high intensity
//
// Penalties apply to the lower of the boosted score and the raw average, so a
// penalized pool always lands below its average.
func (c *Calibrator) Calibrate(summary models.PainSummary) models.CalibratedPainScore {
	if summary.TotalSignals <= 0 {
		return models.CalibratedPainScore{
			Score:      0,
			Confidence: models.ConfidenceVeryLow,
			Reasoning:  "No pain signals collected; nothing to calibrate.",
		}
	}

	n := float64(summary.TotalSignals)
	average := summary.AverageScore
	if math.IsNaN(average) || average < 0 {
		average = 0
	}
	average = math.Min(average, maxScore)

	reasons := []string{fmt.Sprintf("Average signal score %.1f across %d signals", average, summary.TotalSignals)}
	score := average

	wtpRatio := float64(summary.WillingnessToPayCount) / n
	if wtpRatio > c.config.WTPRatioThreshold {
		boost := wtpBoostBase + wtpBoostSlope*math.Min(wtpRatio, wtpBoostRatioCap)
		score += boost
		reasons = append(reasons, fmt.Sprintf("+%.1f for willingness to pay in %.0f%% of signals", boost, wtpRatio*100))
	}

	// Rounding must never lift a penalized score back over its penalty
	ceiling := maxScore

	lowRatio := float64(summary.LowIntensityCount) / n
	highRatio := float64(summary.HighIntensityCount) / n

	switch {
	case summary.HighIntensityCount+summary.MediumIntensityCount == 0:
		score = math.Min(score, average) * allLowFactor
		ceiling = score
		reasons = append(reasons, "halved because no signal reached medium or high intensity")
	case lowRatio > c.config.LowDominanceRatio && highRatio < c.config.HighRarityRatio:
		score = math.Min(score, average) * lowQualityFactor
		ceiling = score
		reasons = append(reasons, fmt.Sprintf("reduced 20%% because %.0f%% of signals are low intensity and only %.0f%% high",
			lowRatio*100, highRatio*100))
	}

	confidence := summary.DataConfidence
	if confidence == "" {
		confidence = models.ConfidenceVeryLow
	}

	score = math.Round(clamp(score, 0, maxScore)*10) / 10
	if score > ceiling {
		score = math.Floor(ceiling*10) / 10
	}

	return models.CalibratedPainScore{
		Score:      score,
		Confidence: confidence,
		Reasoning:  strings.Join(reasons, "; ") + ".",
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
