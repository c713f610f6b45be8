package viability

import (
	"fmt"

	"github.com/ternarybob/painscope/internal/models"
)

// PainDimension turns a calibrated pain score and its summary into the Pain
// input of the viability calculator, carrying the signal evidence.
func PainDimension(calibrated models.CalibratedPainScore, summary models.PainSummary) *models.DimensionInput {
	description := fmt.Sprintf("%d signals, %d high intensity, %d with willingness to pay",
		summary.TotalSignals, summary.HighIntensityCount, summary.WillingnessToPayCount)

	return &models.DimensionInput{
		Score:      calibrated.Score,
		Confidence: normalizeConfidence(calibrated.Confidence),
		Summary:    description,
		Evidence:   EvidenceFromSummary(summary),
	}
}

// EvidenceFromSummary extracts the dual-axis and WTP evidence from a PainSummary.
func EvidenceFromSummary(summary models.PainSummary) *models.SignalEvidence {
	return &models.SignalEvidence{
		TotalSignals:  summary.TotalSignals,
		DirectSignals: summary.HighIntensityCount + summary.MediumIntensityCount,
		WTPSignals:    summary.WillingnessToPayCount,
		SourceCount:   summary.SourceCount,
		RecencyScore:  summary.RecencyScore,
	}
}
