package pain

import (
	"github.com/ternarybob/painscope/internal/lexicon"
	"github.com/ternarybob/painscope/internal/models"
)

// WTPResult is the willingness-to-pay reading of a text
type WTPResult struct {
	Signal     bool
	Confidence models.WTPConfidence
	Excluded   bool
	Phrases    []string
}

// DetectWTP scans text for willingness-to-pay evidence
func DetectWTP(text string) WTPResult {
	return detectWTP(lexicon.Prepare(text))
}

// detectWTP grades WTP evidence. An exclusion phrase (refunds, regret, cut budgets)
// forces confidence to none whatever else matched.
func detectWTP(text lexicon.Text) WTPResult {
	if text.Any(lexicon.WTPExclusions) {
		return WTPResult{Confidence: models.WTPNone, Excluded: true}
	}

	strong := text.Match(lexicon.WTPStrong)
	pricing := text.Match(lexicon.WTPPricing)

	var confidence models.WTPConfidence
	switch {
	case len(strong) >= 2, len(strong) == 1 && len(pricing) > 0:
		confidence = models.WTPHigh
	case len(strong) == 1:
		confidence = models.WTPMedium
	case len(pricing) > 0:
		confidence = models.WTPLow
	default:
		confidence = models.WTPNone
	}

	return WTPResult{
		Signal:     confidence != models.WTPNone,
		Confidence: confidence,
		Phrases:    append(strong, pricing...),
	}
}
