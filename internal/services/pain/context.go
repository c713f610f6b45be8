package pain

import (
	"slices"

	"github.com/ternarybob/painscope/internal/lexicon"
)

// leadInWindow is how many words after a lead-in may carry the pain it frames
const leadInWindow = 3

// framedPain is the vocabulary that turns a lead-in into negative framing
var framedPain = slices.Concat(lexicon.High, lexicon.Medium, lexicon.PastPain)

// NegativeContext records why pain language should not be taken at face value
type NegativeContext struct {
	Hypothetical bool
	ThirdParty   bool
	Resolved     bool
}

// Any reports whether any negative framing was found
func (n NegativeContext) Any() bool {
	return n.Hypothetical || n.ThirdParty || n.Resolved
}

// DetectNegativeContext classifies hypothetical, third-party and already-resolved framing
func DetectNegativeContext(text string) NegativeContext {
	return negativeContext(lexicon.Prepare(text))
}

func negativeContext(text lexicon.Text) NegativeContext {
	thirdParty := text.Any(lexicon.NegativeThirdParty) ||
		text.FollowedBy(lexicon.ThirdPartySubjects, framedPain, leadInWindow)
	resolved := text.Any(lexicon.NegativeResolved) ||
		text.FollowedBy(lexicon.ResolvedLeadIns, framedPain, leadInWindow)

	return NegativeContext{
		Hypothetical: text.Any(lexicon.NegativeHypothetical),
		ThirdParty:   thirdParty,
		Resolved:     resolved,
	}
}

func detectNegativeContext(text lexicon.Text) bool {
	return negativeContext(text).Any()
}
