// Package models holds the plain data shapes that flow between the scoring services.
// None of these types carry behaviour beyond small helpers; callers serialize them freely.
package models

// Intensity is the pain tier derived from a signal's score
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// WTPConfidence grades willingness-to-pay evidence in a single text
type WTPConfidence string

const (
	WTPNone   WTPConfidence = "none"
	WTPLow    WTPConfidence = "low"
	WTPMedium WTPConfidence = "medium"
	WTPHigh   WTPConfidence = "high"
)

// Rank orders WTP confidence levels, none being 0
func (c WTPConfidence) Rank() int {
	switch c {
	case WTPLow:
		return 1
	case WTPMedium:
		return 2
	case WTPHigh:
		return 3
	default:
		return 0
	}
}

// Emotion is the dominant emotional register of a text
type Emotion string

const (
	EmotionFrustration    Emotion = "frustration"
	EmotionAnxiety        Emotion = "anxiety"
	EmotionDisappointment Emotion = "disappointment"
	EmotionConfusion      Emotion = "confusion"
	EmotionHope           Emotion = "hope"
	EmotionNeutral        Emotion = "neutral"
)

// AllEmotions lists every emotion in classification order
var AllEmotions = []Emotion{
	EmotionFrustration,
	EmotionAnxiety,
	EmotionDisappointment,
	EmotionConfusion,
	EmotionHope,
	EmotionNeutral,
}

// RawRecord is one ingested text item. It is never mutated after ingest.
type RawRecord struct {
	Text            string  `json:"text" yaml:"text"`
	Title           string  `json:"title,omitempty" yaml:"title,omitempty"`
	EngagementScore float64 `json:"engagement_score" yaml:"engagement_score"`
	CreatedAt       int64   `json:"created_at,omitempty" yaml:"created_at,omitempty"` // epoch seconds, 0 = unknown
	SourceID        string  `json:"source_id" yaml:"source_id"`
	SourceLabel     string  `json:"source_label" yaml:"source_label"` // e.g. subreddit or app store
	Rating          *int    `json:"rating,omitempty" yaml:"rating,omitempty" validate:"omitempty,min=1,max=5"`
}

// SourceMeta is the record metadata carried on every signal
type SourceMeta struct {
	SourceID        string  `json:"source_id"`
	SourceLabel     string  `json:"source_label"`
	EngagementScore float64 `json:"engagement_score"`
	CreatedAt       int64   `json:"created_at,omitempty"`
	Rating          *int    `json:"rating,omitempty"`
}

// PainSignal is the scored form of one RawRecord
type PainSignal struct {
	Text                   string        `json:"text"`
	Title                  string        `json:"title,omitempty"`
	Score                  float64       `json:"score"`
	Intensity              Intensity     `json:"intensity"`
	Signals                []string      `json:"signals"`
	SolutionSeeking        bool          `json:"solution_seeking"`
	WillingnessToPaySignal bool          `json:"willingness_to_pay_signal"`
	WTPConfidence          WTPConfidence `json:"wtp_confidence"`
	HasNegativeContext     bool          `json:"has_negative_context"`
	HasWTPExclusion        bool          `json:"has_wtp_exclusion"`
	Emotion                Emotion       `json:"emotion"`
	Source                 SourceMeta    `json:"source"`
}
