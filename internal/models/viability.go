package models

// DimensionStatus describes how a research dimension scored
type DimensionStatus string

const (
	StatusCritical  DimensionStatus = "critical"
	StatusNeedsWork DimensionStatus = "needs_work"
	StatusAdequate  DimensionStatus = "adequate"
	StatusStrong    DimensionStatus = "strong"
)

// VerdictTier is the overall viability label
type VerdictTier string

const (
	VerdictNone   VerdictTier = "none"
	VerdictWeak   VerdictTier = "weak"
	VerdictMixed  VerdictTier = "mixed"
	VerdictStrong VerdictTier = "strong"
)

// Dimension names, in declaration order
const (
	DimensionPain        = "Pain"
	DimensionMarket      = "Market"
	DimensionCompetition = "Competition"
	DimensionTiming      = "Timing"
)

// DimensionScore is one weighted research dimension in a verdict
type DimensionScore struct {
	Name       string          `json:"name"`
	Score      float64         `json:"score"`
	Weight     float64         `json:"weight"`
	Confidence ConfidenceTier  `json:"confidence"`
	Status     DimensionStatus `json:"status"`
	Summary    string          `json:"summary,omitempty"`
}

// AxisFactor is one contribution to a dual-axis score
type AxisFactor struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Max         float64 `json:"max"`
	Description string  `json:"description"`
}

// AxisScore is either the hypothesis-confidence or the market-opportunity axis
type AxisScore struct {
	Score   float64      `json:"score"`
	Level   string       `json:"level"`
	Factors []AxisFactor `json:"factors"`
}

// ViabilityVerdict is recomputed from scratch on every evaluation.
// OverallScore is rounded to one decimal for display; Verdict is decided on the
// unrounded score, so 7.46 reports 7.5 with a mixed verdict.
type ViabilityVerdict struct {
	OverallScore         float64          `json:"overall_score"`
	Verdict              VerdictTier      `json:"verdict"`
	Dimensions           []DimensionScore `json:"dimensions"`
	IsComplete           bool             `json:"is_complete"`
	AvailableDimensions  int              `json:"available_dimensions"`
	TotalDimensions      int              `json:"total_dimensions"`
	Dealbreakers         []string         `json:"dealbreakers"`
	Recommendations      []string         `json:"recommendations"`
	Confidence           ConfidenceTier   `json:"confidence"`
	WeakestDimension     *DimensionScore  `json:"weakest_dimension"`
	HypothesisConfidence *AxisScore       `json:"hypothesis_confidence,omitempty"`
	MarketOpportunity    *AxisScore       `json:"market_opportunity,omitempty"`
}

// SignalEvidence summarizes the pain signal pool behind a Pain dimension.
// It feeds the WTP recommendation and both dual-axis scores.
type SignalEvidence struct {
	TotalSignals  int     `json:"total_signals" yaml:"total_signals" validate:"gte=0"`
	DirectSignals int     `json:"direct_signals" yaml:"direct_signals" validate:"gte=0,ltefield=TotalSignals"` // medium or high intensity
	WTPSignals    int     `json:"wtp_signals" yaml:"wtp_signals" validate:"gte=0"`
	SourceCount   int     `json:"source_count" yaml:"source_count" validate:"gte=0"`
	RecencyScore  float64 `json:"recency_score" yaml:"recency_score" validate:"gte=0,lte=1"`
}

// DimensionInput is the result of one dimension analysis handed to the viability calculator
type DimensionInput struct {
	Score      float64         `json:"score" yaml:"score" validate:"gte=0,lte=10"`
	Confidence ConfidenceTier  `json:"confidence" yaml:"confidence" validate:"omitempty,oneof=very_low low medium high"`
	Summary    string          `json:"summary,omitempty" yaml:"summary,omitempty"`
	Evidence   *SignalEvidence `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}
