package models

import "time"

// ConfidenceTier grades how much data backs an aggregate
type ConfidenceTier string

const (
	ConfidenceVeryLow ConfidenceTier = "very_low"
	ConfidenceLow     ConfidenceTier = "low"
	ConfidenceMedium  ConfidenceTier = "medium"
	ConfidenceHigh    ConfidenceTier = "high"
)

// SourceCount is one entry of the source ranking
type SourceCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WTPQuote is a willingness-to-pay excerpt with its source label
type WTPQuote struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// TemporalDistribution buckets dated signals into exclusive age bands
type TemporalDistribution struct {
	Last30Days  int `json:"last_30_days"`
	Last90Days  int `json:"last_90_days"`
	Last180Days int `json:"last_180_days"`
	Older       int `json:"older"`
}

// DateRange spans the oldest and newest dated signal
type DateRange struct {
	Oldest time.Time `json:"oldest"`
	Newest time.Time `json:"newest"`
}

// PainSummary aggregates a set of PainSignals. Always recomputable from the signals.
type PainSummary struct {
	TotalSignals          int                  `json:"total_signals"`
	AverageScore          float64              `json:"average_score"`
	HighIntensityCount    int                  `json:"high_intensity_count"`
	MediumIntensityCount  int                  `json:"medium_intensity_count"`
	LowIntensityCount     int                  `json:"low_intensity_count"`
	SolutionSeekingCount  int                  `json:"solution_seeking_count"`
	WillingnessToPayCount int                  `json:"willingness_to_pay_count"`
	TopSources            []SourceCount        `json:"top_sources"`
	DataConfidence        ConfidenceTier       `json:"data_confidence"`
	StrongestSignals      []string             `json:"strongest_signals"`
	WTPQuotes             []WTPQuote           `json:"wtp_quotes"`
	TemporalDistribution  TemporalDistribution `json:"temporal_distribution"`
	RecencyScore          float64              `json:"recency_score"`
	EmotionsBreakdown     map[Emotion]int      `json:"emotions_breakdown"`
	DateRange             *DateRange           `json:"date_range,omitempty"`
	SourceCount           int                  `json:"source_count"`
}

// CalibratedPainScore is the single pain number derived from a PainSummary
type CalibratedPainScore struct {
	Score      float64        `json:"score"`
	Confidence ConfidenceTier `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
}
