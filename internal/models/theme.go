package models

// ThemeTier separates themes central to the hypothesis from surrounding context
type ThemeTier string

const (
	ThemeTierCore       ThemeTier = "core"
	ThemeTierContextual ThemeTier = "contextual"
)

// ResonanceLevel is engagement received by a theme relative to the average
type ResonanceLevel string

const (
	ResonanceLow    ResonanceLevel = "low"
	ResonanceMedium ResonanceLevel = "medium"
	ResonanceHigh   ResonanceLevel = "high"
)

// Theme is an externally derived pain theme. Resonance is empty until computed.
type Theme struct {
	Name        string         `json:"name" yaml:"name" validate:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Intensity   string         `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	Frequency   int            `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Examples    []string       `json:"examples,omitempty" yaml:"examples,omitempty"`
	Sources     []string       `json:"sources,omitempty" yaml:"sources,omitempty"`
	Keywords    []string       `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Tier        ThemeTier      `json:"tier,omitempty" yaml:"tier,omitempty" validate:"omitempty,oneof=core contextual"`
	Resonance   ResonanceLevel `json:"resonance,omitempty" yaml:"-"`
}
