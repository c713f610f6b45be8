// Package resonance rates how strongly each theme engages the audience
// relative to the average signal.
package resonance

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/lexicon"
	"github.com/ternarybob/painscope/internal/models"
)

// minKeywordLength drops short name words such as "app" or "the"
const minKeywordLength = 4

var stopwords = map[string]struct{}{
	"about": {}, "after": {}, "also": {}, "been": {}, "being": {}, "from": {}, "have": {},
	"into": {}, "issue": {}, "issues": {}, "lack": {}, "more": {}, "most": {}, "need": {},
	"needs": {}, "other": {}, "over": {}, "problem": {}, "problems": {}, "some": {},
	"than": {}, "that": {}, "their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "very": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "while": {}, "with": {}, "without": {}, "your": {},
}

// Calculator assigns resonance levels using the configured ratio cutoffs.
type Calculator struct {
	config common.ResonanceConfig
}

// NewCalculator creates a Calculator. Non-positive or inverted cutoffs fall back to defaults.
func NewCalculator(config common.ResonanceConfig) *Calculator {
	if config.LowRatio <= 0 || config.HighRatio <= config.LowRatio {
		config = common.NewDefaultConfig().Resonance
	}
	return &Calculator{config: config}
}

var defaultCalculator = NewCalculator(common.ResonanceConfig{})

// Calculate annotates themes with the default cutoffs.
func Calculate(themes []models.Theme, signals []models.PainSignal) []models.Theme {
	return defaultCalculator.Calculate(themes, signals)
}

// Calculate returns a copy of themes with Resonance set from the ratio of
// each theme's mean engagement to the overall mean engagement. Themes that
// match no signal get an empty Resonance. With no signals, or no engagement at
// all, the themes are returned as they are.
func (c *Calculator) Calculate(themes []models.Theme, signals []models.PainSignal) []models.Theme {
	out := make([]models.Theme, len(themes))
	for i, theme := range themes {
		out[i] = cloneTheme(theme)
	}

	if len(signals) == 0 {
		return out
	}

	texts := make([]string, len(signals))
	overall := 0.0
	for i, signal := range signals {
		texts[i] = lexicon.Normalize(signal.Title + "\n" + signal.Text)
		overall += engagement(signal)
	}
	overall /= float64(len(signals))
	if overall <= 0 {
		return out
	}

	for i := range out {
		keywords := Keywords(out[i])
		matched, total := 0, 0.0
		for j, text := range texts {
			if containsAny(text, keywords) {
				matched++
				total += engagement(signals[j])
			}
		}

		if matched == 0 {
			out[i].Resonance = ""
			continue
		}
		out[i].Resonance = c.level((total / float64(matched)) / overall)
	}

	return out
}

func (c *Calculator) level(ratio float64) models.ResonanceLevel {
	switch {
	case ratio > c.config.HighRatio:
		return models.ResonanceHigh
	case ratio < c.config.LowRatio:
		return models.ResonanceLow
	default:
		return models.ResonanceMedium
	}
}

// Keywords returns the lower-case terms used to match signals to a theme: the
// significant words of its name followed by its explicit keywords.
func Keywords(theme models.Theme) []string {
	var keywords []string
	seen := make(map[string]struct{})
	add := func(term string) {
		term = strings.TrimSpace(lexicon.Normalize(term))
		if term == "" {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}

	words := strings.FieldsFunc(lexicon.Normalize(theme.Name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	for _, word := range words {
		if len([]rune(word)) < minKeywordLength {
			continue
		}
		if _, stop := stopwords[word]; stop {
			continue
		}
		add(word)
	}
	for _, keyword := range theme.Keywords {
		add(keyword)
	}
	return keywords
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func engagement(signal models.PainSignal) float64 {
	e := signal.Source.EngagementScore
	if math.IsNaN(e) || e < 0 || math.IsInf(e, 0) {
		return 0
	}
	return e
}

func cloneTheme(theme models.Theme) models.Theme {
	theme.Examples = slices.Clone(theme.Examples)
	theme.Sources = slices.Clone(theme.Sources)
	theme.Keywords = slices.Clone(theme.Keywords)
	return theme
}
