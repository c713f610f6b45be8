package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/painscope/internal/models"
	"github.com/ternarybob/painscope/internal/services/viability"
)

func sampleReport() *Report {
	pain := &models.DimensionInput{
		Score:      6.2,
		Confidence: models.ConfidenceMedium,
		Evidence: &models.SignalEvidence{
			TotalSignals:  20,
			DirectSignals: 12,
			WTPSignals:    0,
			SourceCount:   3,
			RecencyScore:  0.8,
		},
	}
	market := &models.DimensionInput{Score: 2.0, Confidence: models.ConfidenceLow}

	return &Report{
		RunID:   "run_test",
		Verdict: viability.Calculate(viability.Inputs{Pain: pain, Market: market}),
		Summary: models.PainSummary{
			TotalSignals:       20,
			HighIntensityCount: 5,
			TopSources:         []models.SourceCount{{Name: "r/freelance", Count: 12}},
			StrongestSignals:   []string{"Chasing invoices is a nightmare"},
		},
		Calibrated: models.CalibratedPainScore{
			Score:      6.2,
			Confidence: models.ConfidenceMedium,
			Reasoning:  "Average signal score 6.2 across 20 signals.",
		},
		Themes: []models.Theme{
			{Name: "Invoice | payment chasing", Tier: models.ThemeTierCore, Resonance: models.ResonanceHigh},
			{Name: "Tax confusion"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"Markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{" html ", FormatHTML, false},
		{"pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := RenderMarkdown(sampleReport())

	assert.Contains(t, md, "# Viability report")
	assert.Contains(t, md, "Partial verdict: 2 of 4 dimensions available")
	assert.Contains(t, md, "| Pain | 6.2 |")
	assert.Contains(t, md, "## Dealbreakers")
	assert.Contains(t, md, "Market scored 2.0")
	assert.Contains(t, md, "## Recommendations")
	assert.Contains(t, md, "Hypothesis confidence")
	assert.Contains(t, md, "> Chasing invoices is a nightmare")
	assert.Contains(t, md, `Invoice \| payment chasing`)
	assert.Contains(t, md, "| Tax confusion | - | n/a |")
}

func TestRenderMarkdown_RoundedScoreNote(t *testing.T) {
	verdict := viability.Calculate(viability.Inputs{Pain: &models.DimensionInput{Score: 7.46}})
	require.Equal(t, 7.5, verdict.OverallScore)
	require.Equal(t, models.VerdictMixed, verdict.Verdict)

	md := RenderMarkdown(&Report{Verdict: verdict})
	assert.Contains(t, md, "decided on the unrounded score")

	assert.NotContains(t, RenderMarkdown(sampleReport()), "decided on the unrounded score")
}

func TestRenderMarkdown_EmptyVerdict(t *testing.T) {
	md := RenderMarkdown(&Report{Verdict: viability.Calculate(viability.Inputs{})})

	assert.Contains(t, md, "NONE")
	assert.NotContains(t, md, "## Dimensions")
	assert.NotContains(t, md, "## Themes")
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, sampleReport()))

	html := buf.String()
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<h1>Viability report</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<blockquote>")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleReport(), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run_test", decoded["run_id"])
	assert.Contains(t, decoded, "verdict")
	assert.Contains(t, decoded, "themes")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, sampleReport(), Format("pdf"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
