package report

import (
	"fmt"
	"strings"

	"github.com/ternarybob/painscope/internal/models"
	"github.com/ternarybob/painscope/internal/services/viability"
)

// RenderMarkdown builds the human-readable report
func RenderMarkdown(report *Report) string {
	var sb strings.Builder
	verdict := report.Verdict

	sb.WriteString("# Viability report\n\n")
	if report.RunID != "" {
		fmt.Fprintf(&sb, "Run `%s`\n\n", report.RunID)
	}

	fmt.Fprintf(&sb, "**Verdict:** %s (%.1f/10, %s confidence)\n\n",
		strings.ToUpper(string(verdict.Verdict)), verdict.OverallScore, verdict.Confidence)
	if verdict.AvailableDimensions > 0 && viability.VerdictFor(verdict.OverallScore) != verdict.Verdict {
		sb.WriteString("_The score is rounded for display; the verdict is decided on the unrounded score, which falls just below the next tier._\n\n")
	}
	if !verdict.IsComplete {
		fmt.Fprintf(&sb, "_Partial verdict: %d of %d dimensions available._\n\n",
			verdict.AvailableDimensions, verdict.TotalDimensions)
	}

	if len(verdict.Dimensions) > 0 {
		sb.WriteString("## Dimensions\n\n")
		sb.WriteString("| Dimension | Score | Weight | Status | Confidence |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, d := range verdict.Dimensions {
			fmt.Fprintf(&sb, "| %s | %.1f | %.0f%% | %s | %s |\n",
				d.Name, d.Score, d.Weight*100, d.Status, d.Confidence)
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Dealbreakers", verdict.Dealbreakers)
	writeList(&sb, "Recommendations", verdict.Recommendations)

	if verdict.HypothesisConfidence != nil || verdict.MarketOpportunity != nil {
		sb.WriteString("## Dual-axis view\n\n")
		writeAxis(&sb, "Hypothesis confidence", verdict.HypothesisConfidence)
		writeAxis(&sb, "Market opportunity", verdict.MarketOpportunity)
	}

	writePain(&sb, report)
	writeThemes(&sb, report.Themes)

	return sb.String()
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

func writeAxis(sb *strings.Builder, title string, axis *models.AxisScore) {
	if axis == nil {
		return
	}
	fmt.Fprintf(sb, "**%s:** %.1f/10 (%s)\n\n", title, axis.Score, axis.Level)
	for _, f := range axis.Factors {
		fmt.Fprintf(sb, "- %s: %.1f/%.0f, %s\n", f.Name, f.Value, f.Max, f.Description)
	}
	sb.WriteString("\n")
}

func writePain(sb *strings.Builder, report *Report) {
	summary := report.Summary

	sb.WriteString("## Pain evidence\n\n")
	fmt.Fprintf(sb, "Calibrated pain score **%.1f** (%s confidence). %s\n\n",
		report.Calibrated.Score, report.Calibrated.Confidence, report.Calibrated.Reasoning)

	if summary.TotalSignals == 0 {
		return
	}

	sb.WriteString("| Signals | High | Medium | Low | Solution seeking | Willing to pay |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	fmt.Fprintf(sb, "| %d | %d | %d | %d | %d | %d |\n\n",
		summary.TotalSignals, summary.HighIntensityCount, summary.MediumIntensityCount,
		summary.LowIntensityCount, summary.SolutionSeekingCount, summary.WillingnessToPayCount)

	if len(summary.TopSources) > 0 {
		sources := make([]string, 0, len(summary.TopSources))
		for _, s := range summary.TopSources {
			sources = append(sources, fmt.Sprintf("%s (%d)", s.Name, s.Count))
		}
		fmt.Fprintf(sb, "Top sources: %s\n\n", strings.Join(sources, ", "))
	}

	if summary.DateRange != nil {
		fmt.Fprintf(sb, "Signals dated %s to %s, recency %.2f\n\n",
			summary.DateRange.Oldest.Format("2006-01-02"), summary.DateRange.Newest.Format("2006-01-02"),
			summary.RecencyScore)
	}

	writeQuotes(sb, "Strongest signals", summary.StrongestSignals)

	if len(summary.WTPQuotes) > 0 {
		quotes := make([]string, 0, len(summary.WTPQuotes))
		for _, q := range summary.WTPQuotes {
			quotes = append(quotes, fmt.Sprintf("%s (%s)", q.Text, q.Source))
		}
		writeQuotes(sb, "Willingness to pay", quotes)
	}
}

func writeQuotes(sb *strings.Builder, title string, quotes []string) {
	if len(quotes) == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s\n\n", title)
	for _, q := range quotes {
		fmt.Fprintf(sb, "> %s\n\n", strings.Join(strings.Fields(q), " "))
	}
}

func writeThemes(sb *strings.Builder, themes []models.Theme) {
	if len(themes) == 0 {
		return
	}

	sb.WriteString("## Themes\n\n")
	sb.WriteString("| Theme | Tier | Resonance |\n")
	sb.WriteString("|---|---|---|\n")
	for _, theme := range themes {
		resonance := string(theme.Resonance)
		if resonance == "" {
			resonance = "n/a"
		}
		tier := string(theme.Tier)
		if tier == "" {
			tier = "-"
		}
		fmt.Fprintf(sb, "| %s | %s | %s |\n", escapeCell(theme.Name), tier, resonance)
	}
	sb.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
