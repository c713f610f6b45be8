// Package report renders a viability verdict with its pain evidence as JSON, Markdown or HTML.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/painscope/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrUnknownFormat is returned for an output format other than json, markdown or html
var ErrUnknownFormat = errors.New("unknown report format")

// Format is a report output encoding
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts json, markdown (or md) and html
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Report is everything produced by one evaluation
type Report struct {
	RunID      string                     `json:"run_id,omitempty"`
	Verdict    models.ViabilityVerdict    `json:"verdict"`
	Summary    models.PainSummary         `json:"summary"`
	Calibrated models.CalibratedPainScore `json:"calibrated"`
	Themes     []models.Theme             `json:"themes"`
}

// Render writes the report in the requested format
func Render(w io.Writer, report *Report, format Format) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, report)
	case FormatMarkdown:
		_, err := io.WriteString(w, RenderMarkdown(report))
		return err
	case FormatHTML:
		return RenderHTML(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// RenderJSON writes the report as indented JSON
func RenderJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// RenderHTML converts the Markdown report into a standalone HTML page
func RenderHTML(w io.Writer, report *Report) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(report)), &body); err != nil {
		return fmt.Errorf("failed to convert report markdown: %w", err)
	}

	page := fmt.Sprintf(htmlPage, body.String())
	if _, err := io.WriteString(w, page); err != nil {
		return fmt.Errorf("failed to write HTML report: %w", err)
	}
	return nil
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Viability report</title>
<style>
body { font-family: sans-serif; max-width: 56rem; margin: 2rem auto; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.75rem; text-align: left; }
</style>
</head>
<body>
%s</body>
</html>
`
