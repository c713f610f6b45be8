package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NormalizeText strips HTML markup from scraped post bodies and collapses
// whitespace. Plain text passes through with only whitespace collapsed.
func NormalizeText(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return collapseWhitespace(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		// Not parseable as HTML; score the raw text instead
		return collapseWhitespace(text)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml(" ")
	doc.Find("p, div, li, blockquote, h1, h2, h3, h4, h5, h6, tr").Each(func(i int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return collapseWhitespace(doc.Text())
}

func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
