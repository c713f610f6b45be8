package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize lower-cases text and folds typographic apostrophes so phrase tables match.
func Normalize(text string) string {
	text = strings.ToLower(text)
	return strings.NewReplacer("’", "'", "‘", "'", "`", "'").Replace(text)
}

// Text is a normalized text prepared for repeated matching against several tables
type Text struct {
	lower string
	words map[string]struct{}
}

// Prepare normalizes text and indexes its words once
func Prepare(text string) Text {
	lower := Normalize(text)
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(lower, isBoundary) {
		words[w] = struct{}{}
	}
	return Text{lower: lower, words: words}
}

// Lower returns the normalized text
func (t Text) Lower() string {
	return t.lower
}

// Contains reports whether a single term matches.
// Single words match whole words only; anything with spaces or punctuation matches as a substring.
func (t Text) Contains(term string) bool {
	term = Normalize(term)
	if term == "" {
		return false
	}
	if isWord(term) {
		_, ok := t.words[term]
		return ok
	}
	return strings.Contains(t.lower, term)
}

// Match returns the terms from table that occur, in table order, without duplicates
func (t Text) Match(table []string) []string {
	var hits []string
	seen := make(map[string]struct{}, len(table))
	for _, term := range table {
		if _, dup := seen[term]; dup {
			continue
		}
		if t.Contains(term) {
			seen[term] = struct{}{}
			hits = append(hits, term)
		}
	}
	return hits
}

// Any reports whether any term from table occurs
func (t Text) Any(table []string) bool {
	for _, term := range table {
		if t.Contains(term) {
			return true
		}
	}
	return false
}

// FollowedBy reports whether a lead-in phrase occurs as whole words with a term
// from table among the next window words after it.
func (t Text) FollowedBy(leadIns, table []string, window int) bool {
	for _, leadIn := range leadIns {
		leadIn = Normalize(leadIn)
		if leadIn == "" {
			continue
		}
		for offset := 0; ; {
			i := strings.Index(t.lower[offset:], leadIn)
			if i < 0 {
				break
			}
			start := offset + i
			end := start + len(leadIn)
			offset = end
			if !boundaryBefore(t.lower, start) || !boundaryAt(t.lower, end) {
				continue
			}
			words := strings.Fields(t.lower[end:])
			if len(words) > window {
				words = words[:window]
			}
			if Prepare(strings.Join(words, " ")).Any(table) {
				return true
			}
		}
	}
	return false
}

// Match is a convenience for one-off scans of raw text
func Match(text string, table []string) []string {
	return Prepare(text).Match(table)
}

func isWord(term string) bool {
	for _, r := range term {
		if isBoundary(r) {
			return false
		}
	}
	return true
}

func isBoundary(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isBoundary(r)
}

func boundaryAt(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isBoundary(r)
}
