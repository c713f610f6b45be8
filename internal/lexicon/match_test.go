package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains_WordBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want bool
	}{
		{"whole word", "this is hard to use", "hard", true},
		{"prefix of longer word", "I hardly notice it", "hard", false},
		{"suffix of longer word", "the dashboard loads", "hard", false},
		{"punctuation boundary", "Hard! Really hard.", "hard", true},
		{"hate inside whatever", "whatever you think", "hate", false},
		{"issue inside tissue", "I need a tissue", "issue", false},
		{"phrase substring", "I am so fed up with this", "fed up", true},
		{"phrase across case", "At My Wit's End here", "at my wit's end", true},
		{"curly apostrophe", "I’m at my wit’s end", "at my wit's end", true},
		{"hyphenated term", "this is time-consuming", "time-consuming", true},
		{"empty term", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prepare(tt.text).Contains(tt.term))
		})
	}
}

func TestMatch_OrderAndDedup(t *testing.T) {
	table := []string{"slow", "hard", "slow", "confusing"}
	hits := Match("Confusing, slow and hard. So slow.", table)
	assert.Equal(t, []string{"slow", "hard", "confusing"}, hits)
}

func TestMatch_NoHits(t *testing.T) {
	assert.Empty(t, Match("a perfectly pleasant afternoon", High))
	assert.False(t, Prepare("nothing here").Any(Medium))
}

func TestTables_HaveNoBlankEntries(t *testing.T) {
	tables := map[string][]string{
		"high":       High,
		"medium":     Medium,
		"low":        Low,
		"solution":   SolutionSeeking,
		"wtp_strong": WTPStrong,
		"wtp_price":  WTPPricing,
		"wtp_excl":   WTPExclusions,
		"hypo":       NegativeHypothetical,
		"third":      NegativeThirdParty,
		"third_subj": ThirdPartySubjects,
		"resolved":   NegativeResolved,
		"lead_ins":   ResolvedLeadIns,
		"past_pain":  PastPain,
	}
	for name, table := range tables {
		for _, term := range table {
			assert.NotEmpty(t, term, "blank term in %s", name)
			assert.Equal(t, Normalize(term), term, "term %q in %s must be lower case", term, name)
		}
	}
}

func TestFollowedBy(t *testing.T) {
	pain := []string{"hate", "confusing", "problem"}

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"pain right after", "I used to hate invoicing", true},
		{"pain within window", "It used to be so very confusing", true},
		{"pain beyond window", "It used to be a really long and confusing flow", false},
		{"no pain after", "The tool I used to track invoices", false},
		{"pain only before", "I hate the tool I used to track invoices", false},
		{"lead-in inside word", "It was reused to hate nothing", false},
		{"second occurrence counts", "I used to walk. I used to hate it", true},
		{"phrase term after", "It is no longer a problem", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prepare(tt.text).FollowedBy([]string{"used to", "no longer"}, pain, 3)
			assert.Equal(t, tt.want, got)
		})
	}
}
