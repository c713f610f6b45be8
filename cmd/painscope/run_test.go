package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/painscope/internal/common"
	"github.com/ternarybob/painscope/internal/models"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	opts := runOptions{
		recordsPath: writeTemp(t, dir, "records.jsonl",
			`{"text": "Reconciling invoices every month is an absolute nightmare.", "engagement_score": 40, "source_id": "1", "source_label": "r/accounting"}
{"text": "I'm fed up, this is a nightmare and completely useless.", "engagement_score": 12, "source_id": "2", "source_label": "r/smallbusiness"}
{"text": "The weather today is pleasant.", "engagement_score": 1, "source_id": "3", "source_label": "r/random"}
`),
		themesPath: writeTemp(t, dir, "themes.yaml", "themes:\n  - name: Invoice reconciliation\n    keywords: [invoices]\n"),
		dimensionsPath: writeTemp(t, dir, "dimensions.yaml",
			"market:\n  score: 7\n  confidence: medium\ncompetition:\n  score: 5\ntiming:\n  score: 6\n"),
	}

	config := common.NewDefaultConfig()
	config.PraiseFilter.Enabled = false

	r, err := run(context.Background(), config, arbor.NewLogger(), opts)
	require.NoError(t, err)

	assert.NotEmpty(t, r.RunID)
	assert.Equal(t, 2, r.Summary.TotalSignals)
	assert.True(t, r.Verdict.IsComplete)
	assert.Equal(t, 4, r.Verdict.AvailableDimensions)
	require.Len(t, r.Themes, 1)
	assert.NotEqual(t, models.ResonanceLevel(""), r.Themes[0].Resonance)
}

func TestRun_MissingRecords(t *testing.T) {
	config := common.NewDefaultConfig()
	config.PraiseFilter.Enabled = false

	_, err := run(context.Background(), config, arbor.NewLogger(), runOptions{
		recordsPath: filepath.Join(t.TempDir(), "missing.json"),
	})
	assert.Error(t, err)
}

func TestNewPraiseFilter_SkipsWithoutKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	config := common.NewDefaultConfig()
	config.Embeddings.APIKey = ""

	assert.Nil(t, newPraiseFilter(context.Background(), config, arbor.NewLogger(), nil))
}
