package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/qepting91/reddit-annotator/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	rows := []ingest.Row{
		{"sentiment": "0.6", "subject": "math;science", "problem": "workload"},
		{"sentiment": "-0.05", "subject": "math"},
		{"sentiment": "0", "subject": ""},
		{"sentiment": ""},
	}

	s := Summarize(rows)

	assert.Equal(t, map[string]int{"Positive": 1, "Negative": 1, "Neutral": 1}, s.Labels)
	assert.Equal(t, map[string]int{"math": 2, "science": 1}, s.Subjects)
	assert.Equal(t, map[string]int{"workload": 1}, s.Problems)
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	rows := []ingest.Row{{"sentiment": "0.9", "subject": "arts"}}

	require.NoError(t, RenderReport(&buf, "out.csv", rows))

	html := buf.String()
	assert.Contains(t, html, "Sentiment Breakdown")
	assert.Contains(t, html, "Subjects")
	assert.NotContains(t, html, "Problems")
	assert.Contains(t, html, `"westeros"`)
	assert.Contains(t, html, "themes/westeros.js")
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "scrape.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("platform,sentiment\nreddit,0.5\n"), 0644))

	out, err := WriteReport(csvPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scrape.html"), out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
