// Package dashboard renders an HTML sentiment report for a scraped CSV.
package dashboard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/reddit-annotator/internal/ingest"
	"github.com/qepting91/reddit-annotator/internal/sentiment"
	"github.com/qepting91/reddit-annotator/internal/storage"
)

// Summary holds the counts behind the charts.
type Summary struct {
	Labels   map[string]int
	Subjects map[string]int
	Problems map[string]int
}

// Summarize counts sentiment labels and tag keys. Rows without a sentiment
// value are left out of the label counts.
func Summarize(rows []ingest.Row) Summary {
	s := Summary{
		Labels:   map[string]int{},
		Subjects: map[string]int{},
		Problems: map[string]int{},
	}
	for _, r := range rows {
		if v, err := strconv.ParseFloat(strings.TrimSpace(r["sentiment"]), 64); err == nil {
			s.Labels[sentiment.Label(v)]++
		}
		countTags(s.Subjects, r["subject"])
		countTags(s.Problems, r["problem"])
	}
	return s
}

func countTags(into map[string]int, cell string) {
	for _, k := range strings.Split(cell, storage.TagSeparator) {
		if k = strings.TrimSpace(k); k != "" {
			into[k]++
		}
	}
}

// RenderReport writes the charts for rows as one HTML document.
func RenderReport(w io.Writer, title string, rows []ingest.Row) error {
	s := Summarize(rows)

	// 1. Sentiment share
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sentiment Breakdown", Subtitle: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
	)
	var pieItems []opts.PieData
	for _, label := range []string{sentiment.LabelPositive, sentiment.LabelNeutral, sentiment.LabelNegative} {
		pieItems = append(pieItems, opts.PieData{Name: label, Value: s.Labels[label]})
	}
	pie.AddSeries("Posts", pieItems)
	if err := pie.Render(w); err != nil {
		return err
	}

	// 2. Tag frequency
	for _, tags := range []struct {
		name   string
		counts map[string]int
	}{
		{"Subjects", s.Subjects},
		{"Problems", s.Problems},
	} {
		if len(tags.counts) == 0 {
			continue
		}
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: tags.name}))

		keys := sortedKeys(tags.counts)
		barY := make([]opts.BarData, len(keys))
		for i, k := range keys {
			barY[i] = opts.BarData{Value: tags.counts[k]}
		}
		bar.SetXAxis(keys).AddSeries("Mentions", barY)
		if err := bar.Render(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport renders the report for csvPath next to it and returns the
// HTML path.
func WriteReport(csvPath string) (string, error) {
	_, rows, err := ingest.LoadRows(csvPath)
	if err != nil {
		return "", fmt.Errorf("load csv: %w", err)
	}

	out := strings.TrimSuffix(csvPath, filepath.Ext(csvPath)) + ".html"
	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := RenderReport(f, filepath.Base(csvPath), rows); err != nil {
		return "", err
	}
	return out, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
