package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/qepting91/reddit-annotator/internal/domain"
	"github.com/qepting91/reddit-annotator/internal/ingest"
)

// TagSeparator joins multiple tag keys inside one cell.
const TagSeparator = ";"

var untaggedColumns = []string{
	"platform", "date", "post_title", "post_id", "author",
	"upvotes", "post_url", "comment_count", "post_body", "sentiment",
}

var taggedColumns = append(append([]string{}, untaggedColumns...), "subject", "problem")

// Columns returns the fixed column order for mode.
func Columns(mode domain.Mode) []string {
	if mode.Tagged() {
		return append([]string{}, taggedColumns...)
	}
	return append([]string{}, untaggedColumns...)
}

// Row renders a record keyed by column name.
func Row(r domain.Record) map[string]string {
	return map[string]string{
		"platform":      r.Platform,
		"date":          r.Date,
		"post_title":    r.Title,
		"post_id":       r.PostID,
		"author":        r.Author,
		"upvotes":       strconv.Itoa(r.Upvotes),
		"post_url":      r.URL,
		"comment_count": strconv.Itoa(r.CommentCount),
		"post_body":     r.Body,
		"sentiment":     strconv.FormatFloat(r.Sentiment, 'f', -1, 64),
		"subject":       strings.Join(r.Subject, TagSeparator),
		"problem":       strings.Join(r.Problem, TagSeparator),
	}
}

// WriterService owns one destination CSV. The file is opened and closed
// within each call.
type WriterService struct {
	FilePath string
}

// Create truncates the file and writes the header for mode.
func (w *WriterService) Create(mode domain.Mode) error {
	f, err := os.OpenFile(w.FilePath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns(mode)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Append writes one row per record. Columns follow the file's existing
// header; a missing or empty file first gets the header for mode. Cells a
// record has no value for are written empty. An unset path is a no-op.
func (w *WriterService) Append(records []domain.Record, mode domain.Mode) error {
	if w.FilePath == "" {
		return nil
	}

	header, err := ingest.ReadHeader(w.FilePath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read csv header: %w", err)
	}

	f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if len(header) == 0 {
		header = Columns(mode)
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	for _, r := range records {
		values := Row(r)
		row := make([]string, len(header))
		for i, col := range header {
			row[i] = values[col]
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
