package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// Row is one CSV record keyed by canonical column name.
type Row map[string]string

// ReadHeader returns the canonical column names of the file's first row,
// or nil when the file is empty.
func ReadHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1
	record, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return canonicalHeader(record), nil
}

// LoadRows reads a CSV with a header row. Malformed rows are skipped.
func LoadRows(path string) ([]string, []Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var header []string
	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if header == nil {
			header = canonicalHeader(record)
			continue
		}

		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// Files written by the first release used "source" for the platform column.
func canonicalHeader(record []string) []string {
	cols := make([]string, len(record))
	for i, c := range record {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "source" {
			c = "platform"
		}
		cols[i] = c
	}
	return cols
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
