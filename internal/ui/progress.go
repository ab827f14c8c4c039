package ui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress is a counting progress bar for a known total.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress prints title and starts a bar labelled label.
func NewProgress(out io.Writer, total int, title, label string) *Progress {
	fmt.Fprintln(out, title)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
	)
	return &Progress{bar: bar}
}

// Set moves the bar to n items done.
func (p *Progress) Set(n int) {
	_ = p.bar.Set(n)
}

// Finish completes the bar even when fewer items than the total arrived.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}
