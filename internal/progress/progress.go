// Package progress draws a progress bar while many pseudocode files lift.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Tracker wraps a progress bar for file processing.
type Tracker struct {
	bar   *progressbar.ProgressBar
	w     io.Writer
	label string
}

// Enabled reports whether a bar should be drawn on stderr: there must be
// more than one file and stderr must be a terminal.
func Enabled(files int) bool {
	if files < 2 {
		return false
	}
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NewTracker creates a progress bar on stderr.
func NewTracker(label string, total int) *Tracker {
	return NewWriterTracker(os.Stderr, label, total)
}

// NewWriterTracker creates a progress bar on w.
func NewWriterTracker(w io.Writer, label string, total int) *Tracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription(label),
		progressbar.OptionUseANSICodes(true),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	return &Tracker{bar: bar, w: w, label: label}
}

// Tick increments the progress by 1. Safe for concurrent use.
func (t *Tracker) Tick() {
	t.bar.Add(1)
}

// FinishSuccess clears the bar completely (no output).
func (t *Tracker) FinishSuccess() {
	t.bar.Finish()
	t.bar.Clear()
}

// FinishError clears the bar and reports how many files failed.
func (t *Tracker) FinishError(failed int) {
	t.bar.Finish()
	t.bar.Clear()
	fmt.Fprintf(t.w, "  %s: %d file(s) failed\n", t.label, failed)
}
