package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Diag writes user-facing diagnostics, normally to stderr.
type Diag struct {
	w       io.Writer
	colored bool
	verbose bool
}

// NewDiag creates a diagnostics writer on stderr.
func NewDiag(colored, verbose bool) *Diag {
	return NewWriterDiag(os.Stderr, colored, verbose)
}

// NewWriterDiag creates a diagnostics writer on w.
func NewWriterDiag(w io.Writer, colored, verbose bool) *Diag {
	return &Diag{w: w, colored: colored, verbose: verbose}
}

func (d *Diag) Warning(format string, args ...any) {
	d.print(color.FgYellow, "WARNING: "+format, args...)
}

func (d *Diag) Error(format string, args ...any) {
	d.print(color.FgRed, "ERROR: "+format, args...)
}

// Debug prints only in verbose mode.
func (d *Diag) Debug(format string, args ...any) {
	if d.verbose {
		d.print(color.Faint, format, args...)
	}
}

func (d *Diag) print(attr color.Attribute, format string, args ...any) {
	if d.colored {
		color.New(attr).Fprintf(d.w, format+"\n", args...)
		return
	}
	fmt.Fprintf(d.w, format+"\n", args...)
}
