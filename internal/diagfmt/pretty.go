// Package diagfmt renders accumulated diagnostics for the CLI. Printing is a
// driver-side concern; the engine only fills the bag.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"glot/internal/diag"
	"glot/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	caretColor   = color.New(color.FgGreen, color.Bold)
)

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(sev.String())
	case diag.SevWarning:
		return warningColor.Sprint(sev.String())
	default:
		return infoColor.Sprint(sev.String())
	}
}

type Options struct {
	// WithNotes includes attached notes under each diagnostic.
	WithNotes bool
}

// Pretty prints diagnostics with source-line context and a caret underline.
// The bag is expected to be sorted.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	for _, d := range bag.Items() {
		printHeading(w, d, fs)
		printContext(w, d.Primary, fs)
		if opts.WithNotes {
			for _, note := range d.Notes {
				start, _ := fs.Resolve(note.Span)
				fmt.Fprintf(w, "  note: %s (line %d)\n", note.Msg, start.Line)
			}
		}
	}
}

// Short prints one line per diagnostic, stable enough for scripting.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	for _, d := range bag.Items() {
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			file.Path, start.Line, start.Col, d.Severity, d.Code, d.Message)
	}
}

func printHeading(w io.Writer, d diag.Diagnostic, fs *source.FileSet) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		file.Path, start.Line, start.Col, severityLabel(d.Severity), d.Code, d.Message)
}

// printContext shows the offending line with a ^~~~ underline. Width
// bookkeeping goes through runewidth so wide runes keep the caret aligned.
func printContext(w io.Writer, span source.Span, fs *source.FileSet) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := file.Line(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", line)

	prefix := safeSlice(line, int(start.Col)-1)
	pad := runewidth.StringWidth(prefix)

	underlineLen := 1
	if !span.Empty() && end.Line == start.Line && end.Col > start.Col {
		marked := safeRange(line, int(start.Col)-1, int(end.Col)-1)
		underlineLen = runewidth.StringWidth(marked)
	}
	underline := "^"
	if underlineLen > 1 {
		underline += strings.Repeat("~", underlineLen-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), caretColor.Sprint(underline))
}

func safeSlice(s string, end int) string {
	if end < 0 {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[:end]
}

func safeRange(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}
