package render

import (
	"strings"
)

// writer accumulates flattened output and owns all indentation state.
// Indentation is emitted lazily, before the first non-newline byte of a line,
// so blank lines stay free of trailing spaces.
type writer struct {
	buf         strings.Builder
	indent      int
	atLineStart bool
}

func newWriter() *writer {
	return &writer{}
}

func (w *writer) String() string {
	return w.buf.String()
}

func (w *writer) pushIndent(n int) {
	w.indent += n
}

func (w *writer) popIndent(n int) {
	w.indent -= n
}

// Newline starts a fresh line unless the writer already sits at one.
func (w *writer) Newline() {
	if w.buf.Len() == 0 || w.atLineStart {
		return
	}
	w.buf.WriteByte('\n')
	w.atLineStart = true
}

// WriteString writes s, emitting pending indentation before visible text and
// tracking embedded newlines.
func (w *writer) WriteString(s string) {
	for len(s) > 0 {
		nl := strings.IndexByte(s, '\n')
		if nl < 0 {
			w.writeSegment(s)
			return
		}
		w.writeSegment(s[:nl])
		w.buf.WriteByte('\n')
		w.atLineStart = true
		s = s[nl+1:]
	}
}

func (w *writer) writeSegment(s string) {
	if s == "" {
		return
	}
	if w.atLineStart {
		for i := 0; i < w.indent; i++ {
			w.buf.WriteByte(' ')
		}
		w.atLineStart = false
	}
	w.buf.WriteString(s)
}
