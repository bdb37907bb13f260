package format

import (
	"bytes"
	"strings"
)

// Writer is the output buffer of the printer. Indentation is emitted
// lazily in front of the first token of a line; trivia copied from the
// source is written as-is.
type Writer struct {
	buf   bytes.Buffer
	unit  string // один уровень отступа
	depth int
	atBOL bool
}

// NewWriter creates a Writer with room for about sizeHint bytes.
func NewWriter(opt Options, sizeHint int) *Writer {
	opt = opt.withDefaults()
	w := &Writer{unit: strings.Repeat(" ", opt.IndentWidth)}
	if opt.UseTabs {
		w.unit = "\t"
	}
	w.buf.Grow(sizeHint)
	return w
}

func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// Last returns the last byte written, or 0 when nothing was.
func (w *Writer) Last() byte {
	if b := w.buf.Bytes(); len(b) > 0 {
		return b[len(b)-1]
	}
	return 0
}

// WriteString writes token text, indenting first at the start of a line.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	if w.atBOL {
		for range w.depth {
			w.buf.WriteString(w.unit)
		}
	}
	w.WriteRaw(s)
}

// WriteRaw writes s verbatim.
func (w *Writer) WriteRaw(s string) {
	if s == "" {
		return
	}
	w.buf.WriteString(s)
	w.atBOL = s[len(s)-1] == '\n'
}

// Space separates the next token unless the output is empty or already
// ends in whitespace.
func (w *Writer) Space() {
	switch w.Last() {
	case 0, ' ', '\t', '\n':
		return
	}
	w.buf.WriteByte(' ')
}

// Newline ends the current line unless it is already ended.
func (w *Writer) Newline() {
	if w.buf.Len() == 0 {
		return
	}
	if w.Last() != '\n' {
		w.buf.WriteByte('\n')
	}
	w.atBOL = true
}

func (w *Writer) IndentPush() { w.depth++ }

func (w *Writer) IndentPop() { w.depth = max(w.depth-1, 0) }
