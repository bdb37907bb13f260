package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"seq/internal/source"
)

// goldenLine is one rendered entry: `<sev> <code> <path>:<line>:<col> <msg>`.
// Notes become their own lines with severity "note".
type goldenLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l goldenLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders diagnostics one per line, sorted by
// position, so expansion tests can compare against checked-in files.
// Diagnostics pointing into files unknown to fs are skipped.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	lines := collectGolden(diags, fs, includeNotes)
	slices.SortStableFunc(lines, compareGolden)
	return joinGolden(lines)
}

// FormatShortDiagnostics is the same line format in emission order, without notes.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	return joinGolden(collectGolden(diags, fs, false))
}

func collectGolden(diags []Diagnostic, fs *source.FileSet, includeNotes bool) []goldenLine {
	if fs == nil {
		return nil
	}
	var lines []goldenLine
	for i := range diags {
		d := &diags[i]
		code := d.Code.ID()
		if l, ok := goldenAt(fs, d.Primary); ok {
			l.sev, l.code, l.msg = d.Severity.Label(), code, oneLine(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := goldenAt(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", code, oneLine(n.Msg)
				lines = append(lines, l)
			}
		}
	}
	return lines
}

func joinGolden(lines []goldenLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.String())
	}
	return b.String()
}

// goldenAt fills the position part of a line.
func goldenAt(fs *source.FileSet, sp source.Span) (goldenLine, bool) {
	file := fs.Get(sp.File)
	if file == nil {
		return goldenLine{}, false
	}
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(file.FormatPath(source.PathRelative, fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return goldenLine{path: path, line: start.Line, col: start.Col}, true
}

// oneLine folds any line breaks so each entry stays on a single line.
func oneLine(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
