package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"seq/internal/diag"
	"seq/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note, caret, gutter, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		caret:  mk(color.FgGreen, color.Bold),
		gutter: mk(color.FgBlue),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts, pal)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", n)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	loc := locationString(d.Primary, fs, opts.PathMode)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.bold.Sprint(loc),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.bold.Sprint(d.Code.ID()),
		d.Message)
	writeSnippet(w, d.Primary, fs, opts, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s %s: %s\n", pal.note.Sprint("note:"), locationString(n.Span, fs, opts.PathMode), n.Msg)
			writeSnippet(w, n.Span, fs, opts, pal)
		}
	}

	if opts.ShowFixes {
		for i, fix := range d.Fixes {
			fmt.Fprintf(w, "%s %s\n", pal.caret.Sprintf("fix #%d:", i+1), fix.Title)
			for _, edit := range fix.Edits {
				fmt.Fprintf(w, "  edit %s apply=%q\n", locationString(edit.Span, fs, opts.PathMode), edit.NewText)
				if !opts.ShowPreview {
					continue
				}
				preview, err := buildFixEditPreview(fs, edit)
				if err != nil {
					continue
				}
				fmt.Fprintln(w, "  preview:")
				for _, l := range preview.before {
					fmt.Fprintf(w, "    %s\n", pal.err.Sprint("- "+l))
				}
				for _, l := range preview.after {
					fmt.Fprintf(w, "    %s\n", pal.caret.Sprint("+ "+l))
				}
			}
		}
	}
}

func locationString(sp source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, f, mode), start.Line, start.Col)
}

// writeSnippet prints the primary line (plus Context lines before it) and
// a caret line under the span. Widths are measured in terminal cells.
func writeSnippet(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	if start.Line == 0 {
		return
	}
	first := start.Line
	if opts.Context > 0 {
		first = uint32(max(1, int(start.Line)-int(opts.Context)))
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		text := expandTabs(f.GetLine(ln))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(start.Line)
	startCol := clampCol(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = clampCol(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:startCol]))
	width := max(1, runewidth.StringWidth(expandTabs(line[startCol:endCol])))
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(marker))
}

func clampCol(c, n int) int {
	if c < 0 {
		return 0
	}
	if c > n {
		return n
	}
	return c
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
