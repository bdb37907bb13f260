package diagfmt

import (
	"io"

	"seq/internal/diag"
	"seq/internal/source"
)

// LocationJSON is a span with an optional line/column resolution.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON is one edit of a fix; the line lists are filled only when
// previews are requested.
type FixEditJSON struct {
	Location    LocationJSON `json:"location"`
	NewText     string       `json:"new_text"`
	BeforeLines []string     `json:"before_lines,omitempty"`
	AfterLines  []string     `json:"after_lines,omitempty"`
}

type FixJSON struct {
	ID            string        `json:"id,omitempty"`
	Title         string        `json:"title"`
	Applicability string        `json:"applicability"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// jsonBuilder carries the options and file set shared by every conversion.
type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (b jsonBuilder) location(sp source.Span) LocationJSON {
	loc := LocationJSON{StartByte: sp.Start, EndByte: sp.End}
	f := b.fs.Get(sp.File)
	if f == nil {
		return loc
	}
	loc.File = displayPath(b.fs, f, b.opts.PathMode)
	if b.opts.IncludePositions {
		start, end := b.fs.Resolve(sp)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (b jsonBuilder) diagnostic(d diag.Diagnostic) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: b.location(d.Primary),
	}
	// тайминги живут в заметках, поэтому для них заметки выводятся всегда
	if b.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, NoteJSON{Message: n.Msg, Location: b.location(n.Span)})
		}
	}
	if b.opts.IncludeFixes {
		for _, f := range d.Fixes {
			out.Fixes = append(out.Fixes, b.fix(f))
		}
	}
	return out
}

func (b jsonBuilder) fix(f diag.Fix) FixJSON {
	out := FixJSON{ID: f.ID, Title: f.Title, Applicability: f.Applicability.String()}
	for _, e := range f.Edits {
		edit := FixEditJSON{Location: b.location(e.Span), NewText: e.NewText}
		if b.opts.IncludePreviews {
			if p, err := buildFixEditPreview(b.fs, e); err == nil {
				edit.BeforeLines, edit.AfterLines = p.before, p.after
			}
		}
		out.Edits = append(out.Edits, edit)
	}
	return out
}

// BuildDiagnosticsOutput converts the bag into the JSON document without
// encoding it, honoring opts.Max.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}
	b := jsonBuilder{fs: fs, opts: opts}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, len(items))}
	for _, d := range items {
		out.Diagnostics = append(out.Diagnostics, b.diagnostic(d))
	}
	out.Count = len(out.Diagnostics)
	return out, nil
}

// JSON writes the diagnostics of bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}
	return encodeIndented(w, out)
}
