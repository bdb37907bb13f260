package diagfmt

import (
	"errors"
	"fmt"
	"strings"

	"seq/internal/diag"
	"seq/internal/source"
)

// fixEditPreview shows the whole lines touched by an edit before and after it.
type fixEditPreview struct {
	before []string
	after  []string
}

var errNoPreview = errors.New("edit cannot be previewed")

func buildFixEditPreview(fs *source.FileSet, edit diag.FixEdit) (fixEditPreview, error) {
	var f *source.File
	if fs != nil {
		f = fs.Get(edit.Span.File)
	}
	if f == nil {
		return fixEditPreview{}, fmt.Errorf("%w: file %d is unknown", errNoPreview, edit.Span.File)
	}
	if edit.Span.Start > edit.Span.End || edit.Span.End > f.Len() {
		return fixEditPreview{}, fmt.Errorf("%w: span %v is outside the file", errNoPreview, edit.Span)
	}

	from, to := f.Len(), f.Len()
	start, end := fs.Resolve(edit.Span)
	if s, _, ok := f.LineBounds(start.Line); ok {
		from = s
	}
	if _, e, ok := f.LineBounds(max(end.Line, start.Line)); ok {
		to = e
	}
	from, to = min(from, edit.Span.Start), max(to, edit.Span.End)

	block := f.Text(source.Span{File: f.ID, Start: from, End: to})
	head := block[:edit.Span.Start-from]
	tail := block[edit.Span.End-from:]
	return fixEditPreview{
		before: previewLines(block),
		after:  previewLines(head + edit.NewText + tail),
	}, nil
}

func previewLines(text string) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
