package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/diag"
	"seq/internal/source"
)

func decodeJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, opts))
	var output DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output), buf.String())
	return output
}

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sq", []byte("fn main() {\n\tseq!(N 0..2 {});\n}"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SeqExpectIn, source.Span{File: fileID, Start: 20, End: 21}, "expected `in` after `N`"))

	output := decodeJSON(t, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename})
	require.Equal(t, 1, output.Count)
	d := output.Diagnostics[0]
	assert.Equal(t, "ERROR", d.Severity)
	assert.Equal(t, "SEQ3003", d.Code)
	assert.Equal(t, "test.sq", d.Location.File)
	assert.Equal(t, uint32(20), d.Location.StartByte)
	assert.Equal(t, uint32(21), d.Location.EndByte)
	assert.Equal(t, uint32(2), d.Location.StartLine)
	assert.Equal(t, uint32(9), d.Location.StartCol)
}

func TestJSONWithNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sq", []byte("#(a)* #(b)*"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SeqMultipleMarkers, source.Span{File: fileID, Start: 6, End: 7}, "more than one marker").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "first marker is here").
		WithFixSuggestion(diag.Fix{Title: "drop the second marker", Edits: []diag.FixEdit{{Span: source.Span{File: fileID, Start: 5, End: 11}}}}))

	output := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename, IncludeNotes: true, IncludeFixes: true})
	d := output.Diagnostics[0]
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "first marker is here", d.Notes[0].Message)
	require.Len(t, d.Fixes, 1)
	assert.Equal(t, "drop the second marker", d.Fixes[0].Title)
	require.Len(t, d.Fixes[0].Edits, 1)
	assert.Empty(t, d.Fixes[0].Edits[0].NewText)
}

func TestJSONWithoutPositionsAndLimit(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.sq", []byte("`````"))

	bag := diag.NewBag(10)
	for i := range uint32(5) {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "unknown character"))
	}

	output := decodeJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 3})
	assert.Equal(t, 3, output.Count)
	assert.Len(t, output.Diagnostics, 3)
	// позиции строк опущены, байтовые остаются
	assert.Zero(t, output.Diagnostics[1].Location.StartLine)
	assert.Equal(t, uint32(1), output.Diagnostics[1].Location.StartByte)
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.sq", []byte("x"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Error"))

	tests := []struct {
		mode     PathMode
		expected string
	}{
		{PathModeAbsolute, "/home/user/project/src/main.sq"},
		{PathModeRelative, "src/main.sq"},
		{PathModeBasename, "main.sq"},
	}
	for _, tt := range tests {
		output := decodeJSON(t, bag, fs, JSONOpts{PathMode: tt.mode})
		assert.Equal(t, tt.expected, output.Diagnostics[0].Location.File)
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("example.sq", []byte("seq!(N in 0..2 { x })"))

	bag := diag.NewBag(2)
	insert := source.Span{File: fileID, Start: 21, End: 21}
	bag.Add(diag.New(diag.SevWarning, diag.SeqInfo, insert, "missing semicolon").
		WithFixSuggestion(diag.Fix{Title: "insert semicolon", Edits: []diag.FixEdit{{Span: insert, NewText: ";"}}}))

	output := decodeJSON(t, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	edit := output.Diagnostics[0].Fixes[0].Edits[0]
	assert.Equal(t, []string{"seq!(N in 0..2 { x })"}, edit.BeforeLines)
	assert.Equal(t, []string{"seq!(N in 0..2 { x });"}, edit.AfterLines)
}
