package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/diag"
	"seq/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("seq!(N 0..3 { N });\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.sq", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SeqExpectIn, source.Span{File: fileID, Start: 7, End: 8}, "expected `in` after `N`"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.sq:1:8"},
		{"Relative path", PathModeRelative, "src/test.sq:1:8"},
		{"Basename only", PathModeBasename, "test.sq:1:8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Color: false, PathMode: tt.mode})
			output := buf.String()

			assert.Contains(t, output, tt.contains)
			assert.Contains(t, output, "ERROR")
			assert.Contains(t, output, "SEQ3003")
			assert.Contains(t, output, "expected `in`")
		})
	}
}

func TestPrettySnippetAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.sq", []byte("x\n\tseq!(N 0..3 { N });\n"))

	bag := diag.NewBag(10)
	// "0" стоит после таба и "seq!(N " на второй строке
	bag.Add(diag.NewError(diag.SeqExpectIn, source.Span{File: fileID, Start: 10, End: 11}, "expected `in`"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, Context: 1})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4, buf.String())
	assert.Equal(t, "a.sq:2:9: ERROR SEQ3003: expected `in`", lines[0])
	assert.Equal(t, "1 | x", lines[1])
	assert.Equal(t, "2 |     seq!(N 0..3 { N });", lines[2])
	assert.Equal(t, "  |            ^", lines[3])
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "界 = seq!(x)"
	fileID := fs.AddVirtual("w.sq", []byte(src))
	bag := diag.NewBag(1)
	start := uint32(strings.Index(src, "seq"))
	bag.Add(diag.NewError(diag.SeqExpectIdent, source.Span{File: fileID, Start: start, End: start + 3}, "boom"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	// 界 занимает две колонки терминала
	assert.Equal(t, "  |      ^~~", lines[2])
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("seq!(N in 0..2 { #(N)* #(N)* })\n")
	fileID := fs.AddVirtual("test.sq", content)

	bag := diag.NewBag(4)
	primary := source.Span{File: fileID, Start: 23, End: 24}
	d := diag.NewError(diag.SeqMultipleMarkers, primary, "more than one marker").
		WithNote(source.Span{File: fileID, Start: 17, End: 18}, "first marker is here").
		WithFixSuggestion(diag.Fix{Title: "remove the second marker", Edits: []diag.FixEdit{{Span: source.Span{File: fileID, Start: 23, End: 28}, NewText: ""}}})
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	assert.Contains(t, output, "note: test.sq:1:18: first marker is here")
	assert.Contains(t, output, "fix #1: remove the second marker")
	assert.Contains(t, output, `apply=""`)
	assert.Contains(t, output, "preview:")
	assert.Contains(t, output, "- seq!(N in 0..2 { #(N)* #(N)* })")
	assert.Contains(t, output, "+ seq!(N in 0..2 { #(N)*  })")
}

func TestPrettyReportsDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("d.sq", []byte("abc"))
	bag := diag.NewBag(1)
	for i := range uint32(3) {
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: i, End: i + 1}, "x"))
	}
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	assert.Contains(t, buf.String(), "... 2 more diagnostic(s) not shown")
}
