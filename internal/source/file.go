package source

import (
	"os"
	"path/filepath"
	"sort"
)

type (
	// FileID indexes a file inside its FileSet; the first file gets 0.
	FileID uint32
	// FileFlags records how the content was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (stdin, tests, host requests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one immutable version of a source text.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // смещения всех '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 { return toU32(len(f.Content), "file content length") }

// FullSpan covers the whole file.
func (f *File) FullSpan() Span { return Span{File: f.ID, End: f.Len()} }

// Text returns the bytes under sp, or "" when sp does not fit the file.
func (f *File) Text(sp Span) string {
	if sp.File != f.ID || sp.Start > sp.End || sp.End > f.Len() {
		return ""
	}
	return string(f.Content[sp.Start:sp.End])
}

// LineCount returns the number of lines; a trailing newline does not open a new one.
func (f *File) LineCount() uint32 {
	n := toU32(len(f.LineIdx), "line count")
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		n++
	}
	return n
}

// LineBounds returns the byte range of a 1-based line without its newline.
func (f *File) LineBounds(line uint32) (start, end uint32, ok bool) {
	n := toU32(len(f.LineIdx), "line count")
	size := f.Len()
	if line == 0 || line > n+1 {
		return 0, 0, false
	}
	if line > 1 {
		start = f.LineIdx[line-2] + 1
	}
	end = size
	if line <= n {
		end = f.LineIdx[line-1]
	}
	if start >= size && line > 1 {
		return 0, 0, false
	}
	return start, end, true
}

// GetLine returns the text of a 1-based line, or "" for lines past the end.
func (f *File) GetLine(line uint32) string {
	start, end, ok := f.LineBounds(line)
	if !ok {
		return ""
	}
	return string(f.Content[start:end])
}

func (f *File) position(off uint32) LineCol {
	// число '\n' строго до off и есть номер строки (0-based)
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: toU32(line+1, "line number"), Col: off - lineStart + 1}
}

// PathStyle selects how FormatPath renders a file path.
type PathStyle uint8

const (
	// PathAuto keeps short or relative paths and shortens long absolute ones.
	PathAuto PathStyle = iota
	PathAbsolute
	PathRelative
	PathBase
)

// autoPathLimit is the length above which PathAuto prints only the basename.
const autoPathLimit = 40

// FormatPath renders f.Path in the given style. baseDir is used by
// PathRelative; an empty baseDir means the working directory.
func (f *File) FormatPath(style PathStyle, baseDir string) string {
	switch style {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathRelative:
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBase:
		return filepath.Base(f.Path)
	case PathAuto:
		if filepath.IsAbs(f.Path) && len(f.Path) >= autoPathLimit {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}
