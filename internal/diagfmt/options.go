package diagfmt

import "seq/internal/source"

// PathMode selects how file paths appear in rendered diagnostics.
type PathMode = source.PathStyle

const (
	PathModeAuto     = source.PathAuto
	PathModeAbsolute = source.PathAbsolute
	PathModeRelative = source.PathRelative
	PathModeBasename = source.PathBase
)

// PrettyOpts configures the human-readable renderer.
type PrettyOpts struct {
	Color    bool
	Context  int8 // строк контекста вокруг сниппета
	PathMode PathMode
	// Width ограничивает ширину строки; 0 - без ограничения
	Width       uint8
	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool
}

// JSONOpts configures the machine-readable renderer.
type JSONOpts struct {
	PathMode         PathMode
	IncludePositions bool
	IncludeNotes     bool
	IncludeFixes     bool
	IncludePreviews  bool
	// Max cuts the printed list only; the bag keeps everything.
	Max int
}

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode, base)
}
