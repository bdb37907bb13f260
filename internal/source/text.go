package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize drops a UTF-8 BOM and turns CRLF pairs into LF. Lone CR bytes
// are content and stay. The returned flags say what was changed.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func indexLines(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return idx
		}
		off += i
		idx = append(idx, toU32(off, "line offset"))
		off++
	}
}

// cleanPath gives every path one slash-separated form for stable output.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the cleaned absolute form of path with forward slashes.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return cleanPath(abs), nil
}

// RelativePath returns path relative to baseDir. Paths that would escape
// baseDir fall back to their absolute form.
func RelativePath(path, baseDir string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cleanPath(abs), nil
	}
	return cleanPath(rel), nil
}

func toU32(n int, what string) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s overflow: %w", what, err))
	}
	return v
}
