package source

import (
	"crypto/sha256"
	"os"
	"sync"
)

// FileSet owns every file version seen by one run and resolves spans into
// line/column positions. The parallel driver loads and resolves files from
// several goroutines, so all methods lock.
type FileSet struct {
	mu     sync.RWMutex
	files  []*File
	latest map[string]FileID
	base   string
}

// NewFileSet creates an empty FileSet resolving relative paths against
// the working directory.
func NewFileSet() *FileSet {
	return NewFileSetWithBase("")
}

// NewFileSetWithBase creates an empty FileSet with a fixed base directory.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), base: baseDir}
}

func (fs *FileSet) SetBaseDir(dir string) {
	fs.mu.Lock()
	fs.base = dir
	fs.mu.Unlock()
}

// BaseDir returns the directory relative paths are computed against,
// falling back to the working directory.
func (fs *FileSet) BaseDir() string {
	fs.mu.RLock()
	base := fs.base
	fs.mu.RUnlock()
	if base != "" {
		return base
	}
	wd, _ := os.Getwd()
	return wd
}

// Add registers already normalized content under path. Every call yields a
// fresh FileID; the path index always points at the newest version.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	f := &File{
		Path:    cleanPath(path),
		Content: content,
		LineIdx: indexLines(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	f.ID = FileID(toU32(len(fs.files), "file count"))
	fs.files = append(fs.files, f)
	fs.latest[f.Path] = f.ID
	return f.ID
}

// Load reads path from disk and adds its normalized content.
func (fs *FileSet) Load(path string) (FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(raw)
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (stdin, tests, host requests) under name,
// normalized the same way Load does.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

// Get returns the file with the given ID, or nil.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	if int(id) < len(fs.files) {
		return fs.files[id]
	}
	return nil
}

func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files)
}

// GetLatest returns the newest FileID registered under path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.latest[cleanPath(path)]
	return id, ok
}

// Resolve converts both ends of span into line/column positions.
// Spans of unknown files resolve to zero positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return f.position(span.Start), f.position(span.End)
}
