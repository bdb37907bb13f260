package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"seq/internal/diag"
	"seq/internal/source"
)

// SourceExt is the extension collected from directories.
const SourceExt = ".sq"

// WriteOptions configure where expansions go.
type WriteOptions struct {
	// OutDir receives one file per input, at the input's path relative to
	// BaseDir. Parent directories are created.
	OutDir  string
	BaseDir string
	// Check leaves the disk alone and only reports whether the output
	// would differ from what OutDir already holds.
	Check bool
	// Progress receives write events keyed like the expansion events.
	Progress ProgressSink
}

// WriteResult captures what happened to one output.
type WriteResult struct {
	Path    string
	Target  string
	Changed bool
	Err     error
}

// WriteOutputs writes every successful expansion under opts.OutDir. Files
// with errors are skipped; a write failure is also reported into the
// file's bag as IOWriteFileError.
func WriteOutputs(ctx context.Context, results []*ExpandResult, opts WriteOptions) ([]WriteResult, error) {
	if opts.OutDir == "" {
		return nil, errors.New("write: no output directory")
	}
	out := make([]WriteResult, 0, len(results))
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if res == nil || res.HasErrors() {
			continue
		}
		emit(opts.Progress, res.Path, StageWrite, StatusWorking, nil, 0)
		target, err := outputPath(res.Path, opts)
		wr := WriteResult{Path: res.Path, Target: target, Err: err}
		if err == nil {
			wr.Changed, wr.Err = writeIfChanged(target, res.Output, opts.Check)
		}
		if wr.Err != nil {
			if res.Bag != nil {
				res.Bag.Add(diag.NewError(diag.IOWriteFileError, source.Span{}, fmt.Sprintf("failed to write %s: %v", target, wr.Err)))
			}
			emit(opts.Progress, res.Path, StageWrite, StatusError, wr.Err, 0)
		} else {
			emit(opts.Progress, res.Path, StageWrite, StatusDone, nil, 0)
		}
		out = append(out, wr)
	}
	return out, nil
}

func outputPath(path string, opts WriteOptions) (string, error) {
	if path == StdinPath {
		return filepath.Join(opts.OutDir, "stdin"+SourceExt), nil
	}
	rel := filepath.Base(path)
	if opts.BaseDir != "" {
		absBase, err := filepath.Abs(opts.BaseDir)
		if err != nil {
			return "", err
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		if r, err := filepath.Rel(absBase, absPath); err == nil && !filepath.IsAbs(r) && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return filepath.Join(opts.OutDir, rel), nil
}

func writeIfChanged(target string, data []byte, check bool) (changed bool, err error) {
	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		changed = !bytes.Equal(existing, data)
	case errors.Is(err, os.ErrNotExist):
		changed = true
	default:
		return false, err
	}
	if check || !changed {
		return changed, nil
	}
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(target); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err := writeFileAtomic(target, data, mode); err != nil {
		return false, err
	}
	return true, nil
}

// CollectSourceFiles expands directories into their *.sq files. Explicit
// file arguments are kept whatever their extension; "-" passes through.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p == StdinPath {
			addFile(p)
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			// ошибку загрузки отдаст ExpandPaths как диагностику
			addFile(p)
			continue
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == SourceExt {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
