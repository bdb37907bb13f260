package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"seq/internal/diag"
	"seq/internal/source"
	"seq/internal/trace"
)

// loadedInput is one collected path after the sequential load step.
type loadedInput struct {
	path string
	id   source.FileID
	err  error
}

// ExpandPaths expands files and directories (recursively collecting *.sq
// files) with up to jobs files in flight. Results follow the sorted file
// order. A file that fails to load yields a result carrying an
// IOLoadFileError diagnostic; the returned error is reserved for
// cancellation and listing failures.
func ExpandPaths(ctx context.Context, paths []string, opts ExpandOptions, jobs int) (*source.FileSet, []*ExpandResult, error) {
	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(commonBase(paths))
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	root, ctx := trace.BeginCtx(ctx, trace.ScopeDriver, "expand-paths")
	defer root.WithExtra("files", strconv.Itoa(len(files))).End("")
	emitQueued(opts.Progress, files)

	inputs := loadAll(ctx, fileSet, files)

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*ExpandResult, len(inputs)) // каждая горутина пишет только свой индекс
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(inputs)))
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if in.err != nil {
				results[i] = loadFailure(in, opts)
				return nil
			}
			results[i] = expandLoaded(gctx, fileSet.Get(in.id), in.path, &opts)
			return nil
		})
	}
	return fileSet, results, g.Wait()
}

// loadAll reads the files one by one so FileIDs follow the file order.
// A failed file still gets an empty virtual entry to carry its diagnostic.
func loadAll(ctx context.Context, fileSet *source.FileSet, files []string) []loadedInput {
	sp, _ := trace.BeginCtx(ctx, trace.ScopePass, string(StageLoad))
	inputs := make([]loadedInput, len(files))
	failed := 0
	for i, path := range files {
		id, err := loadInput(fileSet, path)
		if err != nil {
			failed++
			id = fileSet.AddVirtual(path, nil)
		}
		inputs[i] = loadedInput{path: path, id: id, err: err}
	}
	sp.End(fmt.Sprintf("%d files, %d failed", len(files)-failed, failed))
	return inputs
}

func loadFailure(in loadedInput, opts ExpandOptions) *ExpandResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: in.id}, "failed to load file: "+in.err.Error()))
	emit(opts.Progress, in.path, StageLoad, StatusError, in.err, 0)
	return &ExpandResult{Path: in.path, FileID: in.id, Bag: bag}
}

// commonBase picks the directory used for relative paths in reports: the
// single directory argument, or the working directory.
func commonBase(paths []string) string {
	if len(paths) != 1 || paths[0] == StdinPath {
		return "."
	}
	if isDir(paths[0]) {
		return filepath.Clean(paths[0])
	}
	return filepath.Dir(paths[0])
}
