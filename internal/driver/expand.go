package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"seq/internal/diag"
	"seq/internal/format"
	"seq/internal/observ"
	"seq/internal/seq"
	"seq/internal/source"
	"seq/internal/token"
	"seq/internal/trace"
	"seq/internal/tree"
)

// ExpandOptions configure the per-file pipeline.
type ExpandOptions struct {
	Seq    seq.Options
	Format format.Options
	// Fragment treats every file as one `N in a..b { ... }` input instead
	// of searching it for use sites.
	Fragment       bool
	MaxDiagnostics int
	// Verify re-parses the printed output and warns when the trees differ.
	Verify bool
	// Timings appends an ObsTimings entry to every file's bag.
	Timings bool

	Cache    *DiskCache
	Progress ProgressSink
	// Timer, when set, accumulates phase durations over all files.
	Timer *observ.Timer
}

// ExpandResult is the outcome for one file.
type ExpandResult struct {
	Path   string
	FileID source.FileID
	// Tokens is nil when Output came from the cache.
	Tokens []tree.Token
	Output []byte
	Sites  int
	Failed int
	Bag    *diag.Bag
	Cached bool
}

func (r *ExpandResult) HasErrors() bool {
	return r != nil && r.Bag != nil && r.Bag.HasErrors()
}

// ExpandFile runs the pipeline for one path ("-" reads Stdin).
func ExpandFile(ctx context.Context, path string, opts ExpandOptions) (*source.FileSet, *ExpandResult, error) {
	fs := source.NewFileSet()
	id, err := loadInput(fs, path)
	if err != nil {
		return nil, nil, err
	}
	return fs, expandLoaded(ctx, fs.Get(id), path, &opts), nil
}

// phaseClock records a stage into the shared timer, the per-file report
// and the progress sink.
type phaseClock struct {
	opts  *ExpandOptions
	local *observ.Timer
	stage Stage
	start time.Time
	span  *trace.Span
	ctx   context.Context
}

func startPhase(ctx context.Context, opts *ExpandOptions, file string, local *observ.Timer, stage Stage) *phaseClock {
	emit(opts.Progress, file, stage, StatusWorking, nil, 0)
	sp, sctx := trace.BeginCtx(ctx, trace.ScopePass, string(stage))
	return &phaseClock{opts: opts, local: local, stage: stage, start: time.Now(), span: sp, ctx: sctx}
}

func (p *phaseClock) end(detail string) {
	d := time.Since(p.start)
	p.span.End(detail)
	p.local.Add(string(p.stage), d)
	if p.opts.Timer != nil {
		p.opts.Timer.Add(string(p.stage), d)
	}
}

func expandLoaded(ctx context.Context, file *source.File, display string, opts *ExpandOptions) *ExpandResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	res := &ExpandResult{Path: display, FileID: file.ID, Bag: bag}
	local := observ.NewTimer()

	fileSpan, ctx := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+display)
	r := newFileReporter(ctx, bag)
	defer func() {
		fileSpan.WithExtra("sites", strconv.Itoa(res.Sites)).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			WithExtra("duplicates", strconv.Itoa(r.Suppressed())).
			End(fmt.Sprintf("%d diagnostics", bag.Len()))
		if opts.Timings {
			recordTimings(bag, display, local.Report())
		}
		status := StatusDone
		if bag.HasErrors() {
			status = StatusError
		}
		emit(opts.Progress, display, "", status, nil, local.Total())
	}()

	var key Digest
	if opts.Cache != nil {
		key = cacheKey(file.Hash, opts)
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			res.Output = payload.Output
			res.Sites = payload.Sites
			res.Cached = true
			trace.PointCtx(ctx, trace.ScopeFile, "cache-hit", display)
			return res
		}
	}

	ph := startPhase(ctx, opts, display, local, StageLex)
	st := tree.Parse(file, r)
	ph.end(fmt.Sprintf("%d trees", len(st.Tokens)))

	ph = startPhase(ctx, opts, display, local, StageExpand)
	out := expandStream(ph.ctx, st.Tokens, st.EOF, opts, r)
	res.Tokens = out.Tokens
	res.Sites = out.Sites
	res.Failed = out.Failed
	ph.end(fmt.Sprintf("%d sites, %d failed", out.Sites, out.Failed))

	ph = startPhase(ctx, opts, display, local, StagePrint)
	res.Output = printStream(res.Tokens, st.Trailing, opts)
	if opts.Verify {
		if ok, msg := format.CheckRoundTrip(res.Tokens, opts.Format); !ok {
			diag.ReportWarning(r, diag.SeqRoundTrip, file.FullSpan().StartPoint(), msg).Emit()
		}
	}
	ph.end(fmt.Sprintf("%d bytes", len(res.Output)))

	if opts.Cache != nil && bag.Len() == 0 {
		// кэш не должен ломать раскрытие: ошибка записи только в трассу
		if err := opts.Cache.Put(key, &DiskPayload{Path: display, Output: res.Output, Sites: res.Sites}); err != nil {
			trace.PointCtx(ctx, trace.ScopeFile, "cache-put-failed", err.Error())
		}
	}
	return res
}

// newFileReporter deduplicates diagnostics into bag and mirrors every
// error as a file-scope trace point, so a trace shows where a file failed.
func newFileReporter(ctx context.Context, bag *diag.Bag) *diag.DedupReporter {
	mirror := diag.ReportFunc(func(d diag.Diagnostic) {
		if d.Severity.AtLeast(diag.SevError) {
			trace.PointCtx(ctx, trace.ScopeFile, "diag:"+d.Code.ID(), fmt.Sprintf("%s %s", d.Primary, d.Message))
		}
	})
	return diag.NewDedupReporter(diag.MultiReporter{diag.BagReporter{Bag: bag}, mirror})
}

// expandStream dispatches on the input mode.
func expandStream(ctx context.Context, toks []tree.Token, eoi source.Span, opts *ExpandOptions, r diag.Reporter) seq.Result {
	var out seq.Result
	if opts.Fragment {
		out = seq.ExpandFragment(toks, eoi, opts.Seq, r)
	} else {
		out = seq.ExpandSites(toks, opts.Seq, r)
	}
	trace.PointCtx(ctx, trace.ScopeSite, "expanded", fmt.Sprintf("sites=%d failed=%d", out.Sites, out.Failed))
	return out
}

func printStream(toks []tree.Token, trailing []token.Trivia, opts *ExpandOptions) []byte {
	return format.Print(toks, trailing, opts.Format)
}
