package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"seq/internal/diag"
	"seq/internal/format"
	"seq/internal/source"
	"seq/internal/token"
	"seq/internal/trace"
	"seq/internal/tree"
	"seq/internal/wire"
)

// ServeHandler answers host requests with the options of one session.
// Every request is independent: a fresh FileSet and Bag per request.
func ServeHandler(opts ExpandOptions) wire.Handler {
	return func(ctx context.Context, req *wire.Request) *wire.Response {
		sp, ctx := trace.BeginCtx(ctx, trace.ScopeFile, fmt.Sprintf("request:%d", req.ID))
		resp := serveOne(ctx, req, &opts)
		sp.WithExtra("sites", fmt.Sprint(resp.Sites)).End(fmt.Sprintf("%d diagnostics", len(resp.Diagnostics)))
		return resp
	}
}

func serveOne(ctx context.Context, req *wire.Request, opts *ExpandOptions) *wire.Response {
	name := req.Path
	if name == "" {
		name = fmt.Sprintf("<request %d>", req.ID)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, []byte(req.Source)))

	bag := diag.NewBag(opts.MaxDiagnostics)
	r := newFileReporter(ctx, bag)

	var (
		toks     []tree.Token
		eoi      source.Span
		trailing []token.Trivia
	)
	if len(req.Tokens) > 0 {
		var err error
		toks, err = wire.ToTree(req.Tokens, file.ID)
		if err != nil {
			return &wire.Response{Error: fmt.Sprintf("bad tokens: %v", err)}
		}
		eoi = endOfInput(toks, file)
	} else {
		st := tree.Parse(file, r)
		toks, eoi, trailing = st.Tokens, st.EOF, st.Trailing
	}

	// фрагмент можно запросить для одного запроса, не меняя сессию
	o := *opts
	o.Fragment = opts.Fragment || req.Fragment
	res := expandStream(ctx, toks, eoi, &o, r)
	return &wire.Response{
		Tokens:      wire.FromTree(res.Tokens),
		Text:        string(format.Print(res.Tokens, trailing, opts.Format)),
		Sites:       res.Sites,
		Diagnostics: wire.FromBag(bag),
	}
}

// endOfInput is where "missing token" errors point for host-built trees:
// the end of the source when the host sent it, else just past the last token.
func endOfInput(toks []tree.Token, file *source.File) source.Span {
	if n, err := safecast.Conv[uint32](len(file.Content)); err == nil && n > 0 {
		return source.Span{File: file.ID, Start: n, End: n}
	}
	if len(toks) == 0 {
		return source.Span{File: file.ID}
	}
	return toks[len(toks)-1].FullSpan().EndPoint()
}
