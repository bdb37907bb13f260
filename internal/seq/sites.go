package seq

import (
	"errors"

	"seq/internal/diag"
	"seq/internal/source"
	"seq/internal/tree"
)

// Result of expanding the sites of one token forest.
type Result struct {
	Tokens []tree.Token
	// Sites counts successfully expanded invocations, nested ones included.
	Sites  int
	Failed int
}

// ExpandSites replaces every `macro ! Group` use site in toks with its
// expansion. Sites are found inside groups too, and sites produced by an
// expansion are expanded again up to opts.MaxDepth levels. A failing site
// is reported to r and removed from the output.
func ExpandSites(toks []tree.Token, opts Options, r diag.Reporter) Result {
	x := &siteExpander{opts: opts.withDefaults(), r: r}
	out := x.expand(toks, 0)
	return Result{Tokens: out, Sites: x.sites, Failed: x.failed}
}

// ExpandFragment treats the whole forest as a single invocation body
// (`N in 0..3 { ... }`), then expands any sites left in the output.
func ExpandFragment(toks []tree.Token, eoi source.Span, opts Options, r diag.Reporter) Result {
	x := &siteExpander{opts: opts.withDefaults(), r: r}
	inv, err := ParseInvocation(toks, eoi)
	if err != nil {
		x.fail(err)
		return Result{Failed: x.failed}
	}
	out, err := Expand(inv, x.opts)
	if err != nil {
		x.fail(err)
		return Result{Failed: x.failed}
	}
	if len(out) > 0 && len(toks) > 0 {
		out[0].Leading = toks[0].Leading
	}
	x.sites++
	out = x.expand(out, 1)
	return Result{Tokens: out, Sites: x.sites, Failed: x.failed}
}

type siteExpander struct {
	opts   Options
	r      diag.Reporter
	sites  int
	failed int
}

func (x *siteExpander) expand(toks []tree.Token, depth int) []tree.Token {
	out := make([]tree.Token, 0, len(toks))
	c := newCursor(toks)
	for !c.eof() {
		g, ok := c.atSite(x.opts.Macro)
		if !ok {
			t := c.next()
			if t.Kind == tree.Group {
				t = t.WithInner(x.expand(t.Inner, depth))
			}
			out = append(out, t)
			continue
		}

		name, _ := c.peek(0)
		c.advance(3)
		if g.Delim != tree.Brace {
			if semi, ok := c.peek(0); ok && semi.IsPunct(';') {
				c.advance(1)
			}
		}

		if depth >= x.opts.MaxDepth {
			x.fail(errorAt(diag.SeqRecursionLimit, name.Span.Cover(g.FullSpan()),
				"expansion depth limit of %d reached", x.opts.MaxDepth))
			continue
		}

		inv, err := ParseInvocation(g.Inner, g.Close)
		if err != nil {
			x.fail(err)
			continue
		}
		expanded, err := Expand(inv, x.opts)
		if err != nil {
			x.fail(err)
			continue
		}
		x.sites++
		expanded = x.expand(expanded, depth+1)
		if len(expanded) > 0 {
			expanded[0].Leading = name.Leading
		}
		out = append(out, expanded...)
	}
	return out
}

func (x *siteExpander) fail(err error) {
	x.failed++
	var se *Error
	if !errors.As(err, &se) {
		se = &Error{Code: diag.SeqMalformedHeader, Msg: err.Error()}
	}
	se.Diagnostic().Report(x.r)
}
