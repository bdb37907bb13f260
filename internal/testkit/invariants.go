package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"seq/internal/source"
	"seq/internal/tree"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed stream:
// 1) every span is non-inverted, belongs to sf and lies within its content
// 2) a group's children lie between its opening and closing delimiters
// 3) siblings appear in source order without overlapping
func CheckSpanInvariants(st *tree.Stream, sf *source.File) error {
	if st == nil || sf == nil {
		return fmt.Errorf("nil stream or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if st.EOF.Start != lenContent {
		return fmt.Errorf("EOF span %v is not at end of content (%d)", st.EOF, lenContent)
	}
	bounds := source.Span{File: sf.ID, Start: 0, End: lenContent}
	return checkLevel(st.Tokens, bounds)
}

func checkLevel(toks []tree.Token, bounds source.Span) error {
	var prevEnd uint32
	for i, tok := range toks {
		if err := checkSpan(tok.Span, bounds); err != nil {
			return fmt.Errorf("%s #%d: %w", tok.Kind, i, err)
		}
		if i > 0 && tok.Span.Start < prevEnd {
			return fmt.Errorf("%s #%d at %v overlaps previous sibling ending at %d", tok.Kind, i, tok.Span, prevEnd)
		}
		prevEnd = tok.FullSpan().End
		if tok.Kind != tree.Group {
			continue
		}
		// незакрытая группа получает пустой Close в конце ввода
		if err := checkSpan(tok.Close, bounds); err != nil {
			return fmt.Errorf("group #%d close: %w", i, err)
		}
		if tok.Close.Start < tok.Span.End {
			return fmt.Errorf("group #%d closes at %v before it opens at %v", i, tok.Close, tok.Span)
		}
		inner := source.Span{File: bounds.File, Start: tok.Span.End, End: tok.Close.Start}
		if err := checkLevel(tok.Inner, inner); err != nil {
			return fmt.Errorf("in group #%d: %w", i, err)
		}
	}
	return nil
}

func checkSpan(sp, bounds source.Span) error {
	if sp.End < sp.Start {
		return fmt.Errorf("inverted span %v", sp)
	}
	if sp.File != bounds.File {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, bounds.File)
	}
	if !bounds.Contains(sp) {
		return fmt.Errorf("span %v is outside %v", sp, bounds)
	}
	return nil
}

// CheckProvenance verifies that an expansion only reuses source positions:
// every span in out (group delimiters included) is the span of some token
// of in. Pasted identifiers and substituted integers keep the span of the
// token they were made from, so a fabricated span means lost provenance.
func CheckProvenance(in, out []tree.Token) error {
	known := make(map[source.Span]struct{})
	tree.Walk(in, func(t *tree.Token) bool {
		known[t.Span] = struct{}{}
		if t.Kind == tree.Group {
			known[t.Close] = struct{}{}
		}
		return true
	})
	var err error
	tree.Walk(out, func(t *tree.Token) bool {
		if err != nil {
			return false
		}
		if _, ok := known[t.Span]; !ok {
			err = fmt.Errorf("%s %q has span %v not present in the input", t.Kind, t.Text, t.Span)
			return false
		}
		if t.Kind == tree.Group {
			if _, ok := known[t.Close]; !ok {
				err = fmt.Errorf("group %s closes at %v, not present in the input", t.Delim, t.Close)
				return false
			}
		}
		return true
	})
	return err
}
