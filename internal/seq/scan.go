package seq

import (
	"seq/internal/diag"
	"seq/internal/source"
	"seq/internal/tree"
)

type scanner struct {
	inv    *Invocation
	policy MarkerPolicy
	found  bool
	first  source.Span
	err    *Error
}

// Scan expands `#( ... )*` markers in toks under policy and reports whether
// any marker was expanded. Only marked subtrees see the loop identifier;
// everything else is copied. The error is non-nil only for MarkersReject.
func Scan(toks []tree.Token, inv *Invocation, policy MarkerPolicy) ([]tree.Token, bool, error) {
	s := &scanner{inv: inv, policy: policy}
	out := s.scan(toks)
	if s.err != nil {
		return nil, s.found, s.err
	}
	return out, s.found, nil
}

func (s *scanner) scan(toks []tree.Token) []tree.Token {
	out := make([]tree.Token, 0, len(toks))
	c := newCursor(toks)
	for !c.eof() {
		if g, ok := c.atMarker(); ok && s.accept(c) {
			hash, _ := c.peek(0)
			expanded := repeat(g.Inner, s.inv)
			if len(expanded) > 0 {
				expanded[0].Leading = hash.Leading
			}
			out = append(out, expanded...)
			c.advance(3)
			continue
		}
		t := c.next()
		if t.Kind == tree.Group {
			t = t.WithInner(s.scan(t.Inner))
		}
		out = append(out, t)
	}
	return out
}

// accept decides whether the marker at c is expanded.
func (s *scanner) accept(c *cursor) bool {
	hash, _ := c.peek(0)
	if !s.found {
		s.found = true
		s.first = hash.Span
		return true
	}
	switch s.policy {
	case MarkersAll:
		return true
	case MarkersReject:
		if s.err == nil {
			s.err = errorAt(diag.SeqMultipleMarkers, hash.Span, "more than one `#( ... )*` repetition marker")
			s.err.Notes = []diag.Note{{Span: s.first, Msg: "first marker is here"}}
		}
	}
	return false
}
