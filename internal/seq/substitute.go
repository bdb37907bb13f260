package seq

import (
	"strconv"

	"seq/internal/tree"
)

// Substitute returns a copy of toks with the loop identifier replaced by
// value. `A ~ ident` becomes the identifier A<value> spanning A; a bare
// ident becomes an unsuffixed integer literal. Groups are rebuilt with the
// same delimiter and spans.
func Substitute(toks []tree.Token, ident string, value int64) []tree.Token {
	out := make([]tree.Token, 0, len(toks))
	suffix := strconv.FormatInt(value, 10)
	c := newCursor(toks)
	for !c.eof() {
		if a, ok := c.atPaste(ident); ok {
			pasted := a
			pasted.Text = a.Text + suffix
			out = append(out, pasted)
			c.advance(3)
			continue
		}
		t := c.next()
		switch {
		case t.IsIdent(ident):
			out = append(out, t.Replace(tree.NewInt(value, t.Span)))
		case t.Kind == tree.Group:
			out = append(out, t.WithInner(Substitute(t.Inner, ident, value)))
		default:
			out = append(out, t)
		}
	}
	return out
}

// repeat concatenates Substitute(toks, ident, i) for every i in the range.
func repeat(toks []tree.Token, inv *Invocation) []tree.Token {
	out := make([]tree.Token, 0, len(toks)*int(min(inv.Len(), 1024)))
	for i := inv.Start; i < inv.End; i++ {
		out = append(out, Substitute(toks, inv.Ident, i)...)
	}
	return out
}
