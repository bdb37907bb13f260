package seq

import "seq/internal/tree"

// cursor walks one sibling list. Lookahead never consumes; a successful
// match consumes exactly the tokens it matched.
type cursor struct {
	toks []tree.Token
	pos  int
}

func newCursor(toks []tree.Token) *cursor {
	return &cursor{toks: toks}
}

func (c *cursor) eof() bool { return c.pos >= len(c.toks) }

// peek returns the token n positions ahead of the current one.
func (c *cursor) peek(n int) (tree.Token, bool) {
	i := c.pos + n
	if i < 0 || i >= len(c.toks) {
		return tree.Token{}, false
	}
	return c.toks[i], true
}

func (c *cursor) next() tree.Token {
	t := c.toks[c.pos]
	c.pos++
	return t
}

func (c *cursor) advance(n int) { c.pos += n }

// rest returns the unconsumed tokens.
func (c *cursor) rest() []tree.Token { return c.toks[c.pos:] }

// atPaste matches `A ~ ident` and returns A.
func (c *cursor) atPaste(ident string) (tree.Token, bool) {
	a, ok := c.peek(0)
	if !ok || a.Kind != tree.Ident {
		return tree.Token{}, false
	}
	if tilde, ok := c.peek(1); !ok || !tilde.IsPunct('~') {
		return tree.Token{}, false
	}
	if b, ok := c.peek(2); !ok || !b.IsIdent(ident) {
		return tree.Token{}, false
	}
	return a, true
}

// atMarker matches `# ( ... ) *` and returns the parenthesized group.
func (c *cursor) atMarker() (tree.Token, bool) {
	if hash, ok := c.peek(0); !ok || !hash.IsPunct('#') {
		return tree.Token{}, false
	}
	g, ok := c.peek(1)
	if !ok || !g.IsGroup(tree.Paren) {
		return tree.Token{}, false
	}
	if star, ok := c.peek(2); !ok || !star.IsPunct('*') {
		return tree.Token{}, false
	}
	return g, true
}

// atSite matches `macro ! Group` and returns the group.
func (c *cursor) atSite(macro string) (tree.Token, bool) {
	if name, ok := c.peek(0); !ok || !name.IsIdent(macro) {
		return tree.Token{}, false
	}
	if bang, ok := c.peek(1); !ok || !bang.IsPunct('!') || bang.Spacing == tree.Joint {
		return tree.Token{}, false
	}
	g, ok := c.peek(2)
	if !ok || g.Kind != tree.Group {
		return tree.Token{}, false
	}
	return g, true
}
