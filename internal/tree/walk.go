package tree

// Walk visits every token depth-first, left to right. Returning false from
// fn skips the children of a group.
func Walk(toks []Token, fn func(t *Token) bool) {
	for i := range toks {
		if fn(&toks[i]) && toks[i].Kind == Group {
			Walk(toks[i].Inner, fn)
		}
	}
}

// Count returns the number of tokens in the forest, groups included.
func Count(toks []Token) int {
	n := 0
	Walk(toks, func(*Token) bool {
		n++
		return true
	})
	return n
}

// Equal compares two forests structurally. Spans and trivia are ignored.
func Equal(a, b []Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Kind != y.Kind || x.Text != y.Text {
			return false
		}
		switch x.Kind {
		case Punct:
			if x.Spacing != y.Spacing {
				return false
			}
		case Group:
			if x.Delim != y.Delim || !Equal(x.Inner, y.Inner) {
				return false
			}
		}
	}
	return true
}

// Clone deep-copies a forest so that the result shares no slices with toks.
func Clone(toks []Token) []Token {
	if toks == nil {
		return nil
	}
	out := make([]Token, len(toks))
	for i, t := range toks {
		if t.Kind == Group {
			t.Inner = Clone(t.Inner)
		}
		out[i] = t
	}
	return out
}
