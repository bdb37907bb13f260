package token

import (
	"seq/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Joint is set on a Punct immediately followed by another Punct.
	Joint   bool
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is the punctuation character ch.
func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

// IsOpenDelim reports whether the token opens a group.
func (t Token) IsOpenDelim() bool {
	return t.IsPunct('(') || t.IsPunct('[') || t.IsPunct('{')
}

// IsCloseDelim reports whether the token closes a group.
func (t Token) IsCloseDelim() bool {
	return t.IsPunct(')') || t.IsPunct(']') || t.IsPunct('}')
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
