package lexer

import (
	"seq/internal/diag"
	"seq/internal/source"
	"seq/internal/token"
)

// Lexer turns one file into flat tokens, attaching the trivia in front of
// every token to its Leading list.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	peeked *token.Token
	hold   []token.Trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token. Once the input is exhausted it
// keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if tok := lx.peeked; tok != nil {
		lx.peeked = nil
		return *tok
	}

	lx.collectLeadingTrivia()
	tok := lx.scan()
	if tok.Kind != token.EOF && tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, "token is too long")
		tok.Kind = token.Invalid
	}
	tok.Leading, lx.hold = lx.hold, nil
	return tok
}

func (lx *Lexer) scan() token.Token {
	c := &lx.cursor
	if c.EOF() {
		at := c.Mark()
		return token.Token{Kind: token.EOF, Span: c.SpanFrom(at)}
	}
	switch ch := c.Peek(); {
	case lx.atPrefixedString(): // b"..", r"..", br"..", r#".."#
		return lx.scanPrefixedString()
	case ch == 'b' && c.PeekAt(1) == '\'':
		return lx.scanByteChar()
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		return lx.scanIdent()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanQuote()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	tok := lx.Next()
	lx.peeked = &tok
	return tok
}

// All lexes the rest of the input. The final EOF token is part of the
// result since its Leading holds the trivia at the end of the file.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
