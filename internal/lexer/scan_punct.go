package lexer

import (
	"seq/internal/diag"
	"seq/internal/token"
)

// scanPunct emits exactly one punctuation character. Operators like `..`,
// `->` or `::` are never fused here; instead every character followed
// directly by another punctuation character is marked Joint, which is enough
// for consumers to recognise multi-character operators and to print them
// back without inner spaces.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()
	if !isPunctByte(ch) && !isDelimByte(ch) {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	tok := lx.emitPunct(start)
	if isPunctByte(ch) {
		next := lx.cursor.Peek()
		tok.Joint = isPunctByte(next) && !lx.atCommentStart()
	}
	return tok
}

func (lx *Lexer) emitPunct(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Punct, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// atCommentStart reports whether "//" or "/*" begins at the cursor.
func (lx *Lexer) atCommentStart() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '/' && (b1 == '/' || b1 == '*')
}
