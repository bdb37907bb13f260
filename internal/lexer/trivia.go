package lexer

import (
	"strings"

	"seq/internal/diag"
	"seq/internal/token"
)

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isNewline(b byte) bool { return b == '\n' }

func notNewline(b byte) bool { return b != '\n' }

// collectLeadingTrivia moves everything insignificant before the next token
// into lx.hold. Runs of blanks (a lone '\r' counts as one) and runs of
// newlines each become a single piece; comments are kept one per piece.
func (lx *Lexer) collectLeadingTrivia() {
	for {
		start := lx.cursor.Mark()
		var kind token.TriviaKind
		switch {
		case lx.cursor.SkipWhile(isBlank) > 0:
			kind = token.TriviaSpace
		case lx.cursor.SkipWhile(isNewline) > 0:
			kind = token.TriviaNewline
		case lx.cursor.EatPair('/', '/'):
			kind = lx.lineComment()
		case lx.cursor.EatPair('/', '*'):
			kind = lx.blockComment(start)
		default:
			return
		}
		sp := lx.cursor.SpanFrom(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.file.Text(sp)})
	}
}

// lineComment runs to the end of the line. Exactly three slashes make a
// doc comment; four or more are an ordinary comment again.
func (lx *Lexer) lineComment() token.TriviaKind {
	kind := token.TriviaLineComment
	if lx.cursor.Peek() == '/' && lx.cursor.PeekAt(1) != '/' {
		kind = token.TriviaDocLine
	}
	lx.cursor.SkipWhile(notNewline)
	return kind
}

// blockComment consumes a possibly nested /* */ comment whose opener is
// already eaten. An unclosed comment runs to EOF and is reported.
func (lx *Lexer) blockComment(start Mark) token.TriviaKind {
	depth := 1
	for depth > 0 && !lx.cursor.EOF() {
		switch {
		case lx.cursor.EatPair('/', '*'):
			depth++
		case lx.cursor.EatPair('*', '/'):
			depth--
		default:
			lx.cursor.Bump()
		}
	}
	if depth > 0 {
		lx.errUnterminated(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start),
			"unterminated block comment", strings.Repeat("*/", depth))
	}
	return token.TriviaBlockComment
}
