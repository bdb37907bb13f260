package lexer

import (
	"strings"
	"unicode/utf8"

	"seq/internal/diag"
	"seq/internal/token"
)

// scanString: "..." с escape-последовательностями. Содержимое не валидируем,
// только ищем закрывающую кавычку; переводы строк внутри допустимы.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	return lx.finishQuoted(start)
}

func (lx *Lexer) finishQuoted(start Mark) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '"' {
			return lx.emitLiteral(start, token.StringLit)
		}
		if b == '\\' {
			// съедаем экранированный байт, глубже не проверяем
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errUnterminated(diag.LexUnterminatedString, sp, "unterminated string literal", `"`)
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// atPrefixedString reports whether the cursor sits on b"..", r"..", br"..",
// or a raw string with hashes (r#"..."#).
func (lx *Lexer) atPrefixedString() bool {
	i := uint32(0)
	if lx.cursor.PeekAt(i) == 'b' {
		i++
		if lx.cursor.PeekAt(i) == '"' {
			return true
		}
	}
	if lx.cursor.PeekAt(i) != 'r' {
		return false
	}
	i++
	for lx.cursor.PeekAt(i) == '#' {
		i++
	}
	return lx.cursor.PeekAt(i) == '"'
}

func (lx *Lexer) scanPrefixedString() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('b') && lx.cursor.Peek() == '"' {
		lx.cursor.Bump()
		return lx.finishQuoted(start)
	}
	lx.cursor.Eat('r')
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	lx.cursor.Bump() // opening '"'

	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			return lx.emitLiteral(start, token.StringLit)
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errUnterminated(diag.LexUnterminatedString, sp, "unterminated raw string literal", `"`+strings.Repeat("#", hashes))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanQuote различает символьный литерал 'x' / '\n' и лайфтайм 'a.
// Лайфтайм — это Joint-пунктуация '\'' за которой идёт обычный Ident.
func (lx *Lexer) scanQuote() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.PeekAt(1) == '\\' {
		lx.cursor.Bump() // '\''
		return lx.finishChar(start)
	}
	off := lx.cursor.Off + 1
	if off < lx.cursor.Limit {
		_, sz := utf8.DecodeRune(lx.file.Content[off:])
		if lx.cursor.PeekAt(1+uint32(sz)) == '\'' {
			lx.cursor.Off += 2 + uint32(sz)
			return lx.emitLiteral(start, token.CharLit)
		}
	}
	lx.cursor.Bump()
	tok := lx.emitPunct(start)
	next := lx.cursor.Peek()
	tok.Joint = isIdentStartByte(next) || next >= utf8RuneSelf
	return tok
}

// scanByteChar handles b'x' and b'\n'.
func (lx *Lexer) scanByteChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // 'b'
	lx.cursor.Bump() // '\''
	return lx.finishChar(start)
}

func (lx *Lexer) finishChar(start Mark) token.Token {
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '\'':
			return lx.emitLiteral(start, token.CharLit)
		case '\\':
			lx.cursor.Bump()
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedChar, sp, "newline in character literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) emitLiteral(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
