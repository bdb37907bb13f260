package lexer

import (
	"golang.org/x/text/unicode/norm"

	"seq/internal/diag"
	"seq/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdent сканирует идентификатор. Ключевых слов на этом уровне нет:
// `in`, `fn`, `struct` и т.д. — обычные Ident, их смысл определяет потребитель.
// Text нормализуется в NFC, чтобы одинаково записанные в разных формах
// идентификаторы сравнивались побайтно.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
	}
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanPunct()
		}
	} else if !isIdentStartRune(r) {
		return lx.scanUnknownRune()
	}
	lx.bumpRune()

	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.file.Content[sp.Start:sp.End]
	text := string(lex)
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanUnknownRune consumes one non-identifier rune and reports it.
func (lx *Lexer) scanUnknownRune() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
