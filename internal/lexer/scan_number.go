package lexer

import (
	"seq/internal/diag"
	"seq/internal/token"
)

// Поддержка: 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10 и
// суффиксы типа (3u8, 10usize, 1.5f32). Суффикс остаётся в Token.Text;
// потребитель сам решает, что с ним делать.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' })
			return lx.finishNumber(start, kind)
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			return lx.finishNumber(start, kind)
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.eatDigits(isHex)
			return lx.finishNumber(start, kind)
		}
	}

	lx.eatDigits(isDec)

	// дробная часть: "1.5", "1." — но не "0..3" и не "x.0.foo"
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		if next != '.' && !isIdentStartByte(next) && next < utf8RuneSelf {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.eatDigits(isDec)
		}
	}

	// экспонента
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		off := uint32(1)
		if s := lx.cursor.PeekAt(1); s == '+' || s == '-' {
			off = 2
		}
		if isDec(lx.cursor.PeekAt(off)) {
			for range off {
				lx.cursor.Bump()
			}
			kind = token.FloatLit
			lx.eatDigits(isDec)
		} else if off == 2 {
			lx.cursor.Bump()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
	}

	return lx.finishNumber(start, kind)
}

// finishNumber consumes an optional type suffix and emits the literal.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if kind == token.IntLit && !hasDigits(text) {
		lx.errLex(diag.LexBadNumber, sp, "integer literal has no digits")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) eatDigits(accept func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !accept(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

// hasDigits reports whether a radix-prefixed literal carries at least one digit.
func hasDigits(text string) bool {
	body := text
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X' ||
		body[1] == 'b' || body[1] == 'B' || body[1] == 'o' || body[1] == 'O') {
		body = body[2:]
		for i := 0; i < len(body); i++ {
			if isHex(body[i]) {
				return true
			}
			if body[i] != '_' {
				return false
			}
		}
		return false
	}
	return len(body) > 0 && isDec(body[0])
}
