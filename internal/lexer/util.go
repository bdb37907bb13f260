package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune at the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	c := &lx.cursor
	switch b := c.Peek(); {
	case c.EOF():
		return utf8.RuneError, 0
	case b < utf8.RuneSelf:
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[c.Off:c.Limit])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Advance(uint32(sz)) // #nosec G115 -- rune size is at most 4
}

type byteClass uint8

const (
	classIdentStart byteClass = 1 << iota
	classDigit
	classHex
	classPunct
	classDelim
)

// classes is the ASCII classification table; bytes >= 0x80 have no class.
var classes = func() (t [utf8.RuneSelf]byteClass) {
	mark := func(c byteClass, set string) {
		for i := range len(set) {
			t[set[i]] |= c
		}
	}
	for b := 'a'; b <= 'z'; b++ {
		t[b] |= classIdentStart
		t[b-'a'+'A'] |= classIdentStart
	}
	t['_'] |= classIdentStart
	mark(classDigit|classHex, "0123456789")
	mark(classHex, "abcdefABCDEF")
	// одиночные знаки, как у proc-macro Punct
	mark(classPunct, "=<>!~+-*/%^&|@.,;:#$?'")
	mark(classDelim, "()[]{}")
	return t
}()

func is(c byteClass, b byte) bool {
	return b < utf8.RuneSelf && classes[b]&c != 0
}

func isIdentStartByte(b byte) bool    { return is(classIdentStart, b) }
func isIdentContinueByte(b byte) bool { return is(classIdentStart|classDigit, b) }
func isDec(b byte) bool               { return is(classDigit, b) }
func isHex(b byte) bool               { return is(classHex, b) }
func isPunctByte(b byte) bool         { return is(classPunct, b) }
func isDelimByte(b byte) bool         { return is(classDelim, b) }

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}
