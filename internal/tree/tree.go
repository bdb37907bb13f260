package tree

import (
	"fmt"
	"strconv"
	"strings"

	"seq/internal/source"
	"seq/internal/token"
)

// Kind is the variant tag of a tree Token.
type Kind uint8

const (
	Ident Kind = iota
	Int
	Literal
	Punct
	Group
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "Ident"
	case Int:
		return "Int"
	case Literal:
		return "Literal"
	case Punct:
		return "Punct"
	case Group:
		return "Group"
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Spacing says whether a Punct is glued to the following punctuation.
type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}

// Delimiter of a Group.
type Delimiter uint8

const (
	Paren Delimiter = iota
	Bracket
	Brace
)

// Open returns the opening character of the delimiter.
func (d Delimiter) Open() byte {
	switch d {
	case Bracket:
		return '['
	case Brace:
		return '{'
	default:
		return '('
	}
}

// Close returns the closing character of the delimiter.
func (d Delimiter) Close() byte {
	switch d {
	case Bracket:
		return ']'
	case Brace:
		return '}'
	default:
		return ')'
	}
}

func (d Delimiter) String() string {
	switch d {
	case Bracket:
		return "Bracket"
	case Brace:
		return "Brace"
	default:
		return "Paren"
	}
}

// DelimiterOf maps an opening or closing character to its Delimiter.
func DelimiterOf(ch byte) (Delimiter, bool) {
	switch ch {
	case '(', ')':
		return Paren, true
	case '[', ']':
		return Bracket, true
	case '{', '}':
		return Brace, true
	}
	return Paren, false
}

// Token is one node of a token tree.
//
// Text holds the identifier, the literal source text or the punctuation
// character; it is empty for groups. For a Group, Span covers the opening
// delimiter, Close covers the closing one and Inner holds the children.
// Leading keeps the trivia that preceded the token in the source so that
// rewritten trees can be printed with their original layout.
type Token struct {
	Kind    Kind
	Text    string
	Span    source.Span
	Spacing Spacing

	Delim        Delimiter
	Inner        []Token
	Close        source.Span
	CloseLeading []token.Trivia

	Leading []token.Trivia
}

func NewIdent(text string, sp source.Span) Token {
	return Token{Kind: Ident, Text: text, Span: sp}
}

// NewInt builds an unsuffixed decimal integer literal.
func NewInt(v int64, sp source.Span) Token {
	return Token{Kind: Int, Text: strconv.FormatInt(v, 10), Span: sp}
}

func NewLiteral(text string, sp source.Span) Token {
	return Token{Kind: Literal, Text: text, Span: sp}
}

func NewPunct(ch byte, spacing Spacing, sp source.Span) Token {
	return Token{Kind: Punct, Text: string(ch), Spacing: spacing, Span: sp}
}

func NewGroup(delim Delimiter, inner []Token, open, closeSp source.Span) Token {
	return Token{Kind: Group, Delim: delim, Inner: inner, Span: open, Close: closeSp}
}

func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}

func (t Token) IsPunct(ch byte) bool {
	return t.Kind == Punct && len(t.Text) == 1 && t.Text[0] == ch
}

func (t Token) IsGroup(d Delimiter) bool {
	return t.Kind == Group && t.Delim == d
}

// FullSpan covers a group from its opening to its closing delimiter.
func (t Token) FullSpan() source.Span {
	if t.Kind != Group {
		return t.Span
	}
	return t.Span.Cover(t.Close)
}

// WithInner returns a copy of the group t holding inner instead of its
// children. Delimiter, spans and trivia are kept.
func (t Token) WithInner(inner []Token) Token {
	t.Inner = inner
	return t
}

// Replace turns t into repl while keeping t's provenance (span and
// leading trivia).
func (t Token) Replace(repl Token) Token {
	repl.Span = t.Span
	repl.Leading = t.Leading
	return repl
}

// Value parses an Int token. Underscores, an optional leading '-' and a
// Rust-style type suffix are accepted; radix prefixes 0x, 0o and 0b too.
func (t Token) Value() (int64, error) {
	if t.Kind != Int {
		return 0, fmt.Errorf("%s token is not an integer", t.Kind)
	}
	return ParseInt(t.Text)
}

// ParseInt parses integer literal text as written in source.
func ParseInt(text string) (int64, error) {
	s := strings.ReplaceAll(text, "_", "")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	base := 10
	if len(s) > 2 && s[0] == '0' {
		// лексер принимает и 0X/0O/0B
		switch s[1] {
		case 'x', 'X':
			base, s = 16, s[2:]
		case 'o', 'O':
			base, s = 8, s[2:]
		case 'b', 'B':
			base, s = 2, s[2:]
		}
	}
	s = trimIntSuffix(s)
	if s == "" {
		return 0, fmt.Errorf("invalid integer literal %q", text)
	}
	if neg {
		s = "-" + s
	}
	v, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("integer literal %q: %w", text, err)
	}
	return v, nil
}

var intSuffixes = []string{"i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize"}

// суффиксы начинаются с i/u, которые не являются hex-цифрами
func trimIntSuffix(s string) string {
	for _, suf := range intSuffixes {
		if strings.HasSuffix(s, suf) {
			return strings.TrimSuffix(s, suf)
		}
	}
	return s
}
