package tree

import (
	"fmt"
	"strings"
)

// Sexpr renders the forest on one line, e.g. `f Int(0) '~'+ (a b)`.
// Idents print bare, joint punctuation gets a trailing '+'.
func Sexpr(toks []Token) string {
	var b strings.Builder
	writeSexpr(&b, toks)
	return b.String()
}

func writeSexpr(b *strings.Builder, toks []Token) {
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch t.Kind {
		case Ident:
			b.WriteString(t.Text)
		case Int:
			fmt.Fprintf(b, "Int(%s)", t.Text)
		case Literal:
			fmt.Fprintf(b, "Lit(%s)", t.Text)
		case Punct:
			fmt.Fprintf(b, "'%s'", t.Text)
			if t.Spacing == Joint {
				b.WriteByte('+')
			}
		case Group:
			b.WriteByte(t.Delim.Open())
			writeSexpr(b, t.Inner)
			b.WriteByte(t.Delim.Close())
		}
	}
}

// Dump renders the forest as an indented tree, one token per line, with
// byte spans. Used by `seq tree`.
func Dump(toks []Token) string {
	var b strings.Builder
	dumpLevel(&b, toks, 0)
	return b.String()
}

func dumpLevel(b *strings.Builder, toks []Token, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, t := range toks {
		switch t.Kind {
		case Group:
			fmt.Fprintf(b, "%sGroup(%s) %d..%d\n", indent, t.Delim, t.Span.Start, t.Close.End)
			dumpLevel(b, t.Inner, depth+1)
		case Punct:
			fmt.Fprintf(b, "%sPunct %q %s %d..%d\n", indent, t.Text, t.Spacing, t.Span.Start, t.Span.End)
		default:
			fmt.Fprintf(b, "%s%s %s %d..%d\n", indent, t.Kind, t.Text, t.Span.Start, t.Span.End)
		}
	}
}
