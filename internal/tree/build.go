package tree

import (
	"fmt"
	"strings"

	"seq/internal/diag"
	"seq/internal/fix"
	"seq/internal/lexer"
	"seq/internal/source"
	"seq/internal/token"
)

// Stream is a parsed file: top-level trees plus the trivia before EOF.
type Stream struct {
	Tokens   []Token
	Trailing []token.Trivia
	EOF      source.Span
}

// Parse lexes file and assembles the token trees. Lexical and delimiter
// errors go to r; parsing always produces a usable stream.
func Parse(file *source.File, r diag.Reporter) *Stream {
	lx := lexer.New(file, lexer.Options{Reporter: r})
	return Build(lx.All(), r)
}

type frame struct {
	open    token.Token
	delim   Delimiter
	content []Token
}

// Build groups a flat token stream into trees.
// Stray closers are dropped; mismatched closers close the innermost group;
// groups still open at EOF are closed with an empty span at the EOF position.
func Build(toks []token.Token, r diag.Reporter) *Stream {
	var (
		stack []frame
		top   []Token
		out   = &Stream{}
	)
	emit := func(t Token) {
		if n := len(stack); n > 0 {
			stack[n-1].content = append(stack[n-1].content, t)
			return
		}
		top = append(top, t)
	}

	for _, tok := range toks {
		switch {
		case tok.Kind == token.EOF:
			out.Trailing = tok.Leading
			out.EOF = tok.Span
		case tok.Kind == token.Invalid:
			// уже сообщено лексером
		case tok.IsOpenDelim():
			d, _ := DelimiterOf(tok.Text[0])
			stack = append(stack, frame{open: tok, delim: d})
		case tok.IsCloseDelim():
			if len(stack) == 0 {
				report(r, diag.NewError(diag.SynUnexpectedToken, tok.Span,
					fmt.Sprintf("unexpected closing delimiter `%s`", tok.Text)).
					WithFixSuggestion(fix.DeleteSpan(fmt.Sprintf("remove `%s`", tok.Text), tok.Span, tok.Text)))
				continue
			}
			fr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if d, _ := DelimiterOf(tok.Text[0]); d != fr.delim {
				report(r, diag.NewError(diag.SynMismatchedDelimiter, tok.Span,
					fmt.Sprintf("mismatched closing delimiter `%s`", tok.Text)).
					WithNote(fr.open.Span, fmt.Sprintf("unclosed delimiter `%c` opened here", fr.delim.Open())))
			}
			emit(closeFrame(fr, tok.Span, tok.Leading))
		default:
			emit(fromFlat(tok))
		}
	}

	// одна правка закрывает все группы сразу, изнутри наружу
	var closers strings.Builder
	for i := len(stack) - 1; i >= 0; i-- {
		closers.WriteByte(stack[i].delim.Close())
	}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		d := diag.NewError(diag.SynUnclosedDelimiter, fr.open.Span,
			fmt.Sprintf("unclosed delimiter `%c`", fr.delim.Open()))
		if closers.Len() > 0 {
			d = d.WithFixSuggestion(fix.InsertText(fmt.Sprintf("insert `%s` at end of input", closers.String()),
				out.EOF, closers.String(), fix.MaybeIncorrect()))
			closers.Reset()
		}
		report(r, d)
		stack = stack[:len(stack)-1]
		emit(closeFrame(fr, out.EOF.StartPoint(), nil))
	}

	out.Tokens = top
	return out
}

func closeFrame(fr frame, closeSp source.Span, closeLeading []token.Trivia) Token {
	g := NewGroup(fr.delim, fr.content, fr.open.Span, closeSp)
	g.Leading = fr.open.Leading
	g.CloseLeading = closeLeading
	return g
}

func fromFlat(tok token.Token) Token {
	var t Token
	switch tok.Kind {
	case token.Ident:
		t = NewIdent(tok.Text, tok.Span)
	case token.IntLit:
		t = Token{Kind: Int, Text: tok.Text, Span: tok.Span}
	case token.Punct:
		sp := Alone
		if tok.Joint {
			sp = Joint
		}
		t = NewPunct(tok.Text[0], sp, tok.Span)
	default:
		t = NewLiteral(tok.Text, tok.Span)
	}
	t.Leading = tok.Leading
	return t
}

func report(r diag.Reporter, d diag.Diagnostic) {
	d.Report(r)
}
