package format

import (
	"fmt"

	"seq/internal/diag"
	"seq/internal/source"
	"seq/internal/token"
	"seq/internal/tree"
)

type printer struct {
	writer *Writer
	opt    Options

	lastAlonePunct bool
}

// Print renders a forest followed by trailing trivia (the trivia the
// source had before EOF).
func Print(toks []tree.Token, trailing []token.Trivia, opt Options) []byte {
	opt = opt.withDefaults()
	p := &printer{writer: NewWriter(opt, 64*len(toks)), opt: opt}
	p.printSeq(toks, true)
	if opt.Layout == LayoutPreserve {
		p.printTrivia(trailing)
	} else {
		p.writer.Newline()
	}
	return p.writer.Bytes()
}

// printSeq prints siblings. stmt is set at top level and inside braces,
// where the compact layout breaks lines after `;` and blocks.
func (p *printer) printSeq(toks []tree.Token, stmt bool) {
	for _, t := range toks {
		p.printToken(t)
		if p.opt.Layout == LayoutCompact && stmt && (t.IsPunct(';') || t.IsGroup(tree.Brace)) {
			p.writer.Newline()
		}
	}
}

func (p *printer) printToken(t tree.Token) {
	if t.Kind == tree.Group {
		p.separate(t.Leading, t.Delim.Open())
		p.emit(string(t.Delim.Open()), false)
		p.printGroupInner(t)
		return
	}
	if t.Text == "" {
		return
	}
	p.separate(t.Leading, t.Text[0])
	p.emit(t.Text, t.Kind == tree.Punct && t.Spacing == tree.Alone)
}

func (p *printer) printGroupInner(g tree.Token) {
	closeCh := g.Delim.Close()
	if p.opt.Layout == LayoutCompact && g.Delim == tree.Brace && len(g.Inner) > 0 {
		p.writer.Newline()
		p.writer.IndentPush()
		p.printSeq(g.Inner, true)
		p.writer.IndentPop()
		p.writer.Newline()
		p.emit(string(closeCh), false)
		return
	}
	p.printSeq(g.Inner, g.Delim == tree.Brace)
	if p.opt.Layout == LayoutPreserve {
		p.printTrivia(g.CloseLeading)
	}
	p.emit(string(closeCh), false)
}

// separate writes what goes between the previous token and one starting
// with next.
func (p *printer) separate(leading []token.Trivia, next byte) {
	w := p.writer
	switch p.opt.Layout {
	case LayoutPreserve:
		p.printTrivia(leading)
	case LayoutCompact:
		if len(leading) > 0 && !isCloser(next) && !isOpener(w.Last()) {
			w.Space()
		}
	}
	if fuses(w.Last(), next, p.lastAlonePunct) {
		w.Space()
	}
}

func (p *printer) printTrivia(trivia []token.Trivia) {
	for _, tv := range trivia {
		if tv.IsComment() && p.opt.DropComments {
			p.writer.Space()
			continue
		}
		p.writer.WriteRaw(tv.Text)
	}
}

func (p *printer) emit(text string, alonePunct bool) {
	p.writer.WriteString(text)
	p.lastAlonePunct = alonePunct
}

func isOpener(b byte) bool { return b == '(' || b == '[' || b == '{' }
func isCloser(b byte) bool { return b == ')' || b == ']' || b == '}' }

// CheckRoundTrip prints toks, re-lexes the text and reports whether the
// trees are structurally identical. A negative integer re-lexes as `-`
// followed by the literal and is compared that way.
func CheckRoundTrip(toks []tree.Token, opt Options) (ok bool, msg string) {
	text := Print(toks, nil, opt)
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("roundtrip", text))
	bag := diag.NewBag(8)
	st := tree.Parse(f, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		return false, fmt.Sprintf("fmt-check: reparse failed: %s", bag.Items()[0].Message)
	}
	if !tree.Equal(splitNegative(toks), st.Tokens) {
		return false, "fmt-check: token trees differ after round-trip"
	}
	return true, ""
}

func splitNegative(toks []tree.Token) []tree.Token {
	out := make([]tree.Token, 0, len(toks))
	for _, t := range toks {
		switch {
		case t.Kind == tree.Int && len(t.Text) > 1 && t.Text[0] == '-':
			out = append(out, tree.NewPunct('-', tree.Alone, t.Span))
			t.Text = t.Text[1:]
			out = append(out, t)
		case t.Kind == tree.Group:
			out = append(out, t.WithInner(splitNegative(t.Inner)))
		default:
			out = append(out, t)
		}
	}
	return out
}
