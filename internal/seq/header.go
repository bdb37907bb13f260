package seq

import (
	"errors"
	"strconv"

	"seq/internal/diag"
	"seq/internal/fix"
	"seq/internal/source"
	"seq/internal/tree"
)

// Invocation is a parsed `N in start..end { body }` header.
type Invocation struct {
	Ident     string
	IdentSpan source.Span
	Start     int64
	End       int64 // не включительно
	Body      []tree.Token
	BodySpan  source.Span
}

// Len returns the number of iterations; a reversed range has none.
func (inv *Invocation) Len() uint64 {
	if inv.Start >= inv.End {
		return 0
	}
	return uint64(inv.End - inv.Start)
}

// ParseInvocation parses the header grammar
//
//	<identifier> in <integer> .. <integer> { <body> }
//
// from input. eoi is the position reported when a required token is
// missing at the end of input. Any error returned is a *Error.
func ParseInvocation(input []tree.Token, eoi source.Span) (*Invocation, error) {
	c := newCursor(input)
	at := func() source.Span {
		if t, ok := c.peek(0); ok {
			return t.Span
		}
		return eoi.StartPoint()
	}

	ident, ok := c.peek(0)
	if !ok || ident.Kind != tree.Ident {
		return nil, errorAt(diag.SeqExpectIdent, at(), "expected loop identifier")
	}
	c.advance(1)

	if kw, ok := c.peek(0); !ok || !kw.IsIdent("in") {
		return nil, errorAt(diag.SeqExpectIn, at(), "expected `in` after `%s`", ident.Text).
			withFix(fix.InsertText("insert `in`", at(), "in "))
	}
	c.advance(1)

	start, err := parseBound(c, at)
	if err != nil {
		return nil, err
	}

	if !atDotDot(c) {
		err := errorAt(diag.SeqExpectDotDot, at(), "expected `..` between range bounds")
		if sp, text, ok := misspelledRange(c); ok {
			// `..=` включает конец, замена меняет смысл
			err = err.withFix(fix.ReplaceSpan("use the half-open `..`", sp, "..", text, fix.MaybeIncorrect()))
		}
		return nil, err
	}
	c.advance(2)

	end, err := parseBound(c, at)
	if err != nil {
		return nil, err
	}

	body, ok := c.peek(0)
	if !ok || !body.IsGroup(tree.Brace) {
		err := errorAt(diag.SeqExpectBody, at(), "expected `{` to start the body")
		if rest := c.rest(); len(rest) > 0 {
			sp := rest[0].FullSpan().Cover(rest[len(rest)-1].FullSpan())
			err = err.withFix(fix.WrapWith("wrap the body in braces", sp, "{ ", " }"))
		}
		return nil, err
	}
	c.advance(1)

	if extra, ok := c.peek(0); ok {
		trailing := c.rest()
		rest := body.FullSpan().EndPoint().Cover(trailing[len(trailing)-1].FullSpan())
		return nil, errorAt(diag.SeqTrailingTokens, extra.FullSpan(), "unexpected tokens after the body").
			withFix(fix.DeleteSpan("remove the tokens after the body", rest, "", fix.MaybeIncorrect()))
	}

	return &Invocation{
		Ident:     ident.Text,
		IdentSpan: ident.Span,
		Start:     start,
		End:       end,
		Body:      body.Inner,
		BodySpan:  body.FullSpan(),
	}, nil
}

func atDotDot(c *cursor) bool {
	first, ok := c.peek(0)
	if !ok || !first.IsPunct('.') || first.Spacing != tree.Joint {
		return false
	}
	second, ok := c.peek(1)
	if !ok || !second.IsPunct('.') {
		return false
	}
	// `...` и `..=` не являются диапазоном
	if second.Spacing == tree.Joint {
		if third, ok := c.peek(2); ok && third.Kind == tree.Punct && (third.IsPunct('.') || third.IsPunct('=')) {
			return false
		}
	}
	return true
}

// misspelledRange recognizes `...` and `..=` written as three joint puncts.
func misspelledRange(c *cursor) (source.Span, string, bool) {
	var text []byte
	var sp source.Span
	for i := range 3 {
		t, ok := c.peek(i)
		if !ok || t.Kind != tree.Punct || (i < 2 && (!t.IsPunct('.') || t.Spacing != tree.Joint)) {
			return source.Span{}, "", false
		}
		if i == 2 && !t.IsPunct('.') && !t.IsPunct('=') {
			return source.Span{}, "", false
		}
		if i == 0 {
			sp = t.Span
		}
		sp = sp.Cover(t.Span)
		text = append(text, t.Text...)
	}
	return sp, string(text), true
}

// parseBound reads an optionally negated integer literal.
func parseBound(c *cursor, at func() source.Span) (int64, error) {
	neg := false
	var minus tree.Token
	if t, ok := c.peek(0); ok && t.IsPunct('-') {
		if n, ok := c.peek(1); ok && n.Kind == tree.Int {
			neg = true
			minus = t
			c.advance(1)
		}
	}
	lit, ok := c.peek(0)
	if !ok || lit.Kind != tree.Int {
		return 0, errorAt(diag.SeqExpectInteger, at(), "expected integer literal")
	}
	c.advance(1)

	sp := lit.Span
	text := lit.Text
	if neg {
		sp = minus.Span.Cover(lit.Span)
		text = "-" + text
	}
	v, err := tree.ParseInt(text)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, errorAt(diag.SeqIntegerOutOfRange, sp, "integer bound `%s` does not fit in 64 bits", text)
		}
		return 0, errorAt(diag.SeqExpectInteger, sp, "invalid integer literal `%s`", text)
	}
	return v, nil
}
