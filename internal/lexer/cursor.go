package lexer

import "seq/internal/source"

// Cursor walks the bytes of one file. Reads past Limit yield 0.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // exclusive; len(File.Content) by default
}

// Mark is a saved offset used to cut spans and to backtrack.
type Mark uint32

func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, Limit: f.Len()}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// PeekAt returns the byte n positions ahead without consuming it.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := c.Off + n; i < c.Limit {
		return c.File.Content[i]
	}
	return 0
}

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// Peek2 returns the next two bytes; ok is false when fewer remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// Bump consumes and returns one byte.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Advance consumes up to n bytes.
func (c *Cursor) Advance(n uint32) {
	c.Off = min(c.Off+n, max(c.Limit, c.Off))
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// EatPair consumes b0 b1 if they are next.
func (c *Cursor) EatPair(b0, b1 byte) bool {
	if x, y, ok := c.Peek2(); ok && x == b0 && y == b1 {
		c.Off += 2
		return true
	}
	return false
}

// SkipWhile consumes bytes while pred holds and returns how many it took.
func (c *Cursor) SkipWhile(pred func(byte) bool) uint32 {
	from := c.Off
	for !c.EOF() && pred(c.File.Content[c.Off]) {
		c.Off++
	}
	return c.Off - from
}

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// SpanFrom returns the span between m and the current offset.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
