package format

import "fmt"

// Layout selects how whitespace between tokens is produced.
type Layout uint8

const (
	LayoutPreserve Layout = iota
	LayoutCompact
)

func (l Layout) String() string {
	if l == LayoutCompact {
		return "compact"
	}
	return "preserve"
}

// ParseLayout accepts "preserve" or "compact"; empty means preserve.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "preserve":
		return LayoutPreserve, nil
	case "compact":
		return LayoutCompact, nil
	}
	return LayoutPreserve, fmt.Errorf("unknown layout %q (want preserve or compact)", s)
}

type Options struct {
	Layout      Layout
	IndentWidth int
	UseTabs     bool
	// DropComments removes comments in the preserve layout. Compact never
	// prints comments.
	DropComments bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}
