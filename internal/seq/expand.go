package seq

import (
	"seq/internal/diag"
	"seq/internal/tree"
)

// Expand produces the replacement for inv. With a marker in the body the
// body is emitted once with each marker expanded in place; otherwise the
// whole body is repeated once per value of the range.
func Expand(inv *Invocation, opts Options) ([]tree.Token, error) {
	opts = opts.withDefaults()
	if n := inv.Len(); n > uint64(opts.MaxIterations) {
		return nil, errorAt(diag.SeqRangeTooLarge, inv.IdentSpan,
			"range of %d iterations exceeds the limit of %d", n, opts.MaxIterations)
	}
	out, found, err := Scan(inv.Body, inv, opts.Markers)
	if err != nil {
		return nil, err
	}
	if found {
		return out, nil
	}
	return repeat(inv.Body, inv), nil
}
