package driver

import (
	"bytes"
	"fmt"

	"seq/internal/diag"
	"seq/internal/format"
	"seq/internal/source"
	"seq/internal/tree"
)

// RunFmtCheck parses sf without expanding it, prints it back with the
// preserve layout and verifies that the bytes are unchanged and that the
// text re-parses to the same trees. It returns (ok, report string).
func RunFmtCheck(sf *source.File, maxDiagnostics int) (success bool, msg string) {
	bag := diag.NewBag(maxDiagnostics)
	st := tree.Parse(sf, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		return false, "fmt-check: initial parse has errors"
	}

	out := format.Print(st.Tokens, st.Trailing, format.Options{Layout: format.LayoutPreserve})
	if !bytes.Equal(out, sf.Content) {
		return false, fmt.Sprintf("fmt-check: printed text differs from source at byte %d", firstDiff(out, sf.Content))
	}

	if ok, why := format.CheckRoundTrip(st.Tokens, format.Options{Layout: format.LayoutCompact}); !ok {
		return false, why
	}
	return true, "fmt-check: OK"
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
