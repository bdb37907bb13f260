package seq_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"seq/internal/diag"
	"seq/internal/seq"
	"seq/internal/source"
	"seq/internal/tree"
)

func parseSource(t *testing.T, src string) *tree.Stream {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.sq", []byte(src)))
	bag := diag.NewBag(20)
	st := tree.Parse(f, diag.BagReporter{Bag: bag})
	require.Zero(t, bag.Len(), "source must lex cleanly: %q", src)
	return st
}

func mustInvocation(t *testing.T, src string) *seq.Invocation {
	t.Helper()
	st := parseSource(t, src)
	inv, err := seq.ParseInvocation(st.Tokens, st.EOF)
	require.NoError(t, err)
	return inv
}

func sexpr(t *testing.T, src string) string {
	t.Helper()
	return tree.Sexpr(parseSource(t, src).Tokens)
}

func codesOf(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}
