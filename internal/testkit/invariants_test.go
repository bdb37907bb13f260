package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/diag"
	"seq/internal/seq"
	"seq/internal/source"
	"seq/internal/tree"
)

func parse(t *testing.T, src string) (*tree.Stream, *source.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.sq", []byte(src)))
	bag := diag.NewBag(20)
	return tree.Parse(f, diag.BagReporter{Bag: bag}), f, bag
}

func TestSpanInvariantsHoldForParsedInput(t *testing.T) {
	inputs := []string{
		"",
		"a b c",
		"seq!(N in 0..3 { #(f~N(),)* });\n// tail\n",
		"fn f() { [1, 2; (x)] }",
		// незакрытые и лишние разделители тоже дают корректные спаны
		"a ( b [ c",
		"a ) b ] c",
		"x ( y ]",
	}
	for _, src := range inputs {
		st, f, _ := parse(t, src)
		assert.NoError(t, CheckSpanInvariants(st, f), "input %q", src)
	}
}

func TestSpanInvariantsDetectBrokenTree(t *testing.T) {
	st, f, _ := parse(t, "a (b) c")
	require.NoError(t, CheckSpanInvariants(st, f))

	outside := *st
	outside.Tokens = tree.Clone(st.Tokens)
	outside.Tokens[0].Span.End = 100
	assert.Error(t, CheckSpanInvariants(&outside, f))

	swapped := *st
	swapped.Tokens = []tree.Token{st.Tokens[2], st.Tokens[0]}
	assert.Error(t, CheckSpanInvariants(&swapped, f))

	escaped := *st
	escaped.Tokens = tree.Clone(st.Tokens)
	escaped.Tokens[1].Inner[0].Span = st.Tokens[2].Span
	assert.Error(t, CheckSpanInvariants(&escaped, f))

	assert.Error(t, CheckSpanInvariants(nil, f))
}

func TestExpansionKeepsProvenance(t *testing.T) {
	inputs := []string{
		"seq!(N in 0..3 { f~N(N); });",
		"seq!(i in 1..=0 { x });",
		"seq!(N in 0..2 { #(v~N,)* [done] });",
		"a seq!(I in 0..2 { seq!(J in 0..2 { p~I~J }); }) b",
	}
	for _, src := range inputs {
		st, _, _ := parse(t, src)
		bag := diag.NewBag(20)
		res := seq.ExpandSites(st.Tokens, seq.Options{}, diag.BagReporter{Bag: bag})
		assert.NoError(t, CheckProvenance(st.Tokens, res.Tokens), "input %q", src)
	}
}

func TestProvenanceDetectsFabricatedSpan(t *testing.T) {
	st, _, _ := parse(t, "a b")
	out := tree.Clone(st.Tokens)
	out = append(out, tree.NewIdent("c", source.Span{Start: 40, End: 41}))
	assert.Error(t, CheckProvenance(st.Tokens, out))
}
