package seq_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/seq"
	"seq/internal/tree"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		value int64
		want  string
	}{
		{"plain", "N + N", 4, "Int(4) '+' Int(4)"},
		{"paste", "f~N()", 2, "f2 ()"},
		{"paste at end", "let x~N", 7, "let x7"},
		{"paste wins over plain", "N~N", 1, "N1"},
		{"nested groups", "{ [ (N) ] }", 3, "{[(Int(3))]}"},
		{"other idents untouched", "M ~ M N", 0, "M '~' M Int(0)"},
		{"tilde without ident", "a ~ 1", 0, "a '~' Int(1)"},
		{"literals pass through", `"N" 'N' 1.5`, 9, `Lit("N") Lit('N') Lit(1.5)`},
		{"negative", "N", -2, "Int(-2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := parseSource(t, tt.body).Tokens
			got := seq.Substitute(body, "N", tt.value)
			assert.Equal(t, tt.want, tree.Sexpr(got), spew.Sdump(got))
		})
	}
}

func TestSubstituteKeepsProvenance(t *testing.T) {
	body := parseSource(t, "  f~N\n N").Tokens
	got := seq.Substitute(body, "N", 5)
	require.Len(t, got, 2)

	pasted := got[0]
	assert.Equal(t, tree.Ident, pasted.Kind)
	assert.Equal(t, "f5", pasted.Text)
	assert.Equal(t, body[0].Span, pasted.Span, "pasted ident spans the prefix")
	assert.Equal(t, body[0].Leading, pasted.Leading)

	lit := got[1]
	assert.Equal(t, tree.Int, lit.Kind)
	assert.Equal(t, "5", lit.Text)
	assert.Equal(t, body[3].Span, lit.Span)
	assert.Equal(t, body[3].Leading, lit.Leading)
	v, err := lit.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
}

func TestSubstituteDoesNotMutateInput(t *testing.T) {
	body := parseSource(t, "(N f~N)").Tokens
	before := tree.Sexpr(body)
	out := seq.Substitute(body, "N", 1)
	out[0].Inner[0].Text = "changed"
	assert.Equal(t, before, tree.Sexpr(body))
}
