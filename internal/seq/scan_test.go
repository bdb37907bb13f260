package seq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/diag"
	"seq/internal/seq"
	"seq/internal/tree"
)

func TestScanWithoutMarker(t *testing.T) {
	inv := mustInvocation(t, "N in 0..3 { fn f~N() { N } [#] (*) }")
	out, found, err := seq.Scan(inv.Body, inv, seq.MarkersFirst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, tree.Equal(inv.Body, out), "scan without a marker must not rewrite anything")
}

func TestScanNestedMarker(t *testing.T) {
	inv := mustInvocation(t, "N in 1..3 { x N { y #(a~N N)* z } }")
	out, found, err := seq.Scan(inv.Body, inv, seq.MarkersFirst)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x N {y a1 Int(1) a2 Int(2) z}", tree.Sexpr(out))
}

func TestScanIsIdempotentOnExpandedTree(t *testing.T) {
	inv := mustInvocation(t, "N in 0..2 { [ #(N,)* ] }")
	once, found, err := seq.Scan(inv.Body, inv, seq.MarkersFirst)
	require.NoError(t, err)
	require.True(t, found)

	twice, found, err := seq.Scan(once, inv, seq.MarkersFirst)
	require.NoError(t, err)
	assert.False(t, found)
	assert.True(t, tree.Equal(once, twice))
}

func TestScanMarkerNeedsParenAndStar(t *testing.T) {
	for _, body := range []string{"#[N]*", "#(N)+", "# x (N)*", "#(N)"} {
		inv := mustInvocation(t, "N in 0..2 { "+body+" }")
		_, found, err := seq.Scan(inv.Body, inv, seq.MarkersFirst)
		require.NoError(t, err)
		assert.False(t, found, body)
	}
}

func TestMarkerPolicies(t *testing.T) {
	const src = "N in 0..2 { a #(N)* { b #(c~N)* } }"

	t.Run("first", func(t *testing.T) {
		inv := mustInvocation(t, src)
		out, found, err := seq.Scan(inv.Body, inv, seq.MarkersFirst)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "a Int(0) Int(1) {b '#' (c '~' N) '*'}", tree.Sexpr(out))
	})

	t.Run("all", func(t *testing.T) {
		inv := mustInvocation(t, src)
		out, found, err := seq.Scan(inv.Body, inv, seq.MarkersAll)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "a Int(0) Int(1) {b c0 c1}", tree.Sexpr(out))
	})

	t.Run("reject", func(t *testing.T) {
		inv := mustInvocation(t, src)
		out, found, err := seq.Scan(inv.Body, inv, seq.MarkersReject)
		assert.Nil(t, out)
		assert.True(t, found)
		var se *seq.Error
		require.ErrorAs(t, err, &se)
		assert.Equal(t, diag.SeqMultipleMarkers, se.Code)
		require.Len(t, se.Notes, 1)
		assert.Less(t, se.Notes[0].Span.Start, se.Span.Start, "note points at the first marker")
	})

	t.Run("reject allows one marker", func(t *testing.T) {
		inv := mustInvocation(t, "N in 0..2 { #(N)* }")
		_, found, err := seq.Scan(inv.Body, inv, seq.MarkersReject)
		require.NoError(t, err)
		assert.True(t, found)
	})
}

// Флаг found из вложенной группы не должен затираться последующими группами.
func TestFoundInEarlierGroupSurvivesLaterGroups(t *testing.T) {
	inv := mustInvocation(t, "N in 0..2 { { #(N)* } { plain } }")
	out, found, err := seq.Scan(inv.Body, inv, seq.MarkersFirst)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "{Int(0) Int(1)} {plain}", tree.Sexpr(out))
}

func TestParseMarkerPolicy(t *testing.T) {
	for in, want := range map[string]seq.MarkerPolicy{"": seq.MarkersFirst, "first": seq.MarkersFirst, "all": seq.MarkersAll, "reject": seq.MarkersReject} {
		got, err := seq.ParseMarkerPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if in != "" {
			assert.Equal(t, in, got.String())
		}
	}
	_, err := seq.ParseMarkerPolicy("some")
	assert.Error(t, err)
}
