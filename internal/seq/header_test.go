package seq_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/diag"
	"seq/internal/seq"
	"seq/internal/source"
	"seq/internal/tree"
)

func TestParseInvocation(t *testing.T) {
	inv := mustInvocation(t, "N in 0..3 { fn f~N() {} }")
	assert.Equal(t, "N", inv.Ident)
	assert.Equal(t, int64(0), inv.Start)
	assert.Equal(t, int64(3), inv.End)
	assert.Equal(t, uint64(3), inv.Len())
	assert.Equal(t, "fn f '~' N () {}", tree.Sexpr(inv.Body))
	assert.Equal(t, uint32(0), inv.IdentSpan.Start)
}

func TestParseInvocationBounds(t *testing.T) {
	tests := []struct {
		src        string
		start, end int64
	}{
		{"i in -3..-1 {}", -3, -1},
		{"i in 1_000..1_002 {}", 1000, 1002},
		{"i in 0u8..4usize {}", 0, 4},
		{"i in 5..2 {}", 5, 2},
		{"i in -9223372036854775808..9223372036854775807 {}", math.MinInt64, math.MaxInt64},
	}
	for _, tt := range tests {
		inv := mustInvocation(t, tt.src)
		assert.Equal(t, tt.start, inv.Start, tt.src)
		assert.Equal(t, tt.end, inv.End, tt.src)
	}
	assert.Zero(t, mustInvocation(t, "i in 5..2 {}").Len())
}

func TestParseInvocationErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		code   diag.Code
		offset uint32
	}{
		{"empty input", "", diag.SeqExpectIdent, 0},
		{"literal instead of ident", "1 in 0..3 {}", diag.SeqExpectIdent, 0},
		{"missing in", "N 0..3 { N }", diag.SeqExpectIn, 2},
		{"wrong keyword", "N of 0..3 {}", diag.SeqExpectIn, 2},
		{"missing start", "N in ..3 {}", diag.SeqExpectInteger, 5},
		{"float bound", "N in 0.5..3 {}", diag.SeqExpectInteger, 5},
		{"missing dotdot", "N in 0 3 {}", diag.SeqExpectDotDot, 7},
		{"single dot", "N in 0 . 3 {}", diag.SeqExpectDotDot, 7},
		{"inclusive range", "N in 0..=3 {}", diag.SeqExpectDotDot, 6},
		{"missing end", "N in 0.. {}", diag.SeqExpectInteger, 9},
		{"paren body", "N in 0..3 ( N )", diag.SeqExpectBody, 10},
		{"missing body", "N in 0..3", diag.SeqExpectBody, 9},
		{"trailing tokens", "N in 0..3 {} x", diag.SeqTrailingTokens, 13},
		{"overflow", "N in 0..99999999999999999999 {}", diag.SeqIntegerOutOfRange, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := parseSource(t, tt.src)
			inv, err := seq.ParseInvocation(st.Tokens, st.EOF)
			require.Nil(t, inv)
			var se *seq.Error
			require.True(t, errors.As(err, &se), "want *seq.Error, got %v", err)
			assert.Equal(t, tt.code, se.Code)
			assert.True(t, se.Code.IsMalformedHeader())
			assert.Equal(t, tt.offset, se.Span.Start, se.Msg)
			assert.Equal(t, tt.code, se.Diagnostic().Code)
			assert.Equal(t, diag.SevError, se.Diagnostic().Severity)
		})
	}
}

func TestMissingInPointsAtFollowingToken(t *testing.T) {
	st := parseSource(t, "N 0..3 { N }")
	_, err := seq.ParseInvocation(st.Tokens, st.EOF)
	var se *seq.Error
	require.ErrorAs(t, err, &se)
	// токен сразу после идентификатора — литерал 0
	assert.Equal(t, st.Tokens[1].Span, se.Span)
}

func TestHeaderErrorsCarryFixes(t *testing.T) {
	st := parseSource(t, "N 0..3 { N }")
	_, err := seq.ParseInvocation(st.Tokens, st.EOF)
	var se *seq.Error
	require.ErrorAs(t, err, &se)
	require.Len(t, se.Fixes, 1)
	edit := se.Fixes[0].Edits[0]
	assert.Equal(t, "in ", edit.NewText)
	assert.True(t, edit.Span.Empty())
	assert.Equal(t, uint32(2), edit.Span.Start)
	assert.Equal(t, diag.FixApplicabilityAlwaysSafe, se.Fixes[0].Applicability)
	assert.Len(t, se.Diagnostic().Fixes, 1)

	st = parseSource(t, "N in 0..3 {} x y")
	_, err = seq.ParseInvocation(st.Tokens, st.EOF)
	require.ErrorAs(t, err, &se)
	require.Len(t, se.Fixes, 1)
	// от конца тела до последнего лишнего токена
	assert.Equal(t, uint32(12), se.Fixes[0].Edits[0].Span.Start)
	assert.Equal(t, uint32(16), se.Fixes[0].Edits[0].Span.End)
	assert.Equal(t, diag.FixApplicabilityMaybeIncorrect, se.Fixes[0].Applicability)
}

func TestHeaderRangeAndBodyFixes(t *testing.T) {
	st := parseSource(t, "N in 0..=3 { N }")
	_, err := seq.ParseInvocation(st.Tokens, st.EOF)
	var se *seq.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, diag.SeqExpectDotDot, se.Code)
	require.Len(t, se.Fixes, 1)
	edit := se.Fixes[0].Edits[0]
	assert.Equal(t, source.Span{File: edit.Span.File, Start: 6, End: 9}, edit.Span)
	assert.Equal(t, "..", edit.NewText)
	assert.Equal(t, "..=", edit.OldText)
	assert.Equal(t, diag.FixApplicabilityMaybeIncorrect, se.Fixes[0].Applicability)

	st = parseSource(t, "N in 0..3 x y")
	_, err = seq.ParseInvocation(st.Tokens, st.EOF)
	require.ErrorAs(t, err, &se)
	assert.Equal(t, diag.SeqExpectBody, se.Code)
	require.Len(t, se.Fixes, 1)
	edits := se.Fixes[0].Edits
	require.Len(t, edits, 2)
	assert.Equal(t, uint32(10), edits[0].Span.Start)
	assert.Equal(t, "{ ", edits[0].NewText)
	assert.Equal(t, uint32(13), edits[1].Span.Start)
	assert.Equal(t, " }", edits[1].NewText)

	// без токенов после диапазона предлагать нечего
	st = parseSource(t, "N in 0..3")
	_, err = seq.ParseInvocation(st.Tokens, st.EOF)
	require.ErrorAs(t, err, &se)
	assert.Empty(t, se.Fixes)
}
