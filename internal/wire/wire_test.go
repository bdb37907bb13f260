package wire

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/diag"
	"seq/internal/source"
	"seq/internal/tree"
)

func parse(t *testing.T, src string) []tree.Token {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("w.sq", []byte(src)))
	bag := diag.NewBag(10)
	st := tree.Parse(f, diag.BagReporter{Bag: bag})
	require.Zero(t, bag.Len())
	return st.Tokens
}

func TestNodeRoundTrip(t *testing.T) {
	toks := parse(t, `seq!(N in 0..3 { f~N("s", 'c', 1.5) -> [x; 4u8] });`)
	back, err := ToTree(FromTree(toks), 7)
	require.NoError(t, err)
	require.True(t, tree.Equal(toks, back), spew.Sdump(back))

	var files []source.FileID
	tree.Walk(back, func(tok *tree.Token) bool {
		files = append(files, tok.Span.File)
		return true
	})
	for _, f := range files {
		assert.Equal(t, source.FileID(7), f)
	}
	assert.Equal(t, toks[0].Span.Start, back[0].Span.Start)
	assert.Equal(t, toks[0].Span.End, back[0].Span.End)
}

func TestNodeMsgpackRoundTrip(t *testing.T) {
	toks := parse(t, "a -> { b }")
	var buf bytes.Buffer
	c := NewClient(nil, &buf)
	require.NoError(t, c.Send(&Request{Tokens: FromTree(toks), Fragment: true}))

	var req Request
	dec := NewClient(&buf, nil)
	require.NoError(t, dec.dec.Decode(&req))
	assert.Equal(t, uint64(1), req.ID)
	assert.True(t, req.Fragment)
	back, err := ToTree(req.Tokens, 0)
	require.NoError(t, err)
	assert.Equal(t, tree.Sexpr(toks), tree.Sexpr(back))
}

func TestToTreeRejectsBadNodes(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"empty ident", Node{Kind: uint8(tree.Ident)}},
		{"bad int", Node{Kind: uint8(tree.Int), Text: "x1"}},
		{"long punct", Node{Kind: uint8(tree.Punct), Text: "->"}},
		{"bad delimiter", Node{Kind: uint8(tree.Group), Delim: 9}},
		{"bad kind", Node{Kind: 42}},
		{"inverted span", Node{Kind: uint8(tree.Ident), Text: "a", Span: Span{Start: 5, End: 1}}},
		{"nested", Node{Kind: uint8(tree.Group), Inner: []Node{{Kind: 42}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToTree([]Node{tt.node}, 0)
			assert.Error(t, err)
		})
	}
}

func TestServe(t *testing.T) {
	var in bytes.Buffer
	client := NewClient(nil, &in)
	require.NoError(t, client.Send(&Request{Source: "a"}))
	require.NoError(t, client.Send(&Request{Source: "b", Path: "b.sq"}))

	var out bytes.Buffer
	var seen []string
	err := Serve(context.Background(), &in, &out, func(_ context.Context, req *Request) *Response {
		seen = append(seen, req.Source)
		return &Response{Text: req.Source + "!"}
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)

	reader := NewClient(&out, nil)
	r1, err := reader.Receive()
	require.NoError(t, err)
	r2, err := reader.Receive()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), r1.ID)
	assert.Equal(t, "a!", r1.Text)
	assert.Equal(t, uint64(2), r2.ID)
	assert.Equal(t, "b!", r2.Text)

	_, err = reader.Receive()
	assert.ErrorIs(t, err, io.EOF)
}

func TestServeStopsOnGarbage(t *testing.T) {
	in := bytes.NewReader([]byte{0xc1})
	err := Serve(context.Background(), in, io.Discard, func(context.Context, *Request) *Response {
		return &Response{}
	})
	assert.Error(t, err)
}

func TestServeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Serve(ctx, bytes.NewReader(nil), io.Discard, func(context.Context, *Request) *Response {
		return &Response{}
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromBag(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SeqExpectIn, source.Span{Start: 2, End: 3}, "expected `in`").
		WithNote(source.Span{Start: 0, End: 1}, "identifier here"))
	bag.Add(diag.New(diag.SevWarning, diag.SeqInfo, source.Span{}, "note"))

	ds := FromBag(bag)
	require.Len(t, ds, 2)
	assert.Equal(t, "ERROR", ds[0].Severity)
	assert.Equal(t, "SEQ3003", ds[0].Code)
	assert.Equal(t, Span{Start: 2, End: 3}, ds[0].Span)
	require.Len(t, ds[0].Notes, 1)
	assert.Equal(t, "identifier here", ds[0].Notes[0].Message)

	assert.True(t, (&Response{Diagnostics: ds}).HasErrors())
	assert.False(t, (&Response{Diagnostics: ds[1:]}).HasErrors())
	assert.Nil(t, FromBag(nil))
}
