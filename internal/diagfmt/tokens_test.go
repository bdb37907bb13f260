package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seq/internal/lexer"
	"seq/internal/source"
	"seq/internal/tree"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.sq", []byte("a ..b")))
	toks := lexer.New(f, lexer.Options{}).All()

	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, toks, fs))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `  1: Ident      "a" at 1:1-1:2`, lines[0])
	assert.Equal(t, `  2: Punct+     "." at 1:3-1:4 (leading: Space)`, lines[1])
	assert.True(t, strings.HasPrefix(lines[4], "  5: EOF"))
}

func TestFormatTreeJSON(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.sq", []byte("f(x, -)")))
	st := tree.Parse(f, nil)

	var buf bytes.Buffer
	require.NoError(t, FormatTreeJSON(&buf, st.Tokens))
	var nodes []TreeOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &nodes))
	require.Len(t, nodes, 2)
	g := nodes[1]
	assert.Equal(t, "Group", g.Kind)
	assert.Equal(t, "Paren", g.Delim)
	require.NotNil(t, g.Close)
	assert.Equal(t, uint32(6), g.Close.Start)
	require.Len(t, g.Inner, 3)
	assert.Equal(t, "Alone", g.Inner[2].Spacing)
}
