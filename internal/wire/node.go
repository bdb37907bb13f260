package wire

import (
	"fmt"

	"seq/internal/source"
	"seq/internal/tree"
)

// Node is the msgpack form of a tree.Token. Trivia is not transferred:
// the host owns the layout of what it sends.
type Node struct {
	Kind  uint8  `msgpack:"k"`
	Text  string `msgpack:"t,omitempty"`
	Joint bool   `msgpack:"j,omitempty"`
	Delim uint8  `msgpack:"d,omitempty"`
	Span  Span   `msgpack:"sp"`
	Close Span   `msgpack:"cl,omitempty"`
	Inner []Node `msgpack:"in,omitempty"`
}

// FromTree converts a forest for sending.
func FromTree(toks []tree.Token) []Node {
	if len(toks) == 0 {
		return []Node{}
	}
	out := make([]Node, len(toks))
	for i, t := range toks {
		n := Node{
			Kind:  uint8(t.Kind),
			Text:  t.Text,
			Joint: t.Spacing == tree.Joint,
			Span:  Span{Start: t.Span.Start, End: t.Span.End},
		}
		if t.Kind == tree.Group {
			n.Delim = uint8(t.Delim)
			n.Close = Span{Start: t.Close.Start, End: t.Close.End}
			n.Inner = FromTree(t.Inner)
		}
		out[i] = n
	}
	return out
}

// ToTree rebuilds a forest; every span is placed in file.
func ToTree(nodes []Node, file source.FileID) ([]tree.Token, error) {
	out := make([]tree.Token, 0, len(nodes))
	for i, n := range nodes {
		sp := source.Span{File: file, Start: n.Span.Start, End: n.Span.End}
		if sp.End < sp.Start {
			return nil, fmt.Errorf("node %d: span end %d before start %d", i, sp.End, sp.Start)
		}
		var t tree.Token
		switch tree.Kind(n.Kind) {
		case tree.Ident:
			if n.Text == "" {
				return nil, fmt.Errorf("node %d: empty identifier", i)
			}
			t = tree.NewIdent(n.Text, sp)
		case tree.Int:
			if _, err := tree.ParseInt(n.Text); err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			t = tree.Token{Kind: tree.Int, Text: n.Text, Span: sp}
		case tree.Literal:
			t = tree.NewLiteral(n.Text, sp)
		case tree.Punct:
			if len(n.Text) != 1 {
				return nil, fmt.Errorf("node %d: punct must be one character, got %q", i, n.Text)
			}
			spacing := tree.Alone
			if n.Joint {
				spacing = tree.Joint
			}
			t = tree.NewPunct(n.Text[0], spacing, sp)
		case tree.Group:
			if n.Delim > uint8(tree.Brace) {
				return nil, fmt.Errorf("node %d: unknown delimiter %d", i, n.Delim)
			}
			inner, err := ToTree(n.Inner, file)
			if err != nil {
				return nil, fmt.Errorf("node %d: %w", i, err)
			}
			closeSp := source.Span{File: file, Start: n.Close.Start, End: n.Close.End}
			t = tree.NewGroup(tree.Delimiter(n.Delim), inner, sp, closeSp)
		default:
			return nil, fmt.Errorf("node %d: unknown kind %d", i, n.Kind)
		}
		out = append(out, t)
	}
	return out, nil
}
