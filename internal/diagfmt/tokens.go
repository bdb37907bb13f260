package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"seq/internal/source"
	"seq/internal/token"
	"seq/internal/tree"
)

// TokenOutput is one flat lexer token in the JSON dump.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Joint   bool        `json:"joint,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// untilEOF cuts tokens right after the first EOF.
func untilEOF(tokens []token.Token) []token.Token {
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			return tokens[:i+1]
		}
	}
	return tokens
}

func triviaKinds(trivia []token.Trivia) []string {
	var kinds []string
	for _, tv := range trivia {
		kinds = append(kinds, tv.Kind.String())
	}
	return kinds
}

// FormatTokensPretty prints one line per token: kind (with `+` for a joint
// punct), text, line:col range and the kinds of its leading trivia.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range untilEOF(tokens) {
		start, end := fs.Resolve(tok.Span)
		kind := tok.Kind.String()
		if tok.Joint {
			kind += "+"
		}
		line := fmt.Sprintf("%3d: %-10s", i+1, kind)
		if tok.Text != "" {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += fmt.Sprintf(" at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if kinds := triviaKinds(tok.Leading); len(kinds) > 0 {
			line += " (leading: " + strings.Join(kinds, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens up to EOF as a JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	tokens = untilEOF(tokens)
	out := make([]TokenOutput, len(tokens))
	for i, tok := range tokens {
		out[i] = TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Joint:   tok.Joint,
			Span:    tok.Span,
			Leading: triviaKinds(tok.Leading),
		}
	}
	return encodeIndented(w, out)
}

// TreeOutput is one node of the token tree in the JSON dump.
type TreeOutput struct {
	Kind    string       `json:"kind"`
	Text    string       `json:"text,omitempty"`
	Spacing string       `json:"spacing,omitempty"`
	Delim   string       `json:"delimiter,omitempty"`
	Span    source.Span  `json:"span"`
	Close   *source.Span `json:"close,omitempty"`
	Inner   []TreeOutput `json:"inner,omitempty"`
}

func treeNodes(toks []tree.Token) []TreeOutput {
	out := make([]TreeOutput, len(toks))
	for i, t := range toks {
		n := TreeOutput{Kind: t.Kind.String(), Text: t.Text, Span: t.Span}
		switch t.Kind {
		case tree.Punct:
			n.Spacing = t.Spacing.String()
		case tree.Group:
			n.Delim = t.Delim.String()
			n.Close = &t.Close
			n.Inner = treeNodes(t.Inner)
		}
		out[i] = n
	}
	return out
}

// FormatTreeJSON writes a token forest as nested JSON.
func FormatTreeJSON(w io.Writer, toks []tree.Token) error {
	return encodeIndented(w, treeNodes(toks))
}

func encodeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
