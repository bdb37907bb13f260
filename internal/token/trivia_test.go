package token_test

import (
	"testing"

	"seq/internal/source"
	"seq/internal/token"
)

func TestTriviaIsComment(t *testing.T) {
	tv := token.Trivia{Kind: token.TriviaLineComment, Span: source.Span{Start: 0, End: 5}, Text: "// hi"}
	tk := token.Token{Kind: token.Ident, Text: "fn", Leading: []token.Trivia{tv}}
	if len(tk.Leading) != 1 || !tk.Leading[0].IsComment() {
		t.Fatalf("line comment trivia must report IsComment")
	}
	if (token.Trivia{Kind: token.TriviaSpace}).IsComment() {
		t.Fatalf("space is not a comment")
	}
}
