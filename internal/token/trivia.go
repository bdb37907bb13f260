package token

import "seq/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDocLine:
		return "DocLine"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia carries comment text.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment || t.Kind == TriviaDocLine
}
