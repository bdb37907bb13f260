package fuzztests

import (
	"testing"

	"seq/internal/diag"
	"seq/internal/lexer"
	"seq/internal/source"
	"seq/internal/testkit"
	"seq/internal/token"
	"seq/internal/tree"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.sq", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %v at %v goes backwards (previous end %d)", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}

func FuzzTreeSpans(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.sq", input))
		st := tree.Parse(file, diag.BagReporter{Bag: diag.NewBag(64)})
		if err := testkit.CheckSpanInvariants(st, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	})
}
