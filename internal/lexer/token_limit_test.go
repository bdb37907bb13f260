package lexer

import (
	"strings"
	"testing"

	"seq/internal/diag"
	"seq/internal/source"
	"seq/internal/token"
)

func TestOversizedTokenBecomesInvalid(t *testing.T) {
	for name, content := range map[string]string{
		"ident":  strings.Repeat("a", maxTokenLength+1),
		"string": `"` + strings.Repeat("x", maxTokenLength) + `"`,
	} {
		t.Run(name, func(t *testing.T) {
			fs := source.NewFileSet()
			bag := diag.NewBag(4)
			lx := New(fs.Get(fs.AddVirtual(name+".sq", []byte(content))), Options{Reporter: diag.BagReporter{Bag: bag}})

			toks := lx.All()
			if len(toks) != 2 || toks[0].Kind != token.Invalid || toks[1].Kind != token.EOF {
				t.Fatalf("tokens = %v", toks)
			}
			if bag.Len() != 1 || bag.Items()[0].Code != diag.LexTokenTooLong {
				t.Fatalf("diagnostics = %+v", bag.Items())
			}
		})
	}
}

func TestTokenAtLimitIsKept(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(4)
	lx := New(fs.Get(fs.AddVirtual("ok.sq", []byte(strings.Repeat("a", maxTokenLength)))), Options{Reporter: diag.BagReporter{Bag: bag}})
	if tok := lx.Next(); tok.Kind != token.Ident || bag.Len() != 0 {
		t.Fatalf("token %v, %d diagnostics", tok.Kind, bag.Len())
	}
}
