package lexer

import (
	"fmt"

	"seq/internal/diag"
	"seq/internal/fix"
	"seq/internal/source"
)

// maxTokenLength bounds a single token; longer tokens are reported and
// turned into Invalid so a runaway literal cannot swallow the whole file.
const maxTokenLength = 1 << 16

type Options struct {
	Reporter diag.Reporter // может быть nil — тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

// errUnterminated reports a construct cut off by EOF and suggests closing it.
func (lx *Lexer) errUnterminated(code diag.Code, sp source.Span, msg, closer string) {
	if lx.opts.Reporter == nil {
		return
	}
	f := fix.InsertText(fmt.Sprintf("insert `%s`", closer), sp.EndPoint(), closer, fix.MaybeIncorrect())
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, []diag.Fix{f})
}
