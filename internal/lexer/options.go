package lexer

import (
	"keyva/internal/diag"
	"keyva/internal/source"
)

type Options struct {
	Reporter diag.Reporter // nil means errors are dropped (lexing continues)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
