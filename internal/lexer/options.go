package lexer

import (
	"plume/internal/diag"
	"plume/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter receives lexical diagnostics; nil falls back to
	// diag.NopReporter, so lexing continues with diagnostics dropped.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}
