package lexer

import (
	"keyva/internal/diag"
	"keyva/internal/token"
)

// scanString scans a literal delimited by '"' or '\''. There are no escape
// sequences; the literal runs to the first matching quote, newlines included.
// Token.Text is the content without the quotes; the span covers them.
// A missing closing quote kills the rest of the buffer.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{
				Kind: token.StringLit,
				Span: sp,
				Text: string(lx.file.Content[sp.Start+1 : sp.End-1]),
			}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	lx.dead = true
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
