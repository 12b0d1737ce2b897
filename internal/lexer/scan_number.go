package lexer

import (
	"keyva/internal/token"
)

// scanNumber scans a plain digit run. There is no '.', sign, or exponent in
// number literals; "1.5" lexes as NumberLit(1), then whatever '.' turns into.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
