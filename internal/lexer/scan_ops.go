package lexer

import (
	"keyva/internal/diag"
	"keyva/internal/token"
)

var operators = map[string]token.Kind{
	"+":  token.Plus,
	"-":  token.Minus,
	"*":  token.Star,
	"/":  token.Slash,
	"=":  token.Assign,
	"<":  token.Lt,
	">":  token.Gt,
	"<=": token.LtEq,
	">=": token.GtEq,
	"==": token.EqEq,
	"!=": token.BangEq,
}

// scanOperatorOrDelim scans either a single-byte delimiter or a maximal run
// of operator bytes. The whole run must match a known operator exactly;
// "===" is one unknown token, not EqEq followed by Assign. Unknown runs are
// reported and dropped.
func (lx *Lexer) scanOperatorOrDelim() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	ch := lx.cursor.Peek()
	if isDelimiterByte(ch) {
		lx.cursor.Bump()
		switch ch {
		case '(':
			return emit(token.LParen)
		case ')':
			return emit(token.RParen)
		case ',':
			return emit(token.Comma)
		case '[':
			return emit(token.LBracket)
		default:
			return emit(token.RBracket)
		}
	}

	for isOperatorByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if k, ok := operators[text]; ok {
		return emit(k)
	}

	lx.errLex(diag.LexUnknownOperator, sp, "unknown operator '"+text+"'")
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
