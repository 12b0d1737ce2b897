package token

import (
	"keyva/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == NumberLit || t.Kind == StringLit
}

// IsOperator reports whether the token is a binary operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Lt, Gt, LtEq, GtEq, EqEq, BangEq:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwDef, KwReturn, KwEnd, KwIf, KwElse, KwPrint, KwFor, KwIn, KwWhile:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
