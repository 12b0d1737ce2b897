package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwEnd represents the 'end' keyword.
	KwEnd // end
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwPrint represents the 'print' keyword.
	KwPrint // print
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwWhile represents the 'while' keyword.
	KwWhile // while

	// NumberLit represents a numeric literal (digit run).
	NumberLit
	// StringLit represents a quoted string literal.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Assign represents the assign operator token.
	Assign // =
	// Lt represents the lt operator token.
	Lt // <
	// Gt represents the gt operator token.
	Gt // >
	// LtEq represents the lt eq operator token.
	LtEq // <=
	// GtEq represents the gt eq operator token.
	GtEq // >=
	// EqEq represents the eq eq operator token.
	EqEq // ==
	// BangEq represents the bang eq operator token.
	BangEq // !=

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// Comma represents the comma token.
	Comma // ,
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwDef:     "KwDef",
	KwReturn:  "KwReturn",
	KwEnd:     "KwEnd",
	KwIf:      "KwIf",
	KwElse:    "KwElse",
	KwPrint:   "KwPrint",
	KwFor:     "KwFor",
	KwIn:      "KwIn",
	KwWhile:   "KwWhile",
	NumberLit: "NumberLit",
	StringLit: "StringLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Assign:    "Assign",
	Lt:        "Lt",
	Gt:        "Gt",
	LtEq:      "LtEq",
	GtEq:      "GtEq",
	EqEq:      "EqEq",
	BangEq:    "BangEq",
	LParen:    "LParen",
	RParen:    "RParen",
	Comma:     "Comma",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
