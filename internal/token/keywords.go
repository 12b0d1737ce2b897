package token

var keywords = map[string]Kind{
	"def":    KwDef,
	"return": KwReturn,
	"end":    KwEnd,
	"if":     KwIf,
	"else":   KwElse,
	"print":  KwPrint,
	"for":    KwFor,
	"in":     KwIn,
	"while":  KwWhile,
}

// LookupKeyword reports whether ident is a reserved word.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
