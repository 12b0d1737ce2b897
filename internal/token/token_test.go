package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := []struct {
		ident string
		want  Kind
		ok    bool
	}{
		{"def", KwDef, true},
		{"return", KwReturn, true},
		{"end", KwEnd, true},
		{"if", KwIf, true},
		{"else", KwElse, true},
		{"print", KwPrint, true},
		{"for", KwFor, true},
		{"in", KwIn, true},
		{"while", KwWhile, true},
		{"Def", 0, false},
		{"prints", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := LookupKeyword(tc.ident)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v, want %v,%v", tc.ident, got, ok, tc.want, tc.ok)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := BangEq.String(); got != "BangEq" {
		t.Fatalf("BangEq.String() = %q", got)
	}
	if got := Kind(200).String(); got != "Kind(?)" {
		t.Fatalf("out-of-range String() = %q", got)
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Kind: NumberLit}).IsLiteral() {
		t.Error("NumberLit not literal")
	}
	if !(Token{Kind: StringLit}).IsLiteral() {
		t.Error("StringLit not literal")
	}
	if (Token{Kind: Ident}).IsLiteral() {
		t.Error("Ident counted as literal")
	}
	if !(Token{Kind: LtEq}).IsOperator() {
		t.Error("LtEq not operator")
	}
	if (Token{Kind: LParen}).IsOperator() {
		t.Error("LParen counted as operator")
	}
	if !(Token{Kind: KwWhile}).IsKeyword() {
		t.Error("KwWhile not keyword")
	}
}
