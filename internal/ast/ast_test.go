package ast

import (
	"testing"

	"keyva/internal/source"
)

func TestArenaIDsAreOneBased(t *testing.T) {
	a := NewArena[Expr](4)
	if got := a.Get(0); got != nil {
		t.Fatal("Get(0) must be nil")
	}
	id := a.Allocate(Expr{Kind: ExprIdent, Text: "x"})
	if id != 1 {
		t.Fatalf("first Allocate = %d, want 1", id)
	}
	if a.Get(id).Text != "x" {
		t.Fatal("Get did not return stored value")
	}
	if a.Len() != 1 {
		t.Fatalf("Len = %d", a.Len())
	}
}

func TestBuilderRoundTrip(t *testing.T) {
	b := NewBuilder(8)
	lit := b.Lit("42", source.Span{Start: 0, End: 2})
	ident := b.NewExpr(Expr{Kind: ExprIdent, Text: "x"})
	bin := b.NewExpr(Expr{Kind: ExprBinary, Op: OpAdd, Left: ident, Right: lit})

	e := b.Expr(bin)
	if e.Op != OpAdd || b.Expr(e.Left).Text != "x" || b.Expr(e.Right).Text != "42" {
		t.Fatalf("binary node wiring broken: %+v", e)
	}

	s := b.NewStmt(Stmt{Kind: StmtPrint, Expr: bin})
	if b.Stmt(s).Kind != StmtPrint {
		t.Fatal("stmt kind lost")
	}
	if !s.IsValid() || NoStmtID.IsValid() {
		t.Fatal("ID validity predicates broken")
	}
}

func TestBinOpString(t *testing.T) {
	if OpNotEq.String() != "!=" || OpAdd.String() != "+" {
		t.Fatal("operator names wrong")
	}
	if OpAdd.IsComparison() || !OpLt.IsComparison() || !OpNotEq.IsComparison() {
		t.Fatal("IsComparison misclassifies")
	}
}
