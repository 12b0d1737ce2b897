package ast

import (
	"keyva/internal/source"
)

// Builder owns the arenas for one parse pass. Top-level statements are
// consumed (executed) as they are parsed; the arenas simply accumulate for
// the lifetime of the pass. Function bodies stay reachable through the
// function table, so nothing is released per statement.
type Builder struct {
	Exprs *Arena[Expr]
	Stmts *Arena[Stmt]
}

func NewBuilder(capHint uint) *Builder {
	return &Builder{
		Exprs: NewArena[Expr](capHint),
		Stmts: NewArena[Stmt](capHint),
	}
}

func (b *Builder) NewExpr(e Expr) ExprID {
	return ExprID(b.Exprs.Allocate(e))
}

func (b *Builder) NewStmt(s Stmt) StmtID {
	return StmtID(b.Stmts.Allocate(s))
}

func (b *Builder) Expr(id ExprID) *Expr {
	return b.Exprs.Get(uint32(id))
}

func (b *Builder) Stmt(id StmtID) *Stmt {
	return b.Stmts.Get(uint32(id))
}

// Lit is a convenience constructor for literal nodes.
func (b *Builder) Lit(text string, sp source.Span) ExprID {
	return b.NewExpr(Expr{Kind: ExprLit, Span: sp, Text: text})
}
