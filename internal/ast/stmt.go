package ast

import (
	"keyva/internal/source"
)

type StmtKind uint8

const (
	// StmtAssign is name = expr or name[idx] = expr.
	StmtAssign StmtKind = iota
	// StmtPrint is print(expr).
	StmtPrint
	// StmtIf is if cond block [else block] end.
	StmtIf
	// StmtWhile is while cond block end.
	StmtWhile
	// StmtFor is for ident in expr block end.
	StmtFor
	// StmtDef is def name(params) block end.
	StmtDef
	// StmtReturn is return [expr].
	StmtReturn
	// StmtExpr is a function call in statement position.
	StmtExpr
)

// Stmt is one statement node. Statements in a block are linked through Next.
// Field use per Kind:
//
//	StmtAssign — Target (ExprIdent or ExprIndex), Expr (RHS)
//	StmtPrint  — Expr
//	StmtIf     — Expr (condition), Body, Else
//	StmtWhile  — Expr (condition), Body
//	StmtFor    — Name (loop variable), Expr (iterable), Body
//	StmtDef    — Name, Params, Body
//	StmtReturn — Expr (NoExprID means default 0)
//	StmtExpr   — Expr (an ExprCall)
type Stmt struct {
	Kind   StmtKind
	Span   source.Span
	Expr   ExprID
	Target ExprID
	Body   StmtID
	Else   StmtID
	Name   string
	Params []string
	Next   StmtID
}
