package ast

import (
	"keyva/internal/source"
)

type ExprKind uint8

const (
	// ExprLit is a number or string literal. The stored text decides which
	// at evaluation time; the parser does not pre-classify.
	ExprLit ExprKind = iota
	// ExprIdent is a bare variable reference.
	ExprIdent
	// ExprIndex is name[index].
	ExprIndex
	// ExprBinary is a binary operation.
	ExprBinary
	// ExprCall is name(args...).
	ExprCall
)

type BinOp uint8

const (
	OpAdd BinOp = iota // +
	OpSub              // -
	OpMul              // *
	OpDiv              // /
	OpLt               // <
	OpGt               // >
	OpLtEq             // <=
	OpGtEq             // >=
	OpEq               // ==
	OpNotEq            // !=
)

var binOpNames = [...]string{
	OpAdd:  "+",
	OpSub:  "-",
	OpMul:  "*",
	OpDiv:  "/",
	OpLt:   "<",
	OpGt:   ">",
	OpLtEq: "<=",
	OpGtEq: ">=",
	OpEq:   "==",
	OpNotEq: "!=",
}

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "?"
}

// IsComparison reports whether op yields a 0/1 truth value.
func (op BinOp) IsComparison() bool {
	return op >= OpLt
}

// Expr is one expression node. Which fields are meaningful depends on Kind:
//
//	ExprLit    — Text (raw literal content)
//	ExprIdent  — Text (variable name)
//	ExprIndex  — Text (array name), Left (index expression)
//	ExprBinary — Op, Left, Right
//	ExprCall   — Text (callee name), Args
type Expr struct {
	Kind  ExprKind
	Span  source.Span
	Text  string
	Op    BinOp
	Left  ExprID
	Right ExprID
	Args  []ExprID
}
