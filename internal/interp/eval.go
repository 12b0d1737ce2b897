package interp

import "keyva/internal/ast"

// eval evaluates one expression in the given context. The second result is
// false when evaluation failed; the error line has already been written.
func (i *Interp) eval(id ast.ExprID, ctx Context) (Value, bool) {
	e := i.expr(id)
	switch e.Kind {
	case ast.ExprLit:
		return detect(e.Text), true
	case ast.ExprIdent:
		return i.evalIdent(e, ctx)
	case ast.ExprIndex:
		return i.evalIndex(e)
	case ast.ExprBinary:
		return i.evalBinary(e, ctx)
	case ast.ExprCall:
		r := i.call(e)
		return r.Val, true
	default:
		i.errorf("Unknown expression type")
		return Value{}, false
	}
}

// evalIdent resolves a name in the current frame only. A single-entry array
// collapses to a scalar; how depends on the context. In Print context the
// collapsed value is always a String so that the stored text prints
// verbatim.
func (i *Interp) evalIdent(e *ast.Expr, ctx Context) (Value, bool) {
	v := i.top().find(e.Text)
	if v == nil {
		i.errorf("Undefined variable '%s'", e.Text)
		return Value{}, false
	}
	if v.Arr.Len() == 1 {
		raw := v.Arr.First().Value
		if ctx == Print {
			return String(raw), true
		}
		return detect(raw), true
	}
	return ArrayRef(v.Arr), true
}

// evalIndex reads one array element. The index expression evaluates in
// Arithmetic context; a numeric index becomes the formatted key string.
func (i *Interp) evalIndex(e *ast.Expr) (Value, bool) {
	v := i.top().find(e.Text)
	if v == nil {
		i.errorf("Undefined variable '%s'", e.Text)
		return Value{}, false
	}
	idx, ok := i.eval(e.Left, Arithmetic)
	if !ok {
		return Value{}, false
	}
	key, ok := indexKey(idx)
	if !ok {
		i.errorf("Array index must be a string or number")
		return Value{}, false
	}
	raw, ok := v.Arr.Get(key)
	if !ok {
		i.errorf("Key '%s' not found in variable '%s'", key, e.Text)
		return Value{}, false
	}
	return detect(raw), true
}

// indexKey converts an index value to its key string.
func indexKey(v Value) (string, bool) {
	switch v.Kind {
	case NumberVal:
		return FormatNumber(v.Num), true
	case StringVal:
		return v.Str, true
	default:
		return "", false
	}
}

// evalBinary evaluates arithmetic and relational operators. Arithmetic
// always forces Arithmetic context on its operands; comparisons inherit the
// caller's context so that string-shaped operands stay detectable.
func (i *Interp) evalBinary(e *ast.Expr, ctx Context) (Value, bool) {
	opCtx := ctx
	if !e.Op.IsComparison() {
		opCtx = Arithmetic
	}
	left, ok := i.eval(e.Left, opCtx)
	if !ok {
		return Value{}, false
	}
	right, ok := i.eval(e.Right, opCtx)
	if !ok {
		return Value{}, false
	}
	if left.Kind != NumberVal || right.Kind != NumberVal {
		i.errorf("Both operands must be numbers for arithmetic or relational operations")
		return Value{}, false
	}
	a, b := left.Num, right.Num
	switch e.Op {
	case ast.OpAdd:
		return Number(a + b), true
	case ast.OpSub:
		return Number(a - b), true
	case ast.OpMul:
		return Number(a * b), true
	case ast.OpDiv:
		// Division by zero follows IEEE 754: +/-Inf or NaN.
		return Number(a / b), true
	case ast.OpLt:
		return Number(boolNum(a < b)), true
	case ast.OpGt:
		return Number(boolNum(a > b)), true
	case ast.OpLtEq:
		return Number(boolNum(a <= b)), true
	case ast.OpGtEq:
		return Number(boolNum(a >= b)), true
	case ast.OpEq:
		return Number(boolNum(a == b)), true
	case ast.OpNotEq:
		return Number(boolNum(a != b)), true
	default:
		i.errorf("Unknown operator")
		return Value{}, false
	}
}

func boolNum(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
