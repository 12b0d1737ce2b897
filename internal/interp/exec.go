package interp

import (
	"fmt"
	"strings"

	"keyva/internal/ast"
)

// exec runs one top-level statement. Errors abort the statement but never
// the program.
func (i *Interp) exec(id ast.StmtID) {
	s := i.stmt(id)
	switch s.Kind {
	case ast.StmtAssign:
		i.execAssign(s)
	case ast.StmtPrint:
		i.execPrint(s)
	case ast.StmtIf:
		i.execIf(s)
	case ast.StmtWhile:
		i.execWhile(s)
	case ast.StmtFor:
		i.execFor(s)
	case ast.StmtDef:
		// Definitions register at parse time; executing one is a no-op.
	case ast.StmtReturn:
		// A top-level return has nothing to unwind.
	case ast.StmtExpr:
		i.call(i.expr(s.Expr))
	}
}

// execBlock runs a linked statement chain.
func (i *Interp) execBlock(id ast.StmtID) {
	for id.IsValid() {
		s := i.stmt(id)
		i.exec(id)
		id = s.Next
	}
}

// execWithReturn runs one statement inside a function body. Only a direct
// return produces a result; control-flow statements run through the plain
// path, so a return nested inside if/while/for does not unwind the call.
func (i *Interp) execWithReturn(id ast.StmtID) Return {
	s := i.stmt(id)
	if s.Kind == ast.StmtReturn {
		return i.execReturn(s)
	}
	i.exec(id)
	return Return{}
}

// execBlockWithReturn runs a function body chain, stopping at the first
// statement that yields a return value.
func (i *Interp) execBlockWithReturn(id ast.StmtID) Return {
	for id.IsValid() {
		s := i.stmt(id)
		if r := i.execWithReturn(id); r.Has {
			return r
		}
		id = s.Next
	}
	return Return{}
}

// execReturn evaluates the returned expression. A bare return and any
// evaluation failure both yield the default 0. A returned array is deep
// copied here, before the callee frame goes away.
func (i *Interp) execReturn(s *ast.Stmt) Return {
	if s.Expr == ast.NoExprID {
		return Return{Has: true, Val: Number(0)}
	}
	v, ok := i.eval(s.Expr, Arithmetic)
	if !ok {
		return Return{Has: true, Val: Number(0)}
	}
	if v.Kind == ArrayVal {
		v = ArrayRef(v.Arr.Clone())
	}
	return Return{Has: true, Val: v}
}

// call dispatches a function call: builtins first, then the user table.
// An unknown name reports and yields 0, as does a function that falls off
// its body without returning.
func (i *Interp) call(e *ast.Expr) Return {
	if fn, ok := i.builtins[e.Text]; ok {
		return Return{Has: true, Val: fn(i, e.Args)}
	}
	fn, ok := i.funcs.Lookup(e.Text)
	if !ok {
		i.errorf("Undefined function '%s'", e.Text)
		return Return{Has: true, Val: Number(0)}
	}
	return i.callUser(fn, e.Args)
}

// callUser evaluates arguments in the caller's frame, pushes a fresh frame,
// binds parameters, runs the body and pops. Arguments beyond the parameter
// list are never evaluated; missing ones bind to "0".
func (i *Interp) callUser(fn *Func, args []ast.ExprID) Return {
	n := len(args)
	if len(fn.Params) < n {
		n = len(fn.Params)
	}
	vals := make([]Value, n)
	for k := 0; k < n; k++ {
		v, ok := i.eval(args[k], Arithmetic)
		if !ok {
			i.errorf("Failed to evaluate argument")
			return Return{Has: true, Val: Number(0)}
		}
		vals[k] = v
	}

	if !i.pushScope() {
		return Return{Has: true, Val: Number(0)}
	}
	for k, p := range fn.Params {
		if k < n {
			i.bindParam(p, vals[k])
		} else {
			i.setValue(p, "", "0")
		}
	}
	r := i.execBlockWithReturn(fn.Body)
	i.popScope()
	if !r.Has {
		r = Return{Has: true, Val: Number(0)}
	}
	return r
}

// bindParam stores one evaluated argument in the callee frame. Scalars go
// under the default key; arrays are deep copied, so the callee never
// aliases caller storage.
func (i *Interp) bindParam(name string, v Value) {
	switch v.Kind {
	case NumberVal:
		i.setValue(name, "", FormatNumber(v.Num))
	case StringVal:
		i.setValue(name, "", v.Str)
	case ArrayVal:
		i.setArray(name, v.Arr)
	}
}

// execAssign handles both scalar and indexed assignment. The RHS evaluates
// in Arithmetic context; a whole-variable assignment of a scalar clears any
// dictionary content first.
func (i *Interp) execAssign(s *ast.Stmt) {
	rhs, ok := i.eval(s.Expr, Arithmetic)
	if !ok {
		i.errorf("Failed to evaluate expression in assignment")
		return
	}
	t := i.expr(s.Target)
	if t.Kind == ast.ExprIdent {
		switch rhs.Kind {
		case NumberVal:
			i.setScalar(t.Text, FormatNumber(rhs.Num))
		case StringVal:
			i.setScalar(t.Text, rhs.Str)
		case ArrayVal:
			i.setArray(t.Text, rhs.Arr)
		}
		return
	}

	// Indexed target: the key expression evaluates in Print context so a
	// single-entry variable used as the index keeps its stored text.
	idx, ok := i.eval(t.Left, Print)
	if !ok {
		i.errorf("Failed to evaluate array index")
		return
	}
	key, ok := indexKey(idx)
	if !ok {
		i.errorf("Array index must be a string or number")
		return
	}
	switch rhs.Kind {
	case NumberVal:
		i.setValue(t.Text, key, FormatNumber(rhs.Num))
	case StringVal:
		i.setValue(t.Text, key, rhs.Str)
	case ArrayVal:
		i.errorf("Cannot assign an associative array to an array element")
	}
}

// execPrint evaluates in Print context and writes one line. A failed
// evaluation prints nothing beyond its error.
func (i *Interp) execPrint(s *ast.Stmt) {
	v, ok := i.eval(s.Expr, Print)
	if !ok {
		return
	}
	switch v.Kind {
	case NumberVal:
		fmt.Fprintln(i.out, FormatNumber(v.Num))
	case StringVal:
		fmt.Fprintln(i.out, v.Str)
	case ArrayVal:
		fmt.Fprintln(i.out, formatArray(v.Arr))
	}
}

// formatArray renders a dictionary the way print shows it.
func formatArray(a *Array) string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < a.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		p := a.At(i)
		// Keys and values print verbatim, unescaped.
		fmt.Fprintf(&b, "\"%s\": \"%s\"", p.Key, p.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// execIf takes the branch when the condition is a nonzero number or a
// nonempty string. An array condition is an error.
func (i *Interp) execIf(s *ast.Stmt) {
	cond, ok := i.eval(s.Expr, Arithmetic)
	if !ok {
		i.errorf("Failed to evaluate condition in if statement")
		return
	}
	var taken bool
	switch cond.Kind {
	case NumberVal:
		taken = cond.Num != 0
	case StringVal:
		taken = cond.Str != ""
	default:
		i.errorf("Invalid condition type in if statement")
		return
	}
	if taken {
		i.execBlock(s.Body)
	} else if s.Else.IsValid() {
		i.execBlock(s.Else)
	}
}

// execWhile re-evaluates the condition before each iteration. A non-empty
// array also counts as true here; anything unclassifiable ends the loop.
func (i *Interp) execWhile(s *ast.Stmt) {
	for {
		cond, ok := i.eval(s.Expr, Arithmetic)
		if !ok {
			i.errorf("Failed to evaluate condition in while statement")
			return
		}
		var keep bool
		switch cond.Kind {
		case NumberVal:
			keep = cond.Num != 0
		case StringVal:
			keep = cond.Str != ""
		case ArrayVal:
			keep = cond.Arr.Len() > 0
		}
		if !keep {
			return
		}
		i.execBlock(s.Body)
	}
}

// execFor iterates the pairs of the iterable in insertion order. The loop
// variable is rebound each pass under the pair's own key and cleared after
// the body, so a one-pair binding collapses to a scalar inside the body.
// Iteration reads the live array, so entries appended during the loop are
// visited too.
func (i *Interp) execFor(s *ast.Stmt) {
	v, ok := i.eval(s.Expr, Print)
	if !ok {
		i.errorf("Failed to evaluate expression in for statement")
		return
	}
	var arr *Array
	switch v.Kind {
	case ArrayVal:
		arr = v.Arr
	case NumberVal:
		arr = NewArray()
		arr.Set("", FormatNumber(v.Num))
	case StringVal:
		arr = NewArray()
		arr.Set("", v.Str)
	default:
		i.errorf("For loop expression must be a variable or array")
		return
	}
	for k := 0; k < arr.Len(); k++ {
		p := arr.At(k)
		i.setValue(s.Name, p.Key, p.Value)
		i.execBlock(s.Body)
		i.clearVar(s.Name)
	}
}
