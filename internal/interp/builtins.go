package interp

import "keyva/internal/ast"

// builtin receives its arguments unevaluated, so each one picks its own
// evaluation context and can inspect argument shape (key needs the bare
// variable, not its value). Builtins run in the caller's frame; no scope is
// pushed.
type builtin func(i *Interp, args []ast.ExprID) Value

var stdlib = map[string]builtin{
	"len": builtinLen,
	"key": builtinKey,
	"mod": builtinMod,
}

// builtinLen is the entry count of an array; any scalar counts as 1.
func builtinLen(i *Interp, args []ast.ExprID) Value {
	if len(args) != 1 {
		i.errorf("len() requires exactly one argument")
		return Number(0)
	}
	v, ok := i.eval(args[0], Print)
	if !ok {
		i.errorf("Failed to evaluate argument in len()")
		return Number(0)
	}
	switch v.Kind {
	case ArrayVal:
		return Number(float64(v.Arr.Len()))
	case NumberVal, StringVal:
		return Number(1)
	default:
		return Number(0)
	}
}

// builtinKey returns the key stored at a position rather than the value:
// for a bare variable the first key, for name[idx] the key string the index
// resolves to. Anything else yields the empty string, silently.
func builtinKey(i *Interp, args []ast.ExprID) Value {
	if len(args) != 1 {
		i.errorf("key() requires exactly one argument")
		return String("")
	}
	arg := i.expr(args[0])
	switch arg.Kind {
	case ast.ExprIdent:
		v := i.top().find(arg.Text)
		if v == nil || v.Arr.Len() == 0 {
			return String("")
		}
		return String(v.Arr.First().Key)
	case ast.ExprIndex:
		idx, ok := i.eval(arg.Left, Arithmetic)
		if !ok {
			i.errorf("Failed to evaluate array index")
			return String("")
		}
		key, ok := indexKey(idx)
		if !ok {
			i.errorf("Array index must be a string or number")
			return String("")
		}
		return String(key)
	default:
		return String("")
	}
}

// builtinMod is integer modulo: both operands truncate toward zero first.
// Non-numeric operands and a zero divisor yield 0.
func builtinMod(i *Interp, args []ast.ExprID) Value {
	if len(args) < 2 {
		i.errorf("mod() requires exactly two arguments")
		return Number(0)
	}
	a, ok := i.eval(args[0], Arithmetic)
	if !ok {
		i.errorf("Failed to evaluate 1st argument in mod()")
		return Number(0)
	}
	b, ok := i.eval(args[1], Arithmetic)
	if !ok {
		i.errorf("Failed to evaluate 2nd argument in mod()")
		return Number(0)
	}
	if a.Kind != NumberVal || b.Kind != NumberVal {
		return Number(0)
	}
	bi := int(b.Num)
	if bi == 0 {
		return Number(0)
	}
	return Number(float64(int(a.Num) % bi))
}
