package interp

import "keyva/internal/ast"

// Func is one user-defined function: parameters and a body parked in the
// statement arena.
type Func struct {
	Name   string
	Params []string
	Body   ast.StmtID
}

// FuncTable collects definitions as the parser encounters them. It
// satisfies the parser's FuncRegistry. Redefinitions are appended, not
// deduplicated; Lookup returns the first match, so a second def of the same
// name is unreachable.
type FuncTable struct {
	funcs []Func
	max   int
}

func NewFuncTable(max int) *FuncTable {
	return &FuncTable{max: max}
}

// Register adds a definition; false means the table is full.
func (t *FuncTable) Register(name string, params []string, body ast.StmtID) bool {
	if len(t.funcs) >= t.max {
		return false
	}
	t.funcs = append(t.funcs, Func{Name: name, Params: params, Body: body})
	return true
}

// Lookup returns the first registered function with the given name.
func (t *FuncTable) Lookup(name string) (*Func, bool) {
	for i := range t.funcs {
		if t.funcs[i].Name == name {
			return &t.funcs[i], true
		}
	}
	return nil, false
}

func (t *FuncTable) Len() int {
	return len(t.funcs)
}
