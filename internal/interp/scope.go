package interp

// Variable binds a name to its associative array. Every variable is exactly
// one Array; there is no separate scalar kind.
type Variable struct {
	Name string
	Arr  *Array
}

// scope is one flat variable table: one per active call frame. Lookups are
// linear scans in declaration order.
type scope struct {
	vars []*Variable
}

func newScope() *scope {
	return &scope{}
}

func (s *scope) find(name string) *Variable {
	for _, v := range s.vars {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// declare appends a new variable with an empty array, or returns nil when
// the table is full.
func (s *scope) declare(name string, maxVars int) *Variable {
	if len(s.vars) >= maxVars {
		return nil
	}
	v := &Variable{Name: name, Arr: NewArray()}
	s.vars = append(s.vars, v)
	return v
}

// top is the active scope. Name resolution never looks past it: a callee
// starts with an empty table and cannot see caller locals (dynamic,
// non-lexical scoping).
func (i *Interp) top() *scope {
	return i.scopes[len(i.scopes)-1]
}

// pushScope enters a fresh empty frame; false means the configured call
// depth is exhausted.
func (i *Interp) pushScope() bool {
	if len(i.scopes) >= i.maxDepth+1 {
		i.errorf("Scope stack overflow")
		return false
	}
	i.scopes = append(i.scopes, newScope())
	return true
}

func (i *Interp) popScope() {
	if len(i.scopes) <= 1 {
		i.errorf("Scope stack underflow")
		return
	}
	i.scopes = i.scopes[:len(i.scopes)-1]
}
