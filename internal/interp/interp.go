package interp

import (
	"fmt"
	"io"
	"os"

	"keyva/internal/ast"
	"keyva/internal/diag"
	"keyva/internal/lexer"
	"keyva/internal/parser"
	"keyva/internal/source"
)

// Options configures one interpreter instance. Zero-value limits fall back
// to the defaults below.
type Options struct {
	Out          io.Writer // print output; defaults to os.Stdout
	Err          io.Writer // "Error: ..." lines; defaults to Out
	MaxCallDepth int
	MaxVariables int
	MaxFunctions int
}

const (
	DefaultMaxCallDepth = 100
	DefaultMaxVariables = 100
	DefaultMaxFunctions = 100
)

// Interp is the whole execution context: scope stack, function table,
// builtin table, AST arenas and output sinks. Nothing is process-global, so
// independent interpreters can coexist (each REPL or test owns one). An
// Interp lives across Run calls; the REPL relies on that to keep globals and
// functions between buffers.
type Interp struct {
	arenas   *ast.Builder
	funcs    *FuncTable
	builtins map[string]builtin
	scopes   []*scope

	out      io.Writer
	errw     io.Writer
	maxDepth int
	maxVars  int
}

func New(opts Options) *Interp {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = opts.Out
	}
	if opts.MaxCallDepth == 0 {
		opts.MaxCallDepth = DefaultMaxCallDepth
	}
	if opts.MaxVariables == 0 {
		opts.MaxVariables = DefaultMaxVariables
	}
	if opts.MaxFunctions == 0 {
		opts.MaxFunctions = DefaultMaxFunctions
	}
	return &Interp{
		arenas:   ast.NewBuilder(256),
		funcs:    NewFuncTable(opts.MaxFunctions),
		builtins: stdlib,
		scopes:   []*scope{newScope()},
		out:      opts.Out,
		errw:     opts.Err,
		maxDepth: opts.MaxCallDepth,
		maxVars:  opts.MaxVariables,
	}
}

// Arenas exposes the AST builder so the front end can hand it to a parser.
func (i *Interp) Arenas() *ast.Builder { return i.arenas }

// Funcs exposes the function table as a parse-time registry.
func (i *Interp) Funcs() *FuncTable { return i.funcs }

// Run is the core entry point: tokenize the buffer, then repeatedly parse
// one top-level statement and execute it immediately, until the stream is
// exhausted or a parse error halts the rest of the buffer. Returns false on
// a parse error; evaluation errors only abort their own statement.
func (i *Interp) Run(f *source.File, reporter diag.Reporter) bool {
	lx := lexer.New(f, lexer.Options{Reporter: reporter})
	p := parser.New(lx, i.arenas, parser.Options{
		Reporter: reporter,
		Funcs:    i.funcs,
	})
	for {
		id, ok := p.Next()
		if !ok {
			break
		}
		i.exec(id)
	}
	return !p.Failed()
}

// errorf writes one "Error: ..." line. Runtime errors are program output,
// not diagnostics, and carry no source position.
func (i *Interp) errorf(format string, args ...any) {
	fmt.Fprintf(i.errw, "Error: "+format+"\n", args...)
}

func (i *Interp) expr(id ast.ExprID) *ast.Expr { return i.arenas.Expr(id) }
func (i *Interp) stmt(id ast.StmtID) *ast.Stmt { return i.arenas.Stmt(id) }

// setValue stores value under key for name in the current scope, creating
// the variable if needed. A full table reports and drops the write.
func (i *Interp) setValue(name, key, value string) {
	v := i.top().find(name)
	if v == nil {
		v = i.top().declare(name, i.maxVars)
		if v == nil {
			i.errorf("Maximum number of variables reached")
			return
		}
	}
	v.Arr.Set(key, value)
}

// setScalar collapses the variable back to a single default-key entry,
// overwriting any dictionary content it held.
func (i *Interp) setScalar(name, value string) {
	v := i.top().find(name)
	if v == nil {
		i.setValue(name, "", value)
		return
	}
	v.Arr.Clear()
	v.Arr.Set("", value)
}

// setArray replaces the variable's array with a deep copy of src.
func (i *Interp) setArray(name string, src *Array) {
	v := i.top().find(name)
	if v == nil {
		v = i.top().declare(name, i.maxVars)
		if v == nil {
			i.errorf("Maximum number of variables reached")
			return
		}
	}
	v.Arr = src.Clone()
}

// clearVar empties the variable's array if it exists.
func (i *Interp) clearVar(name string) {
	if v := i.top().find(name); v != nil {
		v.Arr.Clear()
	}
}

// Lookup returns the named variable from the current scope, for tests and
// builtins.
func (i *Interp) Lookup(name string) (*Variable, bool) {
	v := i.top().find(name)
	return v, v != nil
}
