package driver

import (
	"io"

	"keyva/internal/diag"
	"keyva/internal/interp"
	"keyva/internal/source"
)

// RunLimits carries the interpreter resource bounds.
type RunLimits struct {
	MaxCallDepth   int
	MaxVariables   int
	MaxFunctions   int
	MaxDiagnostics int
}

// RunResult reports one script execution. OK is false when the parser
// abandoned part of the buffer; runtime errors do not affect it.
type RunResult struct {
	FileSet *source.FileSet
	Bag     *diag.Bag
	OK      bool
}

// RunFile loads and executes one script against a fresh interpreter.
func RunFile(path string, limits RunLimits, out, errw io.Writer) (*RunResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return runOn(fs, fileID, limits, out, errw), nil
}

// RunBytes executes an in-memory buffer (stdin, tests).
func RunBytes(name string, content []byte, limits RunLimits, out, errw io.Writer) *RunResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return runOn(fs, fileID, limits, out, errw)
}

func runOn(fs *source.FileSet, fileID source.FileID, limits RunLimits, out, errw io.Writer) *RunResult {
	bag := diag.NewBag(limits.MaxDiagnostics)
	in := interp.New(interp.Options{
		Out:          out,
		Err:          errw,
		MaxCallDepth: limits.MaxCallDepth,
		MaxVariables: limits.MaxVariables,
		MaxFunctions: limits.MaxFunctions,
	})
	ok := in.Run(fs.Get(fileID), diag.BagReporter{Bag: bag})
	return &RunResult{FileSet: fs, Bag: bag, OK: ok}
}
