package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"keyva/internal/ast"
	"keyva/internal/diag"
	"keyva/internal/interp"
	"keyva/internal/lexer"
	"keyva/internal/parser"
	"keyva/internal/source"
)

// CheckResult is the outcome of parsing one script without executing it.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	Bag     *diag.Bag
	Stmts   int // top-level statements successfully parsed
}

// Limits is the subset of configuration the driver needs.
type Limits struct {
	MaxDiagnostics int
	MaxFunctions   int
}

// Check parses a whole script front to back, collecting diagnostics.
// Function definitions register into a throwaway table so that the
// function-limit diagnostic still fires.
func Check(path string, limits Limits) (*CheckResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	res := checkFile(fs, fileID, limits)
	res.Path = path
	return res, nil
}

// CheckBytes checks an in-memory buffer.
func CheckBytes(name string, content []byte, limits Limits) *CheckResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	res := checkFile(fs, fileID, limits)
	res.Path = name
	return res
}

func checkFile(fs *source.FileSet, fileID source.FileID, limits Limits) *CheckResult {
	file := fs.Get(fileID)
	bag := diag.NewBag(limits.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: rep})
	arenas := ast.NewBuilder(256)
	p := parser.New(lx, arenas, parser.Options{
		Reporter: rep,
		Funcs:    interp.NewFuncTable(limits.MaxFunctions),
	})

	stmts := 0
	for {
		if _, ok := p.Next(); !ok {
			break
		}
		stmts++
	}

	return &CheckResult{FileSet: fs, Bag: bag, Stmts: stmts}
}

// ListScripts returns every *.kv file under dir, sorted for deterministic
// output.
func ListScripts(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".kv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckPaths checks many scripts in parallel with bounded concurrency.
// Results come back in input order; a file that fails to load gets an I/O
// diagnostic instead of an error for the whole batch.
func CheckPaths(ctx context.Context, paths []string, limits Limits, jobs int) ([]*CheckResult, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*CheckResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := Check(path, limits)
			if err != nil {
				bag := diag.NewBag(limits.MaxDiagnostics)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + err.Error(),
				})
				res = &CheckResult{Path: path, FileSet: source.NewFileSet(), Bag: bag}
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
