package interp

import (
	"bytes"
	"strings"
	"testing"

	"keyva/internal/diag"
	"keyva/internal/source"
)

// run executes one source buffer through a fresh interpreter and returns
// the combined output (print lines and Error lines interleaved).
func run(t *testing.T, src string) string {
	t.Helper()
	out, _, _ := runFull(t, src)
	return out
}

func runFull(t *testing.T, src string) (string, *Interp, bool) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kv", []byte(src))
	var out bytes.Buffer
	in := New(Options{Out: &out})
	bag := diag.NewBag(32)
	ok := in.Run(fs.Get(id), diag.BagReporter{Bag: bag})
	return out.String(), in, ok
}

func wantLines(t *testing.T, got string, want ...string) {
	t.Helper()
	expect := strings.Join(want, "\n") + "\n"
	if got != expect {
		t.Fatalf("output mismatch\ngot:\n%q\nwant:\n%q", got, expect)
	}
}

func TestPrintScalars(t *testing.T) {
	got := run(t, `
x = 42
y = "hello"
print(x)
print(y)
print(10 / 4)
`)
	wantLines(t, got, "42", "hello", "2.5")
}

func TestNumberFormatting(t *testing.T) {
	got := run(t, `
print(10 / 3)
print(1000000 * 10)
print(0 - 1)
`)
	// Six significant digits, general notation.
	wantLines(t, got, "3.33333", "1e+07", "-1")
}

func TestDictionaryPrint(t *testing.T) {
	got := run(t, `
d["a"] = 1
d["b"] = "two"
print(d)
`)
	wantLines(t, got, `{"a": "1", "b": "two"}`)
}

func TestSingleEntryCollapsesToValue(t *testing.T) {
	got := run(t, `
d["only"] = "5x"
print(d)
print(d + 1)
`)
	// The assignment evaluates "5x" numerically, so only the prefix "5"
	// is stored; the lone entry then prints as that stored text.
	wantLines(t, got, "5", "6")
}

func TestScalarAssignmentClearsDictionary(t *testing.T) {
	got := run(t, `
d["a"] = 1
d["b"] = 2
d = 7
print(d)
print(len(d))
`)
	wantLines(t, got, "7", "1")
}

func TestLookupFindsGlobal(t *testing.T) {
	_, in, _ := runFull(t, `x["k"] = 1`)
	v, ok := in.Lookup("x")
	if !ok || v.Arr.Len() != 1 {
		t.Fatalf("expected x with one entry")
	}
}

func TestNumericDetectionRequiresLeadingDigit(t *testing.T) {
	got := run(t, `
x = "abc"
print(x + 1)
`)
	wantLines(t, got, "Error: Both operands must be numbers for arithmetic or relational operations")
}

func TestComparisonsYieldZeroOrOne(t *testing.T) {
	got := run(t, `
print(3 < 5)
print(3 > 5)
print(3 == 3)
print(3 != 3)
print(3 <= 3)
print(5 >= 6)
`)
	wantLines(t, got, "1", "0", "1", "0", "1", "0")
}

func TestIfElse(t *testing.T) {
	got := run(t, `
x = 1
if x
print("yes")
else
print("no")
end
if x - 1
print("yes")
else
print("no")
end
`)
	wantLines(t, got, "yes", "no")
}

func TestStringConditionTruthiness(t *testing.T) {
	got := run(t, `
s = "text"
if s
print("nonempty")
end
`)
	wantLines(t, got, "nonempty")
}

func TestWhileLoop(t *testing.T) {
	got := run(t, `
n = 3
while n
print(n)
n = n - 1
end
`)
	wantLines(t, got, "3", "2", "1")
}

func TestForLoopInsertionOrder(t *testing.T) {
	got := run(t, `
d["b"] = 2
d["a"] = 1
d["c"] = 3
for v in d
print(v)
print(key(v))
end
`)
	wantLines(t, got, "2", "b", "1", "a", "3", "c")
}

func TestForLoopOverScalar(t *testing.T) {
	got := run(t, `
for v in 5
print(v)
end
`)
	wantLines(t, got, "5")
}

func TestForLoopVariableClearedAfterLoop(t *testing.T) {
	_, in, _ := runFull(t, `
d["a"] = 1
for v in d
x = v
end
`)
	v, ok := in.Lookup("v")
	if !ok {
		t.Fatalf("loop variable should still exist")
	}
	if v.Arr.Len() != 0 {
		t.Fatalf("loop variable should be empty after the loop, has %d entries", v.Arr.Len())
	}
}

func TestFunctionCallAndReturn(t *testing.T) {
	got := run(t, `
def add(a, b)
return a + b
end
print(add(2, 3))
`)
	wantLines(t, got, "5")
}

func TestFunctionWithoutReturnYieldsZero(t *testing.T) {
	got := run(t, `
def noop()
x = 1
end
print(noop())
`)
	wantLines(t, got, "0")
}

func TestMissingArgumentsBindZero(t *testing.T) {
	got := run(t, `
def f(a, b)
print(a)
print(b)
end
f(9)
`)
	wantLines(t, got, "9", "0")
}

func TestExtraArgumentsNeverEvaluated(t *testing.T) {
	got := run(t, `
def f(a)
print(a)
end
f(1, undefined_var)
`)
	// The second argument has no matching parameter, so the undefined
	// variable inside it is never touched.
	wantLines(t, got, "1")
}

func TestDynamicScopingHidesCallerLocals(t *testing.T) {
	got := run(t, `
x = 10
def f()
print(x)
end
f()
`)
	wantLines(t, got, "Error: Undefined variable 'x'")
}

func TestArrayArgumentIsDeepCopied(t *testing.T) {
	got := run(t, `
d["a"] = 1
d["b"] = 2
def mutate(m)
m["a"] = 99
end
mutate(d)
print(d)
`)
	wantLines(t, got, `{"a": "1", "b": "2"}`)
}

func TestReturnArray(t *testing.T) {
	got := run(t, `
def make()
m["x"] = 1
m["y"] = 2
return m
end
r = make()
print(r)
`)
	wantLines(t, got, `{"x": "1", "y": "2"}`)
}

func TestReturnInsideNestedIfDoesNotUnwind(t *testing.T) {
	got := run(t, `
def f()
if 1
return 5
end
return 7
end
print(f())
`)
	// A return nested under control flow does not leave the function;
	// only the direct return in the body chain does.
	wantLines(t, got, "7")
}

func TestUndefinedFunction(t *testing.T) {
	got := run(t, `
x = g()
print(x)
`)
	wantLines(t, got, "Error: Undefined function 'g'", "0")
}

func TestDefInsideUntakenIfStillCallable(t *testing.T) {
	got := run(t, `
if 0
def hidden()
return 42
end
end
print(hidden())
`)
	// Definitions register at parse time, regardless of control flow.
	wantLines(t, got, "42")
}

func TestScopeStackOverflow(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kv", []byte(`
def f()
f()
end
f()
`))
	var out bytes.Buffer
	in := New(Options{Out: &out, MaxCallDepth: 10})
	bag := diag.NewBag(32)
	in.Run(fs.Get(id), diag.BagReporter{Bag: bag})
	if !strings.Contains(out.String(), "Error: Scope stack overflow") {
		t.Fatalf("expected overflow error, got:\n%s", out.String())
	}
}

func TestMaxVariablesReached(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.kv", []byte(`
a = 1
b = 2
c = 3
print(a)
`))
	var out bytes.Buffer
	in := New(Options{Out: &out, MaxVariables: 2})
	bag := diag.NewBag(32)
	in.Run(fs.Get(id), diag.BagReporter{Bag: bag})
	wantLines(t, out.String(), "Error: Maximum number of variables reached", "1")
}

func TestIndexReadErrors(t *testing.T) {
	got := run(t, `
d["a"] = 1
print(d["missing"])
print(absent["a"])
`)
	wantLines(t, got,
		"Error: Key 'missing' not found in variable 'd'",
		"Error: Undefined variable 'absent'")
}

func TestWriteIndexKeepsRawTextReadIndexCollapsesNumerically(t *testing.T) {
	got := run(t, `
src["007"] = 1
i = key(src)
a[i] = 1
print(key(a))
print(a[i])
`)
	// key() hands back the stored key verbatim, so i holds "007". As a
	// write index that raw text becomes the key; as a read index the
	// variable collapses numerically first, so the lookup goes to "7".
	wantLines(t, got,
		"007",
		"Error: Key '7' not found in variable 'a'")
}

func TestNumericKeysShareFormatting(t *testing.T) {
	got := run(t, `
d[1] = "one"
print(d[3 - 2])
`)
	// Both writes and reads format numeric indexes the same way, so they
	// address the same key.
	wantLines(t, got, "one")
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	fs := source.NewFileSet()
	var out bytes.Buffer
	in := New(Options{Out: &out})
	bag := diag.NewBag(32)

	first := fs.AddVirtual("a.kv", []byte("x = 5\ndef inc(n)\nreturn n + 1\nend\n"))
	in.Run(fs.Get(first), diag.BagReporter{Bag: bag})

	second := fs.AddVirtual("b.kv", []byte("print(inc(x))\n"))
	in.Run(fs.Get(second), diag.BagReporter{Bag: bag})

	wantLines(t, out.String(), "6")
}

func TestParseErrorHaltsRestOfBuffer(t *testing.T) {
	got, _, ok := runFull(t, `
print(1)
= 5
print(2)
`)
	if ok {
		t.Fatalf("expected Run to report failure")
	}
	wantLines(t, got, "1")
}
