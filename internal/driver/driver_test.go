package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"keyva/internal/token"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testLimits() Limits {
	return Limits{MaxDiagnostics: 16, MaxFunctions: 100}
}

func TestTokenizeCollectsThroughEOF(t *testing.T) {
	res := TokenizeBytes("test.kv", []byte("x = 1\n"), 16)
	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{token.Ident, token.Assign, token.NumberLit, token.EOF}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestCheckCleanScript(t *testing.T) {
	res := CheckBytes("test.kv", []byte("x = 1\nprint(x)\n"), testLimits())
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Bag.Items())
	}
	if res.Stmts != 2 {
		t.Fatalf("Stmts = %d, want 2", res.Stmts)
	}
}

func TestCheckReportsWithoutExecuting(t *testing.T) {
	// The undefined variable is a runtime concern; check only parses.
	res := CheckBytes("test.kv", []byte("print(nothing)\nprint(\n"), testLimits())
	if !res.Bag.HasErrors() {
		t.Fatalf("expected a syntax error")
	}
	if res.Stmts != 1 {
		t.Fatalf("Stmts = %d, want 1", res.Stmts)
	}
}

func TestCheckPaths(t *testing.T) {
	dir := t.TempDir()
	good := writeScript(t, dir, "good.kv", "print(1)\n")
	bad := writeScript(t, dir, "bad.kv", "print(\n")
	missing := filepath.Join(dir, "missing.kv")

	results, err := CheckPaths(context.Background(), []string{good, bad, missing}, testLimits(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Bag.HasErrors() {
		t.Fatalf("good script flagged: %v", results[0].Bag.Items())
	}
	if !results[1].Bag.HasErrors() {
		t.Fatalf("bad script passed")
	}
	if !results[2].Bag.HasErrors() {
		t.Fatalf("missing file should carry an I/O diagnostic")
	}
}

func TestListScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "b.kv", "")
	writeScript(t, dir, "a.kv", "")
	writeScript(t, dir, "notes.txt", "")

	files, err := ListScripts(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.kv" || filepath.Base(files[1]) != "b.kv" {
		t.Fatalf("files = %v", files)
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "hello.kv", "print(\"hello\")\n")

	var out bytes.Buffer
	res, err := RunFile(path, RunLimits{MaxDiagnostics: 16}, &out, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK {
		t.Fatalf("run failed: %v", res.Bag.Items())
	}
	if out.String() != "hello\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunBytesAcceptsCRLF(t *testing.T) {
	var out bytes.Buffer
	res := RunBytes("<stdin>", []byte("x = 1\r\nprint(x)\r\n"), RunLimits{MaxDiagnostics: 16}, &out, &out)
	if !res.OK {
		t.Fatalf("run failed: %v", res.Bag.Items())
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics = %v, want none", res.Bag.Items())
	}
	if out.String() != "1\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("keyva-test")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeScript(t, dir, "script.kv", "x = 1\nprint(x)\n")

	first, hit, err := TokenizeCached(cache, path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Fatalf("first tokenize should miss")
	}

	second, hit, err := TokenizeCached(cache, path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatalf("second tokenize should hit")
	}
	if len(second.Tokens) != len(first.Tokens) {
		t.Fatalf("token count changed: %d vs %d", len(second.Tokens), len(first.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.Kind != b.Kind || a.Text != b.Text || a.Span.Start != b.Span.Start || a.Span.End != b.Span.End {
			t.Fatalf("token %d mismatch: %+v vs %+v", i, a, b)
		}
	}
}

func TestDiskCacheInvalidatesOnContentChange(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("keyva-test")
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := writeScript(t, dir, "script.kv", "x = 1\n")
	if _, _, err := TokenizeCached(cache, path, 16); err != nil {
		t.Fatal(err)
	}

	writeScript(t, dir, "script.kv", "y = 2\n")
	res, hit, err := TokenizeCached(cache, path, 16)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Fatalf("changed content must miss")
	}
	if res.Tokens[0].Text != "y" {
		t.Fatalf("stale tokens: %+v", res.Tokens[0])
	}
}
