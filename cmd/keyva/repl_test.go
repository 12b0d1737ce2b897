package main

import (
	"bytes"
	"strings"
	"testing"

	"keyva/internal/config"
)

func testConfig() config.Config {
	return config.Default()
}

func testSession() (*replSession, *bytes.Buffer, *bytes.Buffer) {
	var out, errw bytes.Buffer
	return newReplSession(testConfig(), &out, &errw), &out, &errw
}

func TestNestingDelta(t *testing.T) {
	cases := []struct {
		line      string
		depth     int
		delta     int
		underflow bool
	}{
		{"x = 1", 0, 0, false},
		{"if x", 0, 1, false},
		{"for v in d", 0, 1, false},
		{"def f(a)", 0, 1, false},
		{"end", 1, -1, false},
		{"end", 0, 0, true},
		{"else", 1, 0, false},
		// while does not open a block in line mode.
		{"while x", 0, 0, false},
		{"if x end", 0, 0, false},
		{"if x if y", 0, 2, false},
		// keyword inside a string literal is just text
		{`x = "if"`, 0, 0, false},
		{"# if comment", 0, 0, false},
	}
	for _, c := range cases {
		delta, underflow := nestingDelta(c.line, c.depth)
		if underflow != c.underflow {
			t.Errorf("nestingDelta(%q, %d) underflow = %v, want %v", c.line, c.depth, underflow, c.underflow)
			continue
		}
		if !underflow && delta != c.delta {
			t.Errorf("nestingDelta(%q, %d) = %d, want %d", c.line, c.depth, delta, c.delta)
		}
	}
}

func TestReplSessionKeepsStateAcrossBlocks(t *testing.T) {
	s, _, _ := testSession()
	s.feed("x = 41")
	s.feed("def inc(n)")
	if s.depth != 1 {
		t.Fatalf("depth after def = %d, want 1", s.depth)
	}
	s.feed("return n + 1")
	s.feed("end")
	if s.depth != 0 {
		t.Fatalf("depth after end = %d, want 0", s.depth)
	}
	s.feed("y = inc(x)")

	v, ok := s.in.Lookup("y")
	if !ok {
		t.Fatalf("y not defined after block execution")
	}
	if got := v.Arr.First().Value; got != "42" {
		t.Fatalf("y = %q, want 42", got)
	}
}

func TestReplSessionPrintsOutput(t *testing.T) {
	s, out, _ := testSession()
	s.feed("print(2 + 3)")
	if out.String() != "5\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestReplSessionUnmatchedEnd(t *testing.T) {
	s, _, errw := testSession()
	s.feed("end")
	if !strings.Contains(errw.String(), "Error: Unmatched 'end' detected") {
		t.Fatalf("stderr = %q", errw.String())
	}
	if s.depth != 0 || len(s.buf) != 0 {
		t.Fatalf("session not reset after unmatched end")
	}
}

func TestReplSessionResetDropsPendingBlock(t *testing.T) {
	s, _, _ := testSession()
	s.feed("if 1")
	s.feed("x = 1")
	s.reset()
	if s.depth != 0 || len(s.buf) != 0 {
		t.Fatalf("reset left depth=%d buf=%d", s.depth, len(s.buf))
	}
	if _, ok := s.in.Lookup("x"); ok {
		t.Fatalf("aborted block must not execute")
	}
}
