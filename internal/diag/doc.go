// Package diag defines the diagnostic model shared by the lexer, parser and
// driver.
//
// Diagnostic is the central record: severity, a stable numeric Code, a short
// message and a primary source.Span, plus optional notes. Phases emit through
// a Reporter so they stay decoupled from storage; BagReporter aggregates into
// a Bag, which supports sorting and deduplication for deterministic output.
//
// Rendering lives in internal/diagfmt. Runtime (evaluation) errors are NOT
// diagnostics: the interpreter writes them as plain "Error: ..." lines, since
// they are part of a running program's observable output.
package diag
