// Package token defines lexical token kinds and trivia for keyva.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly, except string literals: their Span
//     covers the whole quoted literal while Text holds the unquoted content.
//   - Comments (# ...) are leading Trivia and never appear in the main token
//     stream.
package token
