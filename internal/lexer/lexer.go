package lexer

import (
	"keyva/internal/diag"
	"keyva/internal/source"
	"keyva/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
	dead   bool           // set on unrecoverable input (unterminated string)
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it always returns EOF. Unknown characters and malformed operator
// runs are reported and skipped; an unterminated string kills the rest of
// the buffer.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		lx.collectLeadingTrivia()

		if lx.dead || lx.cursor.EOF() {
			return token.Token{
				Kind: token.EOF,
				Span: lx.emptySpan(),
				Text: "",
			}
		}

		ch := lx.cursor.Peek()
		var tok token.Token

		switch {
		case isIdentStartByte(ch):
			tok = lx.scanIdentOrKeyword()

		case isDec(ch):
			tok = lx.scanNumber()

		case ch == '"' || ch == '\'':
			tok = lx.scanString()

		case isOperatorByte(ch) || isDelimiterByte(ch):
			tok = lx.scanOperatorOrDelim()

		default:
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.errLex(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character")
			continue
		}

		if tok.Kind == token.Invalid {
			// already reported by the scanner; skip and resume
			continue
		}

		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
