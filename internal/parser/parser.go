package parser

import (
	"keyva/internal/ast"
	"keyva/internal/diag"
	"keyva/internal/lexer"
	"keyva/internal/source"
	"keyva/internal/token"
)

// FuncRegistry receives function definitions as they are parsed. Every `def`
// registers immediately, whether or not the surrounding statement ever runs.
// Register reports false when the table is full.
type FuncRegistry interface {
	Register(name string, params []string, body ast.StmtID) bool
}

type Options struct {
	Reporter diag.Reporter
	Funcs    FuncRegistry // may be nil; defs then parse but go nowhere
}

// Parser turns one token stream into statements, one top-level statement per
// Next call. The driver executes each statement before asking for the next,
// so a `def` inside an untaken branch is already registered by the time any
// later statement runs.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	opts     Options
	buf      []token.Token // lookahead window, at most 2
	lastSpan source.Span
	failed   bool
}

func New(lx *lexer.Lexer, arenas *ast.Builder, opts Options) *Parser {
	return &Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
	}
}

// Next parses one top-level statement. ok is false at EOF and after a parse
// error; Failed distinguishes the two. After a failure the parser refuses
// further work — a parse error abandons the rest of the buffer.
func (p *Parser) Next() (ast.StmtID, bool) {
	if p.failed || p.peek(0).Kind == token.EOF {
		return ast.NoStmtID, false
	}
	id, ok := p.parseStatement()
	if !ok {
		p.failed = true
		return ast.NoStmtID, false
	}
	return id, true
}

// Failed reports whether a parse error has poisoned this parser.
func (p *Parser) Failed() bool { return p.failed }

func (p *Parser) peek(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek(0).Kind == k
}

// advance consumes the next token and updates lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.peek(0)
	p.buf = p.buf[1:]
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan picks the best span to point a diagnostic at: the current token,
// or just past the last consumed one when the stream has run out.
func (p *Parser) diagSpan() source.Span {
	cur := p.peek(0)
	if cur.Kind == token.EOF && cur.Span.Empty() {
		return source.Span{
			File:  p.lastSpan.File,
			Start: p.lastSpan.End,
			End:   p.lastSpan.End,
		}
	}
	return cur.Span
}

// expect consumes a token of kind k or reports and fails.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}
