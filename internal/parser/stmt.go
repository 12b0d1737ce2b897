package parser

import (
	"keyva/internal/ast"
	"keyva/internal/diag"
	"keyva/internal/token"
)

// parseStatement dispatches on the leading token. Order of the identifier
// case matters: a call is tried before assignment because both begin with an
// identifier.
func (p *Parser) parseStatement() (ast.StmtID, bool) {
	tok := p.peek(0)
	switch tok.Kind {
	case token.KwFor:
		return p.parseFor()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDef:
		return p.parseDef()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwPrint:
		return p.parsePrint()
	case token.Ident:
		if p.peek(1).Kind == token.LParen {
			return p.parseCallStmt()
		}
		return p.parseAssign()
	}

	p.err(diag.SynUnexpectedToken, "unrecognized statement starting with '"+tok.Text+"'")
	return ast.NoStmtID, false
}

// parseBlock parses statements until 'else', 'end' or EOF, without consuming
// the terminator. Returns the head of the Next-linked list; an empty block
// yields NoStmtID with ok=true — callers decide whether that is an error.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	var head, tail ast.StmtID
	for !p.at(token.KwElse) && !p.at(token.KwEnd) && !p.at(token.EOF) {
		id, ok := p.parseStatement()
		if !ok {
			return ast.NoStmtID, false
		}
		if !head.IsValid() {
			head = id
		} else {
			p.arenas.Stmt(tail).Next = id
		}
		tail = id
	}
	return head, true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance() // if

	cond, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	if !body.IsValid() {
		p.err(diag.SynExpectExpression, "expected block after 'if' condition")
		return ast.NoStmtID, false
	}

	elseBody := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		elseBody, ok = p.parseBlock()
		if !ok {
			return ast.NoStmtID, false
		}
		if !elseBody.IsValid() {
			p.err(diag.SynExpectExpression, "expected block after 'else'")
			return ast.NoStmtID, false
		}
	}

	if _, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' after 'if' statement"); !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtIf,
		Span: kw.Span.Cover(p.lastSpan),
		Expr: cond,
		Body: body,
		Else: elseBody,
	}), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance() // while

	cond, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	if !body.IsValid() {
		p.err(diag.SynExpectExpression, "expected block after 'while' condition")
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' after 'while' block"); !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtWhile,
		Span: kw.Span.Cover(p.lastSpan),
		Expr: cond,
		Body: body,
	}), true
}

func (p *Parser) parseFor() (ast.StmtID, bool) {
	kw := p.advance() // for

	loopVar, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after 'for'")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynExpectIn, "expected 'in' after loop variable"); !ok {
		return ast.NoStmtID, false
	}
	iter, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	if !body.IsValid() {
		p.err(diag.SynExpectExpression, "expected block after 'for' statement")
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' after 'for' block"); !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtFor,
		Span: kw.Span.Cover(p.lastSpan),
		Name: loopVar.Text,
		Expr: iter,
		Body: body,
	}), true
}

// parseDef parses a function definition and registers it immediately. The
// registration happens at parse time, so defs inside never-taken branches
// are still callable later.
func (p *Parser) parseDef() (ast.StmtID, bool) {
	kw := p.advance() // def

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after 'def'")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after function name"); !ok {
		return ast.NoStmtID, false
	}

	var params []string
	for !p.at(token.RParen) {
		param, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name or ')' in function definition")
		if !ok {
			return ast.NoStmtID, false
		}
		params = append(params, param.Text)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.advance() // RParen

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	if !body.IsValid() {
		p.err(diag.SynExpectExpression, "expected block after function definition")
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwEnd, diag.SynExpectEnd, "expected 'end' after function body"); !ok {
		return ast.NoStmtID, false
	}

	if p.opts.Funcs != nil {
		if !p.opts.Funcs.Register(name.Text, params, body) {
			p.err(diag.SynFunctionLimit, "too many functions defined")
			return ast.NoStmtID, false
		}
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind:   ast.StmtDef,
		Span:   kw.Span.Cover(p.lastSpan),
		Name:   name.Text,
		Params: params,
		Body:   body,
	}), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance() // return

	expr := ast.NoExprID
	if p.startsExpression() {
		var ok bool
		expr, ok = p.parseExpression()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtReturn,
		Span: kw.Span.Cover(p.lastSpan),
		Expr: expr,
	}), true
}

func (p *Parser) startsExpression() bool {
	switch p.peek(0).Kind {
	case token.LParen, token.NumberLit, token.StringLit, token.Ident:
		return true
	}
	return false
}

func (p *Parser) parsePrint() (ast.StmtID, bool) {
	kw := p.advance() // print

	if _, ok := p.expect(token.LParen, diag.SynExpectLParen, "expected '(' after 'print'"); !ok {
		return ast.NoStmtID, false
	}
	expr, ok := p.parseExpression()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after expression"); !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtPrint,
		Span: kw.Span.Cover(p.lastSpan),
		Expr: expr,
	}), true
}

func (p *Parser) parseCallStmt() (ast.StmtID, bool) {
	call, ok := p.parseCall()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.NewStmt(ast.Stmt{
		Kind: ast.StmtExpr,
		Span: p.arenas.Expr(call).Span,
		Expr: call,
	}), true
}

// parseAssign parses name = expr or name[idx] = expr.
func (p *Parser) parseAssign() (ast.StmtID, bool) {
	var target ast.ExprID
	var ok bool
	if p.peek(1).Kind == token.LBracket {
		target, ok = p.parseIndex()
	} else {
		tok := p.advance()
		target = p.arenas.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, Text: tok.Text})
		ok = true
	}
	if !ok {
		return ast.NoStmtID, false
	}

	if _, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' after identifier"); !ok {
		return ast.NoStmtID, false
	}
	expr, okExpr := p.parseExpression()
	if !okExpr {
		return ast.NoStmtID, false
	}

	return p.arenas.NewStmt(ast.Stmt{
		Kind:   ast.StmtAssign,
		Span:   p.arenas.Expr(target).Span.Cover(p.lastSpan),
		Target: target,
		Expr:   expr,
	}), true
}
