package parser

import (
	"keyva/internal/ast"
	"keyva/internal/diag"
	"keyva/internal/token"
)

// Expression grammar, lowest to highest precedence:
//
//	comparison     <  >  <=  >=  ==  !=   (left-associative, chainable)
//	additive       +  -
//	multiplicative *  /
//	factor         ( expr ) | literal | call | index | identifier
//
// Each comparison yields Number 0/1 and may itself be compared again, so
// a < b < c parses as (a < b) < c.

var comparisonOps = map[token.Kind]ast.BinOp{
	token.Lt:     ast.OpLt,
	token.Gt:     ast.OpGt,
	token.LtEq:   ast.OpLtEq,
	token.GtEq:   ast.OpGtEq,
	token.EqEq:   ast.OpEq,
	token.BangEq: ast.OpNotEq,
}

func (p *Parser) parseExpression() (ast.ExprID, bool) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, isCmp := comparisonOps[p.peek(0).Kind]
		if !isCmp {
			return left, true
		}
		p.advance()
		right, ok := p.parseAdditive()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.binary(op, left, right)
	}
}

func (p *Parser) parseAdditive() (ast.ExprID, bool) {
	left, ok := p.parseMultiplicative()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.OpAdd
		if p.at(token.Minus) {
			op = ast.OpSub
		}
		p.advance()
		right, ok := p.parseMultiplicative()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.binary(op, left, right)
	}
	return left, true
}

func (p *Parser) parseMultiplicative() (ast.ExprID, bool) {
	left, ok := p.parseFactor()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Star) || p.at(token.Slash) {
		op := ast.OpMul
		if p.at(token.Slash) {
			op = ast.OpDiv
		}
		p.advance()
		right, ok := p.parseFactor()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.binary(op, left, right)
	}
	return left, true
}

func (p *Parser) binary(op ast.BinOp, left, right ast.ExprID) ast.ExprID {
	sp := p.arenas.Expr(left).Span.Cover(p.arenas.Expr(right).Span)
	return p.arenas.NewExpr(ast.Expr{
		Kind:  ast.ExprBinary,
		Span:  sp,
		Op:    op,
		Left:  left,
		Right: right,
	})
}

// parseFactor handles the atoms. There is no unary minus: a leading '-' only
// means subtraction, so "-7" on its own is a parse error; negative numbers
// arise from arithmetic or stored strings.
func (p *Parser) parseFactor() (ast.ExprID, bool) {
	tok := p.peek(0)
	switch tok.Kind {
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after expression"); !ok {
			return ast.NoExprID, false
		}
		return inner, true

	case token.NumberLit, token.StringLit:
		p.advance()
		return p.arenas.Lit(tok.Text, tok.Span), true

	case token.Ident:
		switch p.peek(1).Kind {
		case token.LParen:
			return p.parseCall()
		case token.LBracket:
			return p.parseIndex()
		}
		p.advance()
		return p.arenas.NewExpr(ast.Expr{Kind: ast.ExprIdent, Span: tok.Span, Text: tok.Text}), true
	}

	p.err(diag.SynExpectExpression, "unexpected token '"+tok.Text+"' in expression")
	return ast.NoExprID, false
}

// parseCall parses name(args...). The comma between arguments is optional;
// `f(1 2)` and `f(1, 2)` are the same call.
func (p *Parser) parseCall() (ast.ExprID, bool) {
	name := p.advance() // Ident
	p.advance()         // LParen

	var args []ast.ExprID
	for !p.at(token.RParen) {
		if p.at(token.EOF) {
			p.err(diag.SynExpectRParen, "expected ')' after function call arguments")
			return ast.NoExprID, false
		}
		arg, ok := p.parseExpression()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
		}
	}
	close := p.advance() // RParen

	return p.arenas.NewExpr(ast.Expr{
		Kind: ast.ExprCall,
		Span: name.Span.Cover(close.Span),
		Text: name.Text,
		Args: args,
	}), true
}

func (p *Parser) parseIndex() (ast.ExprID, bool) {
	name := p.advance() // Ident
	p.advance()         // LBracket

	idx, ok := p.parseExpression()
	if !ok {
		return ast.NoExprID, false
	}
	close, ok := p.expect(token.RBracket, diag.SynExpectRBracket, "expected ']' after array index")
	if !ok {
		return ast.NoExprID, false
	}

	return p.arenas.NewExpr(ast.Expr{
		Kind: ast.ExprIndex,
		Span: name.Span.Cover(close.Span),
		Text: name.Text,
		Left: idx,
	}), true
}
