package parser

import (
	"plume/internal/ast"
	"plume/internal/diag"
	"plume/internal/source"
	"plume/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.bump()
		if p.at(token.LParen) {
			return p.parseCall(tok)
		}
		return p.arenas.AddExpr(ast.Expr{
			Kind: ast.ExprIdent, Span: tok.Span, Text: tok.Text, TextSpan: tok.Span,
		}), true

	case token.IntLit:
		p.bump()
		return p.arenas.AddExpr(ast.Expr{
			Kind: ast.ExprInt, Span: tok.Span, Text: tok.Text, TextSpan: tok.Span,
		}), true

	case token.StringLit:
		p.bump()
		return p.arenas.AddExpr(ast.Expr{
			Kind: ast.ExprString, Span: tok.Span, Text: tok.Text, TextSpan: tok.Span,
		}), true

	case token.BoolLit:
		p.bump()
		return p.arenas.AddExpr(ast.Expr{
			Kind: ast.ExprBool, Span: tok.Span, Text: tok.Text, TextSpan: tok.Span,
		}), true

	case token.LBracket:
		return p.parseList()

	default:
		return ast.NoExprID, false
	}
}

func (p *Parser) parseList() (ast.ExprID, bool) {
	open := p.bump() // [
	elems, closeTok, ok := p.parseElems(token.RBracket, diag.SynUnclosedBracket, "unclosed '['")
	if !ok {
		return ast.NoExprID, false
	}
	span := open.Span.Cover(closeTok.Span)
	return p.arenas.AddExpr(ast.Expr{
		Kind:      ast.ExprList,
		Span:      span,
		Elems:     elems,
		Multiline: p.spansLines(span),
	}), true
}

func (p *Parser) parseCall(nameTok token.Token) (ast.ExprID, bool) {
	p.bump() // (
	elems, closeTok, ok := p.parseElems(token.RParen, diag.SynUnclosedParen, "unclosed '('")
	if !ok {
		return ast.NoExprID, false
	}
	span := nameTok.Span.Cover(closeTok.Span)
	return p.arenas.AddExpr(ast.Expr{
		Kind:      ast.ExprCall,
		Span:      span,
		Text:      nameTok.Text,
		TextSpan:  nameTok.Span,
		Elems:     elems,
		Multiline: p.spansLines(span),
	}), true
}

// parseElems parses a comma-separated expression sequence up to the closing
// token. The comma is a plain separator, not a node: comments around it end
// up attached to a neighboring element by the classifier.
func (p *Parser) parseElems(closeKind token.Kind, unclosed diag.Code, unclosedMsg string) (elems []ast.ExprID, closeTok token.Token, ok bool) {
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case closeKind:
			return elems, p.bump(), true
		case token.EOF:
			p.errorAt(tok.Span, unclosed, unclosedMsg)
			return nil, tok, false
		}

		expr, exprOK := p.parseExpr()
		if !exprOK {
			p.errorAt(tok.Span, diag.SynExpectExpr, "expected an expression")
			return nil, tok, false
		}
		elems = append(elems, expr)

		switch p.lx.Peek().Kind {
		case token.Comma:
			p.bump()
		case closeKind:
			// final element without trailing comma
		case token.EOF:
			p.errorAt(p.lx.Peek().Span, unclosed, unclosedMsg)
			return nil, p.lx.Peek(), false
		default:
			p.errorAt(p.lx.Peek().Span, diag.SynUnexpectedToken, "expected ',' or closing delimiter")
			return nil, p.lx.Peek(), false
		}
	}
}

// spansLines reports whether the span crosses a line boundary in the source;
// the printer keeps such constructs multiline.
func (p *Parser) spansLines(sp source.Span) bool {
	return p.file.LineOf(sp.Start) != p.file.LineOf(sp.End)
}
