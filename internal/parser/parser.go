package parser

import (
	"plume/internal/ast"
	"plume/internal/diag"
	"plume/internal/lexer"
	"plume/internal/source"
	"plume/internal/token"
)

// Options controls error reporting during parsing.
type Options struct {
	MaxErrors     uint
	currentErrors uint
	Reporter      diag.Reporter
}

func (o *Options) enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.currentErrors >= o.MaxErrors
}

// Result is what one ParseFile run produces.
type Result struct {
	File ast.FileID
	// Comments holds every comment span in source order, for the
	// comment classifier.
	Comments []source.Span
}

// Parser holds per-file parsing state.
type Parser struct {
	lx     *lexer.Lexer
	arenas *ast.Builder
	file   *source.File
	opts   Options
}

// ParseFile parses one file into the builder's arenas and returns the file
// node ID plus the ordered raw comment list collected by the lexer.
func ParseFile(sf *source.File, lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		file:   sf,
		opts:   opts,
	}
	if p.opts.Reporter == nil {
		p.opts.Reporter = diag.NopReporter{}
	}

	stmts := p.parseStmts()

	span := source.Span{File: sf.ID, Start: 0, End: uint32(len(sf.Content))} // #nosec G115
	fileID := arenas.AddFile(ast.File{Span: span, Stmts: stmts})
	return Result{
		File:     fileID,
		Comments: lx.Comments(),
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) bump() token.Token {
	return p.lx.Next()
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind != k {
		p.errorAt(tok.Span, code, msg)
		return tok, false
	}
	return p.bump(), true
}

func (p *Parser) errorAt(sp source.Span, code diag.Code, msg string) {
	if p.opts.enough() {
		return
	}
	p.opts.currentErrors++
	diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// skipTerminators consumes newline tokens between statements.
func (p *Parser) skipTerminators() {
	for p.at(token.Newline) {
		p.bump()
	}
}

// recoverToTerminator skips tokens until a statement boundary.
func (p *Parser) recoverToTerminator() {
	for !p.at(token.Newline) && !p.at(token.EOF) {
		p.bump()
	}
}

// expectTerminator requires a newline or EOF after a statement and skips
// ahead to the next boundary when neither is there.
func (p *Parser) expectTerminator() {
	if p.at(token.Newline) || p.at(token.EOF) {
		return
	}
	p.errorAt(p.lx.Peek().Span, diag.SynExpectNewline, "expected a newline after statement")
	p.recoverToTerminator()
}

func (p *Parser) parseStmts() []ast.StmtID {
	var stmts []ast.StmtID
	p.skipTerminators()
	for !p.at(token.EOF) {
		if p.opts.enough() {
			diag.ReportError(p.opts.Reporter, diag.SynTooManyErrors, p.lx.Peek().Span, "too many syntax errors")
			break
		}
		id, ok := p.parseStmt()
		if ok {
			stmts = append(stmts, id)
			p.expectTerminator()
		} else {
			p.recoverToTerminator()
		}
		p.skipTerminators()
	}
	return stmts
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwPass:
		p.bump()
		return p.arenas.AddStmt(ast.Stmt{Kind: ast.StmtPass, Span: tok.Span}), true
	default:
		expr, ok := p.parseExpr()
		if !ok {
			p.errorAt(tok.Span, diag.SynExpectExpr, "expected a statement")
			return ast.NoStmtID, false
		}
		span := p.arenas.Exprs.Get(uint32(expr)).Span
		return p.arenas.AddStmt(ast.Stmt{Kind: ast.StmtExpr, Span: span, Expr: expr}), true
	}
}

func (p *Parser) parseLet() (ast.StmtID, bool) {
	letTok := p.bump() // let

	nameTok := p.lx.Peek()
	if !nameTok.IsIdent() {
		p.errorAt(nameTok.Span, diag.SynUnexpectedToken, "expected a name after 'let'")
		return ast.NoStmtID, false
	}
	p.bump()
	if _, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in let statement"); !ok {
		return ast.NoStmtID, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		p.errorAt(p.lx.Peek().Span, diag.SynExpectExpr, "expected an expression after '='")
		return ast.NoStmtID, false
	}

	span := letTok.Span.Cover(p.arenas.Exprs.Get(uint32(expr)).Span)
	return p.arenas.AddStmt(ast.Stmt{
		Kind:     ast.StmtLet,
		Span:     span,
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Expr:     expr,
	}), true
}
