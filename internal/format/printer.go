// Package format prints a parsed plume file in canonical style while
// emitting every attached comment in its place.
package format

import (
	"errors"

	"plume/internal/ast"
	"plume/internal/comments"
	"plume/internal/diag"
	"plume/internal/lexer"
	"plume/internal/parser"
	"plume/internal/source"
)

type printer struct {
	arenas *ast.Builder
	sf     *source.File
	com    comments.Comments
	writer *Writer
}

// FormatFile prints an already parsed file. The comments handle must have
// been built for the same tree; after printing, debug builds verify that
// every attached comment was emitted.
func FormatFile(sf *source.File, arenas *ast.Builder, fileID ast.FileID, com comments.Comments, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if arenas == nil {
		return nil, errors.New("format: nil builder")
	}
	file := arenas.Files.Get(uint32(fileID))
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	pr := printer{
		arenas: arenas,
		sf:     sf,
		com:    com,
		writer: NewWriter(sf, opt),
	}
	pr.printFile(fileID, file)

	com.AssertFormatted(sf)
	return pr.writer.Bytes(), nil
}

// Source formats raw source text end to end: lex, parse, attach comments,
// print. Parse errors abort formatting; the bag carries the diagnostics.
func Source(sf *source.File, opt Options, maxDiagnostics int) ([]byte, *diag.Bag, error) {
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	arenas := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(sf, lx, arenas, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: uint(bag.Cap()),
	})
	if bag.HasErrors() {
		return nil, bag, errors.New("format: source has syntax errors")
	}

	com := comments.Attach(arenas, res.File, sf, res.Comments)
	out, err := FormatFile(sf, arenas, res.File, com, opt)
	return out, bag, err
}

func (p *printer) printFile(fileID ast.FileID, file *ast.File) {
	for _, stmtID := range file.Stmts {
		p.printStmt(stmtID)
	}
	for _, sc := range p.com.DanglingComments(ast.FileNode(fileID)) {
		p.printOwnLineComment(sc)
	}
}

func (p *printer) printStmt(id ast.StmtID) {
	node := ast.StmtNode(id)
	stmt := p.arenas.Stmts.Get(uint32(id))
	if stmt == nil {
		return
	}

	for _, sc := range p.com.LeadingComments(node) {
		p.printOwnLineComment(sc)
	}

	switch stmt.Kind {
	case ast.StmtLet:
		p.writer.WriteString("let ")
		p.writer.WriteString(stmt.Name)
		p.writer.WriteString(" = ")
		p.printExpr(stmt.Expr)
	case ast.StmtPass:
		p.writer.WriteString("pass")
	case ast.StmtExpr:
		p.printExpr(stmt.Expr)
	}

	for _, sc := range p.com.TrailingComments(node) {
		p.printEndOfLineComment(sc)
	}
	p.writer.Newline()
}

func (p *printer) printExpr(id ast.ExprID) {
	expr := p.arenas.Exprs.Get(uint32(id))
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent, ast.ExprInt, ast.ExprString, ast.ExprBool:
		p.writer.WriteString(expr.Text)
	case ast.ExprList:
		p.printSeq(id, expr, "", "[", "]")
	case ast.ExprCall:
		p.printSeq(id, expr, expr.Text, "(", ")")
	}
}

// printSeq prints a bracketed element sequence. The construct stays
// multiline when the source spelled it multiline or when it holds dangling
// comments; single-line sequences cannot contain comments because a line
// comment always runs to the end of the line.
func (p *printer) printSeq(id ast.ExprID, expr *ast.Expr, name, open, close string) {
	node := ast.ExprNode(id)
	dangling := p.com.DanglingComments(node)

	if name != "" {
		p.writer.WriteString(name)
	}
	p.writer.WriteString(open)

	if len(expr.Elems) == 0 {
		if len(dangling) == 0 {
			p.writer.WriteString(close)
			return
		}
		p.writer.Newline()
		p.writer.Indent()
		for _, sc := range dangling {
			p.printOwnLineComment(sc)
		}
		p.writer.Dedent()
		p.writer.WriteString(close)
		return
	}

	if !expr.Multiline && len(dangling) == 0 {
		for i, elemID := range expr.Elems {
			if i > 0 {
				p.writer.WriteString(", ")
			}
			p.printExpr(elemID)
		}
		p.writer.WriteString(close)
		return
	}

	p.writer.Newline()
	p.writer.Indent()
	for _, elemID := range expr.Elems {
		elemNode := ast.ExprNode(elemID)
		for _, sc := range p.com.LeadingComments(elemNode) {
			p.printOwnLineComment(sc)
		}
		p.printExpr(elemID)
		p.writer.WriteString(",")
		for _, sc := range p.com.TrailingComments(elemNode) {
			p.printEndOfLineComment(sc)
		}
		p.writer.Newline()
	}
	for _, sc := range dangling {
		p.printOwnLineComment(sc)
	}
	p.writer.Dedent()
	p.writer.WriteString(close)
}

// printOwnLineComment writes the comment on a line of its own at the
// current indentation. The text is emitted verbatim; comment content is
// never normalized.
func (p *printer) printOwnLineComment(sc *comments.SourceComment) {
	p.writer.WriteString(sc.Text(p.sf))
	p.writer.Newline()
	sc.MarkFormatted()
}

// printEndOfLineComment appends the comment to the current line, separated
// by two spaces.
func (p *printer) printEndOfLineComment(sc *comments.SourceComment) {
	p.writer.WriteString("  ")
	p.writer.WriteString(sc.Text(p.sf))
	sc.MarkFormatted()
}
