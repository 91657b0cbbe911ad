package parser

import (
	"testing"

	"plume/internal/ast"
	"plume/internal/diag"
	"plume/internal/lexer"
	"plume/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("parse.plm", []byte(src))
	sf := fs.Get(id)

	bag := diag.NewBag(64)
	lx := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(sf, lx, builder, Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 64})
	return builder, res, bag
}

func TestParseLetList(t *testing.T) {
	builder, res, bag := parseSource(t, "let items = [1, 2, 3]\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	file := builder.Files.Get(uint32(res.File))
	if len(file.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(file.Stmts))
	}
	stmt := builder.Stmts.Get(uint32(file.Stmts[0]))
	if stmt.Kind != ast.StmtLet || stmt.Name != "items" {
		t.Fatalf("let statement wrong: %+v", stmt)
	}
	list := builder.Exprs.Get(uint32(stmt.Expr))
	if list.Kind != ast.ExprList || len(list.Elems) != 3 {
		t.Fatalf("list wrong: %+v", list)
	}
	if list.Multiline {
		t.Fatalf("single-line list misdetected as multiline: %+v", list)
	}
}

func TestParseMultilineListDetected(t *testing.T) {
	builder, res, bag := parseSource(t, "let xs = [\n    1,\n    2,\n]\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	file := builder.Files.Get(uint32(res.File))
	stmt := builder.Stmts.Get(uint32(file.Stmts[0]))
	list := builder.Exprs.Get(uint32(stmt.Expr))
	if !list.Multiline {
		t.Fatalf("multiline list not detected: %+v", list)
	}
}

func TestParseCall(t *testing.T) {
	builder, res, bag := parseSource(t, "configure(host, 8080)\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	file := builder.Files.Get(uint32(res.File))
	stmt := builder.Stmts.Get(uint32(file.Stmts[0]))
	if stmt.Kind != ast.StmtExpr {
		t.Fatalf("expected expression statement")
	}
	call := builder.Exprs.Get(uint32(stmt.Expr))
	if call.Kind != ast.ExprCall || call.Text != "configure" || len(call.Elems) != 2 {
		t.Fatalf("call wrong: %+v", call)
	}
}

func TestParseCollectsComments(t *testing.T) {
	_, res, bag := parseSource(t, "# head\nlet x = 1  # tail\npass\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(res.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(res.Comments))
	}
	if res.Comments[0].Start >= res.Comments[1].Start {
		t.Fatalf("comments out of source order")
	}
}

func TestParseRecoversAfterBadStatement(t *testing.T) {
	builder, res, bag := parseSource(t, "let = 1\npass\n")
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for bad let")
	}
	file := builder.Files.Get(uint32(res.File))
	if len(file.Stmts) != 1 {
		t.Fatalf("recovery failed, statements: %d", len(file.Stmts))
	}
	if builder.Stmts.Get(uint32(file.Stmts[0])).Kind != ast.StmtPass {
		t.Fatalf("pass statement after recovery missing")
	}
}

func TestParseUnclosedBracketReported(t *testing.T) {
	_, _, bag := parseSource(t, "let xs = [1, 2\n")
	if !bag.HasErrors() {
		t.Fatalf("unclosed bracket must be reported")
	}
}

func TestMissingNewlineBetweenStatements(t *testing.T) {
	builder, res, bag := parseSource(t, "let x = 1 let y = 2\n")
	if !bag.HasErrors() {
		t.Fatalf("two statements on one line must be reported")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectNewline {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected SynExpectNewline, got %+v", bag.Items())
	}
	file := builder.Files.Get(uint32(res.File))
	if len(file.Stmts) != 1 {
		t.Fatalf("recovery kept %d statements, want 1", len(file.Stmts))
	}
}

func TestParseNilReporterStillParses(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("quiet.plm", []byte("let = 1\npass\n"))
	sf := fs.Get(id)
	lx := lexer.New(sf, lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(sf, lx, builder, Options{MaxErrors: 8})

	file := builder.Files.Get(uint32(res.File))
	if len(file.Stmts) != 1 {
		t.Fatalf("recovery without reporter failed, statements: %d", len(file.Stmts))
	}
}
