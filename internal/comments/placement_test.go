package comments

import (
	"testing"

	"plume/internal/ast"
	"plume/internal/diag"
	"plume/internal/lexer"
	"plume/internal/parser"
	"plume/internal/source"
)

type parsed struct {
	sf      *source.File
	builder *ast.Builder
	fileID  ast.FileID
	com     Comments
}

func attach(t *testing.T, src string) parsed {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("place.plm", []byte(src))
	sf := fs.Get(id)

	bag := diag.NewBag(64)
	lx := lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(sf, lx, builder, parser.Options{Reporter: diag.BagReporter{Bag: bag}, MaxErrors: 64})
	if bag.HasErrors() {
		t.Fatalf("parse failed: %+v", bag.Items())
	}

	return parsed{
		sf:      sf,
		builder: builder,
		fileID:  res.File,
		com:     Attach(builder, res.File, sf, res.Comments),
	}
}

func (p parsed) stmt(t *testing.T, i int) ast.NodeRef {
	t.Helper()
	file := p.builder.Files.Get(uint32(p.fileID))
	if i >= len(file.Stmts) {
		t.Fatalf("statement %d out of range (%d)", i, len(file.Stmts))
	}
	return ast.StmtNode(file.Stmts[i])
}

func (p parsed) stmtExpr(t *testing.T, i int) ast.NodeRef {
	t.Helper()
	stmtRef := p.stmt(t, i)
	stmt := p.builder.Stmts.Get(stmtRef.Index)
	if !stmt.Expr.IsValid() {
		t.Fatalf("statement %d has no expression", i)
	}
	return ast.ExprNode(stmt.Expr)
}

func (p parsed) elem(t *testing.T, stmtIdx, elemIdx int) ast.NodeRef {
	t.Helper()
	expr := p.builder.Exprs.Get(p.stmtExpr(t, stmtIdx).Index)
	if elemIdx >= len(expr.Elems) {
		t.Fatalf("element %d out of range (%d)", elemIdx, len(expr.Elems))
	}
	return ast.ExprNode(expr.Elems[elemIdx])
}

func texts(sf *source.File, list []*SourceComment) []string {
	out := make([]string, len(list))
	for i, sc := range list {
		out[i] = sc.Text(sf)
	}
	return out
}

func TestLeadingCommentOfStatement(t *testing.T) {
	p := attach(t, "# doc for x\nlet x = 1\n")
	lead := p.com.LeadingComments(p.stmt(t, 0))
	if got := texts(p.sf, lead); len(got) != 1 || got[0] != "# doc for x" {
		t.Fatalf("leading = %v", got)
	}
}

func TestEndOfLineCommentIsTrailing(t *testing.T) {
	p := attach(t, "let x = 1  # tail\npass\n")
	if got := texts(p.sf, p.com.TrailingComments(p.stmt(t, 0))); len(got) != 1 || got[0] != "# tail" {
		t.Fatalf("trailing = %v", got)
	}
	if p.com.HasComments(p.stmt(t, 1)) {
		t.Fatalf("pass statement must have no comments")
	}
}

func TestTrailingOfElementNotLeadingOfNext(t *testing.T) {
	// `a` followed by a comment on the same line: trailing of a, not
	// leading of b
	p := attach(t, "let xs = [\n    a,  # note\n    b,\n    c,\n]\n")
	a := p.elem(t, 0, 0)
	b := p.elem(t, 0, 1)
	if got := texts(p.sf, p.com.TrailingComments(a)); len(got) != 1 || got[0] != "# note" {
		t.Fatalf("trailing of a = %v", got)
	}
	if p.com.HasLeadingComments(b) {
		t.Fatalf("comment wrongly attached as leading of b")
	}
}

func TestOwnLineCommentLeadsNextElement(t *testing.T) {
	// comment after the comma separator, on its own line: the separator is
	// not a node, so it leads the next sibling
	p := attach(t, "let xs = [\n    a,\n    # about b\n    b,\n]\n")
	b := p.elem(t, 0, 1)
	if got := texts(p.sf, p.com.LeadingComments(b)); len(got) != 1 || got[0] != "# about b" {
		t.Fatalf("leading of b = %v", got)
	}
}

func TestDanglingInEmptyList(t *testing.T) {
	p := attach(t, "let xs = [\n    # between two brackets, no nodes\n]\n")
	list := p.stmtExpr(t, 0)
	if got := texts(p.sf, p.com.DanglingComments(list)); len(got) != 1 {
		t.Fatalf("dangling = %v", got)
	}
	if p.com.HasLeadingComments(list) || p.com.HasTrailingComments(list) {
		t.Fatalf("sole comment in empty list must be dangling only")
	}
}

func TestLeadingCommentOfFirstElement(t *testing.T) {
	p := attach(t, "let xs = [  # leading of a\n    a,\n]\n")
	a := p.elem(t, 0, 0)
	// the comment sits after `[` and before `a`; `[` is not a node
	if got := texts(p.sf, p.com.LeadingComments(a)); len(got) != 1 || got[0] != "# leading of a" {
		t.Fatalf("leading of a = %v", got)
	}
}

func TestOwnLineCommentAfterLastElementDangles(t *testing.T) {
	p := attach(t, "let xs = [\n    a,\n    # after everything\n]\n")
	list := p.stmtExpr(t, 0)
	if got := texts(p.sf, p.com.DanglingComments(list)); len(got) != 1 || got[0] != "# after everything" {
		t.Fatalf("dangling of list = %v", got)
	}
}

func TestIdenticalStatementsKeepSeparateComments(t *testing.T) {
	p := attach(t, "# first\npass\n# second\npass\n")
	first := p.com.LeadingComments(p.stmt(t, 0))
	second := p.com.LeadingComments(p.stmt(t, 1))
	if texts(p.sf, first)[0] != "# first" || texts(p.sf, second)[0] != "# second" {
		t.Fatalf("structurally identical nodes conflated: %v / %v",
			texts(p.sf, first), texts(p.sf, second))
	}
}

func TestCommentAtEndOfFileDangles(t *testing.T) {
	p := attach(t, "pass\n# the end\n")
	fileRef := ast.FileNode(p.fileID)
	if got := texts(p.sf, p.com.DanglingComments(fileRef)); len(got) != 1 || got[0] != "# the end" {
		t.Fatalf("dangling of file = %v", got)
	}
}

func TestCommentsInEmptyFileDangleOnFile(t *testing.T) {
	p := attach(t, "# just a comment\n# and another\n")
	fileRef := ast.FileNode(p.fileID)
	got := texts(p.sf, p.com.DanglingComments(fileRef))
	if len(got) != 2 || got[0] != "# just a comment" || got[1] != "# and another" {
		t.Fatalf("dangling of empty file = %v", got)
	}
}

func TestPartsOrderOnMixedNode(t *testing.T) {
	p := attach(t, "# lead\nlet xs = [\n    # dangle\n]  # trail\npass\n")
	stmt := p.stmt(t, 0)

	var all []string
	for sc := range p.com.LeadingDanglingTrailingComments(stmt) {
		all = append(all, sc.Text(p.sf))
	}
	// the dangle belongs to the list expression, not the statement
	if len(all) != 2 || all[0] != "# lead" || all[1] != "# trail" {
		t.Fatalf("stmt parts = %v", all)
	}

	list := p.stmtExpr(t, 0)
	if got := texts(p.sf, p.com.DanglingComments(list)); len(got) != 1 || got[0] != "# dangle" {
		t.Fatalf("list dangling = %v", got)
	}
}
