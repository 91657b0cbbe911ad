package comments

import (
	"strings"
	"testing"

	"plume/internal/ast"
)

func TestZeroValueComments(t *testing.T) {
	var c Comments
	node := ast.StmtNode(1)
	if c.HasComments(node) || c.HasLeadingComments(node) ||
		c.HasDanglingComments(node) || c.HasTrailingComments(node) {
		t.Fatalf("zero-value handle must report no comments")
	}
	for range c.LeadingDanglingTrailingComments(node) {
		t.Fatalf("zero-value handle must yield nothing")
	}
}

func TestFacadeSharesOneMap(t *testing.T) {
	if !debugTracking {
		t.Skip("comment bookkeeping is compiled out in release builds")
	}
	p := attach(t, "# doc\npass\n")
	clone := p.com // cheap copy, same underlying map

	for _, sc := range clone.LeadingComments(p.stmt(t, 0)) {
		sc.MarkFormatted()
	}
	// the mark must be visible through the original handle
	for _, sc := range p.com.LeadingComments(p.stmt(t, 0)) {
		if !sc.isFormatted() {
			t.Fatalf("formatted flag not shared across handle copies")
		}
	}
}

func TestLeadingTrailingConcat(t *testing.T) {
	p := attach(t, "# lead\nlet x = 1  # trail\npass\n")
	stmt := p.stmt(t, 0)

	var got []string
	for sc := range p.com.LeadingTrailingComments(stmt) {
		got = append(got, sc.Text(p.sf))
	}
	if len(got) != 2 || got[0] != "# lead" || got[1] != "# trail" {
		t.Fatalf("leading/trailing concat = %v", got)
	}
}

func TestAssertFormattedPassesWhenAllMarked(t *testing.T) {
	p := attach(t, "# a\nlet xs = [\n    # b\n]  # c\n")
	for sc := range p.com.m().allParts() {
		sc.MarkFormatted()
	}
	p.com.AssertFormatted(p.sf) // must not panic
}

func TestAssertFormattedReportsExactlyTheDropped(t *testing.T) {
	if !debugTracking {
		t.Skip("comment bookkeeping is compiled out in release builds")
	}
	p := attach(t, "# kept\nlet xs = [\n    # dropped\n]\n")

	// emit only the statement's leading comment, "forget" the dangling one
	for _, sc := range p.com.LeadingComments(p.stmt(t, 0)) {
		sc.MarkFormatted()
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("AssertFormatted must panic on unformatted comments")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("unexpected panic payload %T", r)
		}
		if !strings.Contains(msg, "# dropped") {
			t.Fatalf("panic must name the dropped comment, got:\n%s", msg)
		}
		if strings.Contains(msg, "# kept") {
			t.Fatalf("panic must not list comments that were formatted:\n%s", msg)
		}
	}()
	p.com.AssertFormatted(p.sf)
}

func TestMarkFormattedIsIdempotent(t *testing.T) {
	if !debugTracking {
		t.Skip("comment bookkeeping is compiled out in release builds")
	}
	p := attach(t, "# a\npass\n")
	sc := p.com.LeadingComments(p.stmt(t, 0))[0]
	sc.MarkFormatted()
	sc.MarkFormatted()
	if !sc.isFormatted() {
		t.Fatalf("double mark lost the flag")
	}
	p.com.AssertFormatted(p.sf)
}

func TestDebugStringShowsTextAndBuckets(t *testing.T) {
	p := attach(t, "let xs = [\n    # inside\n]\n")
	dump := p.com.DebugString(p.sf)
	if !strings.Contains(dump, "# inside") || !strings.Contains(dump, "dangling") {
		t.Fatalf("debug dump incomplete:\n%s", dump)
	}

	var empty Comments
	if empty.DebugString(p.sf) != "Comments{}\n" {
		t.Fatalf("empty dump wrong: %q", empty.DebugString(p.sf))
	}
}
