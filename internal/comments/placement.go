package comments

import (
	"plume/internal/ast"
	"plume/internal/source"
)

// Attach runs the placement pass: it consumes the ordered raw comment spans
// and the parsed tree, picks an owning node and bucket for every comment,
// and returns the populated handle. It runs once, after parsing and before
// formatting; any edit to the tree requires rebuilding from scratch.
func Attach(b *ast.Builder, fileID ast.FileID, sf *source.File, spans []source.Span) Comments {
	m := newMultiMap()
	root := ast.FileNode(fileID)
	for _, sp := range spans {
		node, bucket := place(b, sf, root, sp)
		m.insert(keyOf(node), bucket, newSourceComment(sp))
	}
	return newComments(m)
}

// place finds the tightest node enclosing the comment and classifies its
// position there:
//
//   - childless node: dangling;
//   - before the first child: leading of that child;
//   - between two children: trailing of the earlier one when the comment
//     starts on the line it ends on, else leading of the later one;
//   - after the last child: trailing of it on the same line, else dangling
//     of the enclosing node so it stays put in front of the closing
//     delimiter.
//
// Tokens that are not nodes (commas, brackets) get no comments of their
// own; a comment following such a token lands on the next sibling as a
// leading comment. Constructs that want different behavior reroute it into
// their own dangling bucket and render it there, which is why the dangling
// bucket exists independently of child structure.
func place(b *ast.Builder, sf *source.File, node ast.NodeRef, sp source.Span) (ast.NodeRef, Bucket) {
	children := b.Children(node)

	for _, child := range children {
		if b.NodeSpan(child).Contains(sp) {
			return place(b, sf, child, sp)
		}
	}

	if len(children) == 0 {
		return node, BucketDangling
	}

	if sp.End <= b.NodeSpan(children[0]).Start {
		return children[0], BucketLeading
	}

	last := children[len(children)-1]
	if lastEnd := b.NodeSpan(last).End; sp.Start >= lastEnd {
		if sameLine(sf, lastEnd, sp.Start) {
			return last, BucketTrailing
		}
		return node, BucketDangling
	}

	for i := 0; i+1 < len(children); i++ {
		prevEnd := b.NodeSpan(children[i]).End
		nextStart := b.NodeSpan(children[i+1]).Start
		if sp.Start >= prevEnd && sp.End <= nextStart {
			if sameLine(sf, prevEnd, sp.Start) {
				return children[i], BucketTrailing
			}
			return children[i+1], BucketLeading
		}
	}

	// a comment overlapping a node boundary cannot come out of a valid
	// lex/parse; keep it on the enclosing node rather than dropping it
	return node, BucketDangling
}

func sameLine(sf *source.File, a, b uint32) bool {
	return sf.LineOf(a) == sf.LineOf(b)
}
