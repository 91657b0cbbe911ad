// Package comments decides which tree node every source comment belongs to
// and exposes that association to the printer.
//
// Comments are legal almost anywhere between tokens, so the grammar gives
// them no slot of their own. Instead each comment is attached to exactly one
// node in one of three positions:
//
//   - leading: before the node's first content
//     (a comment line above a statement);
//   - dangling: inside the node with no child on either side
//     (the sole comment between two brackets);
//   - trailing: after the node's last content
//     (an end-of-line comment after a list element).
//
// The printer queries these buckets at every node it visits, writes the
// comments out, and marks each one formatted. In debug builds
// AssertFormatted verifies afterwards that nothing was dropped, which is
// what keeps reformatting lossless and idempotent.
package comments

import (
	"iter"

	"plume/internal/ast"
	"plume/internal/source"
)

// Comments is a cheaply copyable handle over the per-node comment map.
// Copying shares the same immutable map, so independently recursing
// formatting calls can each hold their own handle. All methods are
// read-only queries; callers are expected to MarkFormatted every comment
// they emit.
type Comments struct {
	data *commentsData
}

type commentsData struct {
	comments *multiMap
}

func newComments(m *multiMap) Comments {
	return Comments{data: &commentsData{comments: m}}
}

// m tolerates the zero value: a Comments that was never built behaves like
// an empty map.
func (c Comments) m() *multiMap {
	if c.data == nil {
		return nil
	}
	return c.data.comments
}

// HasComments reports whether any bucket of node is non-empty.
func (c Comments) HasComments(node ast.NodeRef) bool {
	return c.m().has(keyOf(node))
}

// LeadingComments returns the node's leading comments in source order.
func (c Comments) LeadingComments(node ast.NodeRef) []*SourceComment {
	return c.m().leading(keyOf(node))
}

func (c Comments) HasLeadingComments(node ast.NodeRef) bool {
	return len(c.LeadingComments(node)) > 0
}

// DanglingComments returns the node's dangling comments in source order.
func (c Comments) DanglingComments(node ast.NodeRef) []*SourceComment {
	return c.m().dangling(keyOf(node))
}

func (c Comments) HasDanglingComments(node ast.NodeRef) bool {
	return len(c.DanglingComments(node)) > 0
}

// TrailingComments returns the node's trailing comments in source order.
func (c Comments) TrailingComments(node ast.NodeRef) []*SourceComment {
	return c.m().trailing(keyOf(node))
}

func (c Comments) HasTrailingComments(node ast.NodeRef) bool {
	return len(c.TrailingComments(node)) > 0
}

// LeadingTrailingComments yields leading then trailing comments, for nodes
// whose shape makes dangling comments impossible.
func (c Comments) LeadingTrailingComments(node ast.NodeRef) iter.Seq[*SourceComment] {
	return func(yield func(*SourceComment) bool) {
		for _, sc := range c.LeadingComments(node) {
			if !yield(sc) {
				return
			}
		}
		for _, sc := range c.TrailingComments(node) {
			if !yield(sc) {
				return
			}
		}
	}
}

// LeadingDanglingTrailingComments yields all of the node's comments in
// canonical order.
func (c Comments) LeadingDanglingTrailingComments(node ast.NodeRef) iter.Seq[*SourceComment] {
	return c.m().parts(keyOf(node))
}

// AssertFormatted panics if any stored comment was never marked formatted,
// listing every offender with its text and location. A dropped comment
// would silently corrupt the output and break idempotence; this converts
// that into an immediate failure. No-op in release builds.
func (c Comments) AssertFormatted(sf *source.File) {
	if !debugTracking {
		return
	}
	var unformatted []*SourceComment
	for sc := range c.m().allParts() {
		if !sc.isFormatted() {
			unformatted = append(unformatted, sc)
		}
	}
	if len(unformatted) > 0 {
		panic("the following comments have not been formatted:\n" + renderComments(unformatted, sf))
	}
}
