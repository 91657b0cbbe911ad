package ast

import (
	"plume/internal/source"
)

// Hints sizes the arenas up front.
type Hints struct {
	Files uint
	Stmts uint
	Exprs uint
}

// Builder owns the arenas all node IDs of one parse point into.
type Builder struct {
	Files *Arena[File]
	Stmts *Arena[Stmt]
	Exprs *Arena[Expr]
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1
	}
	if hints.Stmts == 0 {
		hints.Stmts = 64
	}
	if hints.Exprs == 0 {
		hints.Exprs = 128
	}
	return &Builder{
		Files: NewArena[File](hints.Files),
		Stmts: NewArena[Stmt](hints.Stmts),
		Exprs: NewArena[Expr](hints.Exprs),
	}
}

func (b *Builder) AddFile(f File) FileID {
	return FileID(b.Files.Allocate(f))
}

func (b *Builder) AddStmt(s Stmt) StmtID {
	return StmtID(b.Stmts.Allocate(s))
}

func (b *Builder) AddExpr(e Expr) ExprID {
	return ExprID(b.Exprs.Allocate(e))
}

// NodeSpan resolves a node reference to its source span.
func (b *Builder) NodeSpan(n NodeRef) source.Span {
	switch n.Class {
	case ClassFile:
		if f := b.Files.Get(n.Index); f != nil {
			return f.Span
		}
	case ClassStmt:
		if s := b.Stmts.Get(n.Index); s != nil {
			return s.Span
		}
	case ClassExpr:
		if e := b.Exprs.Get(n.Index); e != nil {
			return e.Span
		}
	}
	return source.Span{}
}

// Children returns the direct child nodes in source order. Tokens that are
// not nodes (names, commas, brackets) do not appear; comments that belong
// to such tokens attach to a sibling node instead.
func (b *Builder) Children(n NodeRef) []NodeRef {
	switch n.Class {
	case ClassFile:
		f := b.Files.Get(n.Index)
		if f == nil {
			return nil
		}
		out := make([]NodeRef, 0, len(f.Stmts))
		for _, id := range f.Stmts {
			out = append(out, StmtNode(id))
		}
		return out

	case ClassStmt:
		s := b.Stmts.Get(n.Index)
		if s == nil || !s.Expr.IsValid() {
			return nil
		}
		return []NodeRef{ExprNode(s.Expr)}

	case ClassExpr:
		e := b.Exprs.Get(n.Index)
		if e == nil || len(e.Elems) == 0 {
			return nil
		}
		out := make([]NodeRef, 0, len(e.Elems))
		for _, id := range e.Elems {
			out = append(out, ExprNode(id))
		}
		return out
	}
	return nil
}
