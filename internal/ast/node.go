package ast

import "fmt"

// NodeClass qualifies which arena a NodeRef points into.
type NodeClass uint8

const (
	ClassInvalid NodeClass = iota
	ClassFile
	ClassStmt
	ClassExpr
)

func (c NodeClass) String() string {
	switch c {
	case ClassFile:
		return "File"
	case ClassStmt:
		return "Stmt"
	case ClassExpr:
		return "Expr"
	default:
		return "Invalid"
	}
}

// NodeRef identifies one tree node by its arena slot. Two refs are equal
// exactly when they name the same slot, so structurally identical nodes at
// different positions never compare equal. A NodeRef is only meaningful
// against the Builder that allocated it and must not outlive it.
type NodeRef struct {
	Class NodeClass
	Index uint32
}

func FileNode(id FileID) NodeRef { return NodeRef{Class: ClassFile, Index: uint32(id)} }
func StmtNode(id StmtID) NodeRef { return NodeRef{Class: ClassStmt, Index: uint32(id)} }
func ExprNode(id ExprID) NodeRef { return NodeRef{Class: ClassExpr, Index: uint32(id)} }

func (n NodeRef) IsValid() bool {
	return n.Class != ClassInvalid && n.Index != 0
}

func (n NodeRef) String() string {
	return fmt.Sprintf("%s#%d", n.Class, n.Index)
}
