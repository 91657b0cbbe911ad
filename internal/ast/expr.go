package ast

import "plume/internal/source"

// ExprKind discriminates expression payloads.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprInt
	ExprString
	ExprBool
	ExprList // [ e, e, ... ]
	ExprCall // name( e, e, ... )
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "ident"
	case ExprInt:
		return "int"
	case ExprString:
		return "string"
	case ExprBool:
		return "bool"
	case ExprList:
		return "list"
	case ExprCall:
		return "call"
	default:
		return "invalid"
	}
}

// Expr is one expression. Text holds the literal/identifier spelling,
// Elems the list elements or call arguments.
type Expr struct {
	Kind     ExprKind
	Span     source.Span
	Text     string
	TextSpan source.Span
	Elems    []ExprID

	// Multiline records whether the source spelled a list/call across
	// several lines; the printer preserves that layout choice.
	Multiline bool
}
