package ast

import "plume/internal/source"

// StmtKind discriminates statement payloads.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLet              // let <name> = <expr>
	StmtPass             // pass
	StmtExpr             // bare expression
)

func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "let"
	case StmtPass:
		return "pass"
	case StmtExpr:
		return "expr"
	default:
		return "invalid"
	}
}

// Stmt is one statement. Name/NameSpan are set for let statements,
// Expr for let and expression statements.
type Stmt struct {
	Kind     StmtKind
	Span     source.Span
	Name     string
	NameSpan source.Span
	Expr     ExprID
}
